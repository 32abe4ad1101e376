package migrationlayer

import (
	"fmt"

	glzcms "github.com/go-go-golems/glazed/pkg/cmds"
	glzlayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/packit-config-migrator/pkg/discover"
)

const MigrationLayerSlug = "migration"

type MigrationSettings struct {
	Paths            []string `glazed.parameter:"path"`
	Depth            int      `glazed.parameter:"depth"`
	ConfigNames      []string `glazed.parameter:"config-names"`
	RespectGitignore bool     `glazed.parameter:"respect-gitignore"`
	Rules            []string `glazed.parameter:"rules"`
}

// NewMigrationLayer defines the parameters shared by commands that locate and
// inspect packit configuration files.
func NewMigrationLayer() (glzlayers.ParameterLayer, error) {
	return glzlayers.NewParameterLayer(
		MigrationLayerSlug,
		"Packit configuration discovery settings",
		glzlayers.WithParameterDefinitions(
			parameters.NewParameterDefinition(
				"path",
				parameters.ParameterTypeStringList,
				parameters.WithHelp("Configuration files or directories to scan"),
				parameters.WithDefault([]string{"."}),
			),
			parameters.NewParameterDefinition(
				"depth",
				parameters.ParameterTypeInteger,
				parameters.WithHelp("Directory levels to scan (1 = given directory only, 0 = unlimited)"),
				parameters.WithDefault(1),
			),
			parameters.NewParameterDefinition(
				"config-names",
				parameters.ParameterTypeStringList,
				parameters.WithHelp("File names recognized as packit configuration"),
				parameters.WithDefault(discover.DefaultNames),
			),
			parameters.NewParameterDefinition(
				"respect-gitignore",
				parameters.ParameterTypeBool,
				parameters.WithHelp("Skip paths ignored by the root .gitignore"),
				parameters.WithDefault(true),
			),
			parameters.NewParameterDefinition(
				"rules",
				parameters.ParameterTypeStringList,
				parameters.WithHelp("Only apply these rule IDs or groups (see 'rules'); default all"),
			),
		),
	)
}

// AddMigrationLayerToCommand attaches the layer to a Glazed command description.
func AddMigrationLayerToCommand(c glzcms.Command) (glzcms.Command, error) {
	l, err := NewMigrationLayer()
	if err != nil {
		return nil, err
	}
	c.Description().Layers.Set(MigrationLayerSlug, l)
	return c, nil
}

// GetMigrationSettings returns parsed migration settings from the ParsedLayers.
func GetMigrationSettings(parsed *glzlayers.ParsedLayers) (*MigrationSettings, error) {
	var s MigrationSettings
	if err := parsed.InitializeStruct(MigrationLayerSlug, &s); err != nil {
		return nil, fmt.Errorf("failed to parse migration settings: %w", err)
	}
	return &s, nil
}

// FindConfigs resolves every configured path to the list of configuration
// files it contains. Discovery problems are returned separately.
func (s *MigrationSettings) FindConfigs() ([]string, []error) {
	opts := discover.Options{
		Names:            s.ConfigNames,
		Depth:            s.Depth,
		RespectGitignore: s.RespectGitignore,
	}
	paths := s.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	seen := map[string]struct{}{}
	var files []string
	var errs []error
	for _, root := range paths {
		found, ferrs := discover.Find(root, opts)
		errs = append(errs, ferrs...)
		for _, f := range found {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	return files, errs
}
