package cmds

import (
	"context"
	"fmt"
	"os"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/packit-config-migrator/pkg/batch"
	"github.com/go-go-golems/packit-config-migrator/pkg/migrationlayer"
	"github.com/go-go-golems/packit-config-migrator/pkg/output"
)

type MigrateCommand struct{ *gcmds.CommandDescription }

type MigrateSettings struct {
	Output          string `glazed.parameter:"output"`
	InPlace         bool   `glazed.parameter:"in-place"`
	Backup          bool   `glazed.parameter:"backup"`
	DryRun          bool   `glazed.parameter:"dry-run"`
	Diff            bool   `glazed.parameter:"diff"`
	ContinueOnError bool   `glazed.parameter:"continue-on-error"`
	NoColor         bool   `glazed.parameter:"no-color"`
}

func NewMigrateCommand() (*MigrateCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}

	cd := gcmds.NewCommandDescription(
		"migrate",
		gcmds.WithShort("Rewrite packit configurations for Packit 1.0.0"),
		gcmds.WithLong("Replaces removed job names and keys by literal text substitution, keeping comments and formatting intact."),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("output", parameters.ParameterTypeString, parameters.WithShortFlag("o"), parameters.WithHelp("Write the migrated configuration to this path ('-' for stdout); single file only")),
			parameters.NewParameterDefinition("in-place", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithShortFlag("i"), parameters.WithHelp("Overwrite configuration files that need migrating")),
			parameters.NewParameterDefinition("backup", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Keep a .bak copy of files overwritten in place")),
			parameters.NewParameterDefinition("dry-run", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Report what would change without writing anything")),
			parameters.NewParameterDefinition("diff", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Print a unified diff of every change")),
			parameters.NewParameterDefinition("continue-on-error", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Continue with the next file when one fails")),
			parameters.NewParameterDefinition("no-color", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Disable colored output")),
		),
		gcmds.WithLayersList(layer),
	)
	_, err = migrationlayer.AddMigrationLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &MigrateCommand{cd}, nil
}

func (c *MigrateCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &MigrateSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	ms, err := migrationlayer.GetMigrationSettings(parsed)
	if err != nil {
		return err
	}
	output.InitConsole(s.NoColor)

	files, warns := ms.FindConfigs()
	for _, w := range warns {
		fmt.Fprintln(os.Stderr, output.Warnf("%s", w.Error()))
	}

	proc := batch.Processor{}
	results, err := proc.Process(files, batch.ProcessorOptions{
		Rules:           ms.Rules,
		Output:          s.Output,
		InPlace:         s.InPlace,
		Backup:          s.Backup,
		DryRun:          s.DryRun,
		Diff:            s.Diff,
		ContinueOnError: s.ContinueOnError,
	})
	if err != nil {
		return err
	}

	changed := 0
	for _, r := range results {
		if r.Changed {
			changed++
		}
	}
	fmt.Fprintln(os.Stderr, output.Notef("%d of %d configuration(s) need migration", changed, len(results)))
	return nil
}

var _ gcmds.BareCommand = &MigrateCommand{}
