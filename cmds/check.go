package cmds

import (
	"context"
	"fmt"
	"os"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/packit-config-migrator/pkg/cmdutil"
	"github.com/go-go-golems/packit-config-migrator/pkg/migration"
	"github.com/go-go-golems/packit-config-migrator/pkg/migrationlayer"
)

type CheckCommand struct{ *gcmds.CommandDescription }

type CheckSettings struct {
	Strict bool `glazed.parameter:"strict"`
}

func NewCheckCommand() (*CheckCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"check",
		gcmds.WithShort("Report packit configurations that need migrating to Packit 1.0.0"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("strict", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Return an error when a configuration is affected or cannot be parsed")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	_, err = migrationlayer.AddMigrationLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &CheckCommand{cd}, nil
}

func (c *CheckCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &CheckSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	ms, err := migrationlayer.GetMigrationSettings(parsed)
	if err != nil {
		return err
	}
	if unknown := cmdutil.Unknown(ms.Rules, migration.KnownRule); len(unknown) > 0 {
		return fmt.Errorf("unknown migration rule(s): %v", unknown)
	}
	// nil means every rule; otherwise affected is judged on the selected rules only
	var selected map[string]struct{}
	if len(cmdutil.SelectorSet(ms.Rules)) > 0 {
		selected = map[string]struct{}{}
		for _, r := range migration.SelectRules(ms.Rules) {
			selected[r.ID] = struct{}{}
		}
	}

	files, warns := ms.FindConfigs()
	affected, failed := 0, len(warns)
	for _, w := range warns {
		row := types.NewRow(
			types.MRP("path", ""),
			types.MRP("affected", false),
			types.MRP("error", w.Error()),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}

	for _, f := range files {
		row, ok, err := checkFile(f, selected)
		if err != nil {
			failed++
		}
		if ok {
			affected++
		}
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	log.Debug().Int("files", len(files)).Int("affected", affected).Int("failed", failed).Msg("check done")

	if s.Strict && (affected > 0 || failed > 0) {
		return fmt.Errorf("strict mode failed: %d configuration(s) need migration, %d could not be checked", affected, failed)
	}
	return nil
}

func checkFile(path string, selected map[string]struct{}) (types.Row, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read packit config: %w", err)
		return errorRow(path, err), false, err
	}
	rep, err := migration.Analyze(string(b))
	if err != nil {
		return errorRow(path, err), false, err
	}
	rules, affected := rep.Rules, rep.Affected
	if selected != nil {
		rules = make([]string, 0, len(rep.Rules))
		for _, id := range rep.Rules {
			if _, ok := selected[id]; ok {
				rules = append(rules, id)
			}
		}
		affected = len(rules) > 0
	}
	row := types.NewRow(
		types.MRP("path", path),
		types.MRP("affected", affected),
		types.MRP("conflict", rep.Conflict),
		types.MRP("build_jobs", rep.BuildJobs),
		types.MRP("production_build_jobs", rep.ProductionBuildJobs),
		types.MRP("rules", rules),
		types.MRP("error", ""),
	)
	return row, affected, nil
}

func errorRow(path string, err error) types.Row {
	return types.NewRow(
		types.MRP("path", path),
		types.MRP("affected", false),
		types.MRP("error", err.Error()),
	)
}

var _ gcmds.GlazeCommand = &CheckCommand{}
