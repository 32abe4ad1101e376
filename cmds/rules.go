package cmds

import (
	"context"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/go-go-golems/packit-config-migrator/pkg/migration"
)

// RulesCommand lists the rewrite rules in the order they are applied.
type RulesCommand struct{ *gcmds.CommandDescription }

func NewRulesCommand() (*RulesCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"rules",
		gcmds.WithShort("List the Packit 1.0.0 migration rules"),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	return &RulesCommand{cd}, nil
}

func (c *RulesCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	for _, r := range migration.Rules() {
		row := types.NewRow(
			types.MRP("id", r.ID),
			types.MRP("group", r.Group),
			types.MRP("name", r.Name),
			types.MRP("from", r.From),
			types.MRP("to", r.To),
			types.MRP("description", r.Description),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

var _ gcmds.GlazeCommand = &RulesCommand{}
