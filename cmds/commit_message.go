package cmds

import (
	"context"
	"fmt"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"

	"github.com/go-go-golems/packit-config-migrator/pkg/migration"
)

type CommitMessageCommand struct{ *gcmds.CommandDescription }

func NewCommitMessageCommand() (*CommitMessageCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"commit-message",
		gcmds.WithShort("Print the commit message to use when submitting a migrated configuration"),
		gcmds.WithLayersList(layer),
	)
	return &CommitMessageCommand{cd}, nil
}

func (c *CommitMessageCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	fmt.Print(migration.CommitMessage)
	return nil
}

var _ gcmds.BareCommand = &CommitMessageCommand{}
