package main

import (
	clay "github.com/go-go-golems/clay/pkg"
	"github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/logging"
	"github.com/go-go-golems/glazed/pkg/cmds/middlewares"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/help"
	help_cmd "github.com/go-go-golems/glazed/pkg/help/cmd"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appcmds "github.com/go-go-golems/packit-config-migrator/cmds"
	appdoc "github.com/go-go-golems/packit-config-migrator/pkg/doc"
)

var version = "dev"

func getMiddlewares(parsedLayers *layers.ParsedLayers, cmd *cobra.Command, args []string) ([]middlewares.Middleware, error) {
	commandSettings := &cli.CommandSettings{}
	err := parsedLayers.InitializeStruct(cli.CommandSettingsSlug, commandSettings)
	if err != nil {
		return nil, err
	}

	mw_ := []middlewares.Middleware{
		middlewares.ParseFromCobraCommand(cmd,
			parameters.WithParseStepSource("cobra"),
		),
		middlewares.GatherArguments(args,
			parameters.WithParseStepSource("arguments"),
		),
	}

	mw_ = append(mw_,
		middlewares.GatherFlagsFromViper(parameters.WithParseStepSource("viper")),
		middlewares.SetFromDefaults(parameters.WithParseStepSource("defaults")),
	)

	return mw_, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "packit-config-migrator",
		Short:   "Detect and migrate packit configurations for Packit 1.0.0",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			err := logging.InitLoggerFromViper()
			cobra.CheckErr(err)
			if f := viper.ConfigFileUsed(); f != "" {
				log.Debug().Str("config", f).Msg("using config file")
			}
		},
	}

	clay.InitViper("packit-config-migrator", rootCmd)

	// Help system
	hs := help.NewHelpSystem()
	_ = appdoc.AddDocToHelpSystem(hs)
	help_cmd.SetupCobraRootCommand(hs, rootCmd)

	opts := []cli.CobraOption{
		cli.WithParserConfig(cli.CobraParserConfig{
			MiddlewaresFunc: getMiddlewares,
		}),
	}

	constructors := []func() (gcmds.Command, error){
		func() (gcmds.Command, error) { return appcmds.NewCheckCommand() },
		func() (gcmds.Command, error) { return appcmds.NewMigrateCommand() },
		func() (gcmds.Command, error) { return appcmds.NewRulesCommand() },
		func() (gcmds.Command, error) { return appcmds.NewCommitMessageCommand() },
	}
	for _, newCmd := range constructors {
		c, err := newCmd()
		cobra.CheckErr(err)
		cmd, err := cli.BuildCobraCommand(c, opts...)
		cobra.CheckErr(err)
		rootCmd.AddCommand(cmd)
	}

	cobra.CheckErr(rootCmd.Execute())
}
