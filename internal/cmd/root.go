package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/storyblocks/internal/config/autoconfig"
	"github.com/stateful/storyblocks/internal/log"
)

var (
	fConfig     string
	fLogEnabled bool
	fLogPath    string
	fLogVerbose bool
)

func Root() *cobra.Command {
	builder := autoconfig.NewBuilder()

	cmd := cobra.Command{
		Use:           "storyblocks",
		Short:         "Author block based articles and render them to HTML",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if fConfig != "" {
				if err := builder.UseConfigFile(fConfig); err != nil {
					return errors.WithMessage(err, "failed to use config file")
				}
			}

			if fLogEnabled || fLogVerbose {
				if err := log.Set(fLogPath, fLogVerbose); err != nil {
					return errors.WithMessage(err, "failed to set up logging")
				}
				if err := builder.UseLogger(log.Get()); err != nil {
					return errors.WithMessage(err, "failed to use logger")
				}
			}

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			log.Flush()
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&fConfig, "config", "", "Path to the config file. By default storyblocks.yaml is looked up in the current directory.")
	pflags.BoolVar(&fLogEnabled, "log", false, "Enable logging, overriding the config.")
	pflags.StringVar(&fLogPath, "log-path", "", "Write logs to a file instead of stderr.")
	pflags.BoolVar(&fLogVerbose, "log-verbose", false, "Enable verbose logging. Implies --log.")

	cmd.AddCommand(renderCmd(builder))
	cmd.AddCommand(importCmd())
	cmd.AddCommand(exportCmd())
	cmd.AddCommand(editCmd(builder))
	cmd.AddCommand(saveCmd(builder))
	cmd.AddCommand(listCmd(builder))
	cmd.AddCommand(showCmd(builder))
	cmd.AddCommand(deleteCmd(builder))

	return &cmd
}
