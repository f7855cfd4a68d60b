package cmd

import (
	"github.com/spf13/cobra"

	"github.com/streambook/streambook/internal/log"
)

var verbose bool

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:           "streambook",
		Short:         "Materialize streamed AI responses into notebook cells",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Set(verbose)
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.BoolVar(&verbose, "verbose", false, "Log every materialization step.")

	cmd.AddCommand(materializeCmd())

	return &cmd
}
