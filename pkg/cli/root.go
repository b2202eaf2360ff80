package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "barber-booking",
		Short:        "Haircut booking web app",
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd(), newRoutesCmd())
	return cmd
}
