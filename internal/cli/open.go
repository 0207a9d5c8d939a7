package cli

import (
	"github.com/spf13/cobra"

	"localsearch/internal/adapter/opener"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a result with the host's default handler",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return opener.NewHostOpener().Open(args[0])
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
