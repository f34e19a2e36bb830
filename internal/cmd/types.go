package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pthm/squares/internal/reporter"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the typology: every type, its family and presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reporter.WriteTypes(GetUI(), table.Types())
	},
}

func init() {
	RootCmd.AddCommand(typesCmd)
}
