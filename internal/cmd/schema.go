package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/squares/internal/pipeline"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [" + strings.Join(pipeline.SchemaTargets, "|") + "]",
	Short: "Print the JSON Schema of squares documents",
	Long: `Print the JSON Schema of a document squares reads or writes.

  result  one entry of "squares batch --format json" output (default)
  record  an extracted assessment
  legacy  a legacy score record accepted by "squares convert --input"`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: pipeline.SchemaTargets,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := pipeline.SchemaTargets[0]
		if len(args) > 0 {
			target = args[0]
		}
		schema, err := pipeline.Schema(target)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(GetUI().Writer, string(data))
		return err
	},
}

func init() {
	RootCmd.AddCommand(schemaCmd)
}
