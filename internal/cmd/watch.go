package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pthm/squares/internal/pipeline"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Classify assessments as they are written to a directory",
	Long: `Watch a directory and report every assessment file that is
created or rewritten in it. Runs until interrupted.

Examples:
  squares watch inbox/
  squares watch --format json inbox/`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&dimensions, "dimensions", "d", 4, "Dimension count for documents that do not declare one (4 or 5)")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	rep := newReporter()
	return newPipeline().Watch(cmd.Context(), args[0], dimensions, func(r pipeline.Result) {
		if err := rep.Report([]pipeline.Result{r}); err != nil {
			logger.Warn("report failed", zap.String("source", r.Source), zap.Error(err))
		}
	})
}
