package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/squares/internal/pipeline"
	"github.com/pthm/squares/internal/ui"
)

var concurrency int

var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Extract and classify every assessment under the given paths",
	Long: `Process assessment files concurrently. Directories are walked
recursively for .md, .markdown, .txt and .json files; hidden
directories are skipped.

Examples:
  squares batch assessments/
  squares batch --concurrency 4 --format json a.md b.md > results.json
  squares batch --format markdown assessments/ > REPORT.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Files processed at once (default: number of CPUs)")
	batchCmd.Flags().IntVarP(&dimensions, "dimensions", "d", 4, "Dimension count for documents that do not declare one (4 or 5)")
	RootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	u := GetUI()

	progress := u.StartProgress()
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	progress.SetStage(ui.StageCollect)
	paths, err := pipeline.Collect(args)
	if err != nil {
		return fmt.Errorf("failed to collect assessment files: %w", err)
	}

	progress.SetTotal(len(paths))
	progress.SetStage(ui.StageProcess)

	results, err := newPipeline().Run(cmd.Context(), paths, pipeline.Options{
		Concurrency: concurrency,
		Dimensions:  dimensions,
		OnProgress: func(done, total int, r pipeline.Result) {
			progress.FileDone(r.Source, r.OK())
		},
	})

	// Stop progress before reporting
	progress.Done(err)
	progress = nil

	if err != nil {
		return err
	}
	return report(results)
}
