package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/squares/internal/extractor"
	"github.com/pthm/squares/internal/pipeline"
	"github.com/pthm/squares/internal/source"
	"github.com/pthm/squares/internal/spectrum"
)

var (
	dimensions int
	forceJSON  bool
	canonical  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file|-]",
	Short: "Extract and classify one assessment",
	Long: `Extract the scored spectrum from one assessment and classify it.

The input may be Markdown or plain text, or a JSON assessment object.
Reads standard input when no file is given or the file is "-".

Examples:
  squares extract assessment.md
  pbpaste | squares extract --dimensions 5
  squares extract --canonical assessment.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntVarP(&dimensions, "dimensions", "d", 4, "Dimension count when the document does not declare one (4 or 5)")
	extractCmd.Flags().BoolVar(&forceJSON, "json", false, "Treat the input as a JSON assessment")
	extractCmd.Flags().BoolVar(&canonical, "canonical", false, "Print the assessment in canonical text form")
	RootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := source.Stdin
	if len(args) > 0 {
		path = args[0]
	}

	doc, err := source.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read assessment: %w", err)
	}
	if forceJSON {
		doc.Format = source.FormatJSON
	}

	res := newPipeline().ProcessDocument(doc, dimensions)

	if canonical {
		if !res.OK() {
			return res.Err()
		}
		scheme, err := spectrum.SchemeNamed(res.Scheme)
		if err != nil {
			return err
		}
		text, err := extractor.Format(scheme, res.Record)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(GetUI().Writer, text)
		return err
	}

	return report([]pipeline.Result{res})
}

// report writes results with the configured reporter and fails the command
// when any result failed.
func report(results []pipeline.Result) error {
	if err := newReporter().Report(results); err != nil {
		return err
	}
	if s := pipeline.Summarize(results); s.Failed > 0 {
		return fmt.Errorf("%d of %d assessments failed", s.Failed, s.Total)
	}
	return nil
}
