package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pthm/squares/internal/logging"
	"github.com/pthm/squares/internal/pipeline"
	"github.com/pthm/squares/internal/reporter"
	"github.com/pthm/squares/internal/typology"
	"github.com/pthm/squares/internal/ui"
)

var (
	// Global flags
	verbose      bool
	format       string
	typologyPath string
	logFormat    string

	logger *zap.Logger
	table  *typology.Table
	out    *ui.UI
)

var RootCmd = &cobra.Command{
	Use:   "squares",
	Short: "Extract, classify and convert political spectrum assessments",
	Long: `squares reads free-form assessment text, pulls out the scored
spectrum encoded as colored squares, and places it in a 16-type
typology with the nearest archetypes.

Assessments written in the older 5-dimension scheme are converted onto
the current 4-dimension scheme before classification.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json, markdown)")
	RootCmd.PersistentFlags().StringVar(&typologyPath, "typology", "", "Path to a YAML typology table (default: built-in)")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
}

func setup(cmd *cobra.Command, args []string) error {
	switch format {
	case "terminal", "json", "markdown":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	var err error
	logger, err = logging.New(logging.Options{Verbose: verbose, Format: logFormat, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	if typologyPath != "" {
		table, err = typology.LoadFile(typologyPath)
	} else {
		table, err = typology.Default()
	}
	if err != nil {
		return fmt.Errorf("failed to load typology: %w", err)
	}
	logger.Debug("typology loaded", zap.Int("types", table.Len()), zap.String("path", typologyPath))

	out = ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)
	return nil
}

// GetUI returns the UI configured for the running command.
func GetUI() *ui.UI {
	if out == nil {
		out = ui.New(os.Stdout, os.Stderr, format)
	}
	return out
}

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(table, logging.Component(logger, "pipeline"))
}

func newReporter() reporter.Reporter {
	u := GetUI()
	switch {
	case u.IsJSON():
		return reporter.NewJSONReporter(u.Writer)
	case u.IsMarkdown():
		return reporter.NewMarkdownReporter(u.Writer)
	default:
		return reporter.NewTerminalReporter(u.Writer, u, table)
	}
}
