package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/squares/internal/pipeline"
	"github.com/pthm/squares/internal/spectrum"
)

var classifyCmd = &cobra.Command{
	Use:   "classify C O R E | SQUARES",
	Short: "Classify four scores against the typology",
	Long: `Classify a 4-dimension score vector (Civil Rights, Openness,
Redistribution, Ethics; each 0-5) and list the nearest archetypes.

The scores may be given as four numbers or as one string of squares.

Examples:
  squares classify 1 1 4 1
  squares classify 🟦🟦🟧🟦`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 4 {
			return fmt.Errorf("want 4 scores or 1 string of squares, got %d arguments", len(args))
		}
		return nil
	},
	RunE: runClassify,
}

func init() {
	RootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	var (
		scores [4]int
		err    error
	)
	if len(args) == 1 {
		scores, err = parseSquares(args[0])
	} else {
		scores, err = parseScores(args)
	}
	if err != nil {
		return err
	}
	return report([]pipeline.Result{newPipeline().Classify(scores)})
}

func parseScores(args []string) ([4]int, error) {
	var scores [4]int
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return scores, fmt.Errorf("%s score %q is not a number", spectrum.Current().Dimensions[i].Name, a)
		}
		scores[i] = v
	}
	return scores, nil
}

// parseSquares decodes a run of current-scheme squares.
func parseSquares(s string) ([4]int, error) {
	var scores [4]int
	scheme := spectrum.Current()
	n := 0
	for _, r := range strings.ReplaceAll(strings.TrimSpace(s), "\uFE0F", "") {
		if n == len(scores) {
			return scores, fmt.Errorf("%q has more than %d squares", s, len(scores))
		}
		score, ok := scheme.Decode(string(r))
		if !ok {
			return scores, fmt.Errorf("%q is not a square", string(r))
		}
		v, known := score.Int()
		if !known {
			return scores, fmt.Errorf("cannot classify an unknown %s score", scheme.Dimensions[n].Name)
		}
		scores[n] = v
		n++
	}
	if n != len(scores) {
		return scores, fmt.Errorf("%q has %d squares, want %d", s, n, len(scores))
	}
	return scores, nil
}
