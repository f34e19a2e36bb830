package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pthm/squares/internal/convert"
	"github.com/pthm/squares/internal/pipeline"
	"github.com/pthm/squares/internal/source"
	"github.com/pthm/squares/internal/spectrum"
)

var (
	strict    bool
	inputPath string
)

var convertCmd = &cobra.Command{
	Use:   "convert T A M E R",
	Short: "Convert legacy 5-dimension scores and classify them",
	Long: `Convert scores from the legacy scheme (Trade, Abortion, Migration,
Economics, Rights; each 0-6) onto the current 4-dimension scheme and
classify the result.

Out-of-range scores are clamped unless --strict is set. With --input,
reads a JSON object or array of objects with trade_score,
abortion_score, migration_score, economics_score and rights_score.

Examples:
  squares convert 3 5 2 4 1
  squares convert --input scores.json --format json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if inputPath != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(len(spectrum.Legacy().Dimensions))(cmd, args)
	},
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&strict, "strict", false, "Reject scores outside 0-6 instead of clamping")
	convertCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read legacy score records from a JSON file (- for stdin)")
	RootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	var inputs []convert.Legacy
	if inputPath != "" {
		var err error
		inputs, err = readLegacy(inputPath)
		if err != nil {
			return err
		}
	} else {
		l, err := parseLegacy(args)
		if err != nil {
			return err
		}
		inputs = []convert.Legacy{l}
	}

	p := newPipeline()
	results := make([]pipeline.Result, 0, len(inputs))
	for _, l := range inputs {
		results = append(results, p.ConvertScores(l, strict))
	}
	return report(results)
}

func parseLegacy(args []string) (convert.Legacy, error) {
	var v [5]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return convert.Legacy{}, fmt.Errorf("%s score %q is not a number", spectrum.Legacy().Dimensions[i].Name, a)
		}
		v[i] = f
	}
	return convert.Legacy{Trade: v[0], Abortion: v[1], Migration: v[2], Economics: v[3], Rights: v[4]}, nil
}

// readLegacy decodes a single legacy record or an array of them.
func readLegacy(path string) ([]convert.Legacy, error) {
	var (
		data []byte
		err  error
	)
	if path == source.Stdin {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var out []convert.Legacy
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return out, nil
	}
	var one convert.Legacy
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return []convert.Legacy{one}, nil
}
