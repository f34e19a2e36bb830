package convert

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pthm/squares/internal/spectrum"
)

const (
	legacyMax = 6
	coreMax   = 5
)

var (
	// ErrOutOfRange is returned by ConvertStrict for scores outside 0..6.
	ErrOutOfRange = errors.New("legacy score out of range")

	// ErrUnknownScore is returned by FromSpectrum when a score is unknown.
	ErrUnknownScore = errors.New("legacy score unknown")
)

// Legacy is a 5-dimension score vector on the 0..6 scale. Each dimension
// measures increasing government intervention.
type Legacy struct {
	Trade     float64 `json:"trade_score"`
	Abortion  float64 `json:"abortion_score"`
	Migration float64 `json:"migration_score"`
	Economics float64 `json:"economics_score"`
	Rights    float64 `json:"rights_score"`
}

// Core is a 4-dimension score vector on the 0..5 scale.
type Core struct {
	CivilRights    int `json:"civil_rights_score"`
	Openness       int `json:"openness_score"`
	Redistribution int `json:"redistribution_score"`
	Ethics         int `json:"ethics_score"`
}

// Scores returns c in dimension order, ready for classification.
func (c Core) Scores() [4]int {
	return [4]int{c.CivilRights, c.Openness, c.Redistribution, c.Ethics}
}

// Convert maps l onto the 4-dimension scheme:
//
//	civil rights   = scale(mean(rights, abortion))
//	openness       = scale(mean(migration, trade))
//	redistribution = scale(economics)
//	ethics         = scale(0.6*abortion + 0.4*rights)
//
// scale clamps to 0..6, multiplies by 5/6 and rounds half up once. Inputs
// outside 0..6 are clamped silently; use OutOfRange or ConvertStrict to
// detect them.
//
// Weighted means are kept as exact rationals, so results can differ from
// implementations that weight in floating point: abortion=1, rights=0 gives
// ethics 1 here where 0.6*1 in floats rounds to 0, and abortion=3, rights=0
// gives 2 where floats give 1.
func Convert(l Legacy) Core {
	return Core{
		CivilRights:    scale(l.Rights+l.Abortion, 2),
		Openness:       scale(l.Migration+l.Trade, 2),
		Redistribution: scale(l.Economics, 1),
		Ethics:         scale(3*l.Abortion+2*l.Rights, 5),
	}
}

// scale maps num/den from 0..6 to 0..5. Keeping the denominator separate
// makes half-way values exact for integer inputs.
func scale(num, den float64) int {
	if math.IsNaN(num) {
		num = 0
	}
	x := math.Max(0, math.Min(legacyMax*den, num))
	v := int(math.Floor(x*coreMax/(legacyMax*den) + 0.5))
	return min(max(v, 0), coreMax)
}

// ConvertAll converts every vector, preserving order.
func ConvertAll(ls []Legacy) []Core {
	out := make([]Core, len(ls))
	for i, l := range ls {
		out[i] = Convert(l)
	}
	return out
}

// Confidence is an advisory consistency score in [0,1]:
//
//	1 - mean(|rights-abortion|, |migration-trade|) / 6
//
// Related legacy dimensions that agree give values near 1. It is not used
// to reject conversions.
func Confidence(l Legacy) float64 {
	rights := math.Abs(clamp(l.Rights) - clamp(l.Abortion))
	openness := math.Abs(clamp(l.Migration) - clamp(l.Trade))
	return 1 - (rights+openness)/2/legacyMax
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(legacyMax, v))
}

// OutOfRange returns the JSON names of the fields of l that lie outside
// 0..6.
func OutOfRange(l Legacy) []string {
	fields := []struct {
		name  string
		value float64
	}{
		{"trade_score", l.Trade},
		{"abortion_score", l.Abortion},
		{"migration_score", l.Migration},
		{"economics_score", l.Economics},
		{"rights_score", l.Rights},
	}

	var bad []string
	for _, f := range fields {
		if math.IsNaN(f.value) || f.value < 0 || f.value > legacyMax {
			bad = append(bad, f.name)
		}
	}
	return bad
}

// ConvertStrict is Convert without clamping: out-of-range input is rejected
// with ErrOutOfRange.
func ConvertStrict(l Legacy) (Core, error) {
	if bad := OutOfRange(l); len(bad) > 0 {
		return Core{}, fmt.Errorf("%w: %s", ErrOutOfRange, strings.Join(bad, ", "))
	}
	return Convert(l), nil
}

// FromSpectrum builds a Legacy vector from an extracted 5-dimension
// spectrum. Unknown scores cannot be converted.
func FromSpectrum(s [5]spectrum.Score) (Legacy, error) {
	var v [5]float64
	for i, score := range s {
		n, ok := score.Int()
		if !ok {
			return Legacy{}, fmt.Errorf("%w: %s", ErrUnknownScore, spectrum.Legacy().Dimensions[i].Name)
		}
		v[i] = float64(n)
	}
	return Legacy{Trade: v[0], Abortion: v[1], Migration: v[2], Economics: v[3], Rights: v[4]}, nil
}
