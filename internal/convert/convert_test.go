package convert

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm/squares/internal/spectrum"
)

func uniform(v float64) Legacy {
	return Legacy{Trade: v, Abortion: v, Migration: v, Economics: v, Rights: v}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		in   Legacy
		want Core
	}{
		{"all zero", uniform(0), Core{0, 0, 0, 0}},
		{"all three", uniform(3), Core{3, 3, 3, 3}},
		{"all six", uniform(6), Core{5, 5, 5, 5}},
		{"all one", uniform(1), Core{1, 1, 1, 1}},
		{"all two", uniform(2), Core{2, 2, 2, 2}},
		{"all four", uniform(4), Core{3, 3, 3, 3}},
		{"all five", uniform(5), Core{4, 4, 4, 4}},
		{
			name: "abortion weighs more in ethics",
			in:   Legacy{Abortion: 6, Rights: 0},
			want: Core{CivilRights: 3, Openness: 0, Redistribution: 0, Ethics: 3},
		},
		{
			name: "rights alone",
			in:   Legacy{Abortion: 0, Rights: 6},
			want: Core{CivilRights: 3, Openness: 0, Redistribution: 0, Ethics: 2},
		},
		{
			name: "half way rounds up",
			in:   Legacy{Abortion: 1},
			want: Core{CivilRights: 0, Ethics: 1},
		},
		{
			name: "exact weighting rounds half up",
			in:   Legacy{Abortion: 3},
			want: Core{CivilRights: 1, Ethics: 2},
		},
		{
			name: "openness mixes migration and trade",
			in:   Legacy{Trade: 6, Migration: 2},
			want: Core{Openness: 3},
		},
		{
			name: "redistribution follows economics",
			in:   Legacy{Economics: 3},
			want: Core{Redistribution: 3},
		},
		{
			name: "above range is clamped",
			in:   uniform(9),
			want: Core{5, 5, 5, 5},
		},
		{
			name: "below range is clamped",
			in:   uniform(-4),
			want: Core{0, 0, 0, 0},
		},
		{
			name: "NaN counts as zero",
			in:   uniform(math.NaN()),
			want: Core{0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.in); got != tt.want {
				t.Errorf("Convert(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertRange(t *testing.T) {
	for t0 := 0; t0 <= 6; t0++ {
		for a := 0; a <= 6; a++ {
			for m := 0; m <= 6; m++ {
				for e := 0; e <= 6; e++ {
					for r := 0; r <= 6; r++ {
						l := Legacy{float64(t0), float64(a), float64(m), float64(e), float64(r)}
						for i, v := range Convert(l).Scores() {
							if v < 0 || v > 5 {
								t.Fatalf("Convert(%+v) dimension %d = %d", l, i, v)
							}
						}
						if c := Confidence(l); c < 0 || c > 1 {
							t.Fatalf("Confidence(%+v) = %v", l, c)
						}
					}
				}
			}
		}
	}
}

func TestConvertAll(t *testing.T) {
	in := []Legacy{uniform(0), uniform(6), uniform(3)}
	want := []Core{{0, 0, 0, 0}, {5, 5, 5, 5}, {3, 3, 3, 3}}
	if diff := cmp.Diff(want, ConvertAll(in)); diff != "" {
		t.Errorf("ConvertAll mismatch (-want +got):\n%s", diff)
	}
	if got := ConvertAll(nil); len(got) != 0 {
		t.Errorf("ConvertAll(nil) = %v", got)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   Legacy
		want float64
	}{
		{"consistent", uniform(4), 1},
		{"fully inconsistent", Legacy{Rights: 0, Abortion: 6, Migration: 6, Trade: 0}, 0},
		{"half", Legacy{Rights: 0, Abortion: 6}, 0.5},
		{"clamped inputs", Legacy{Rights: -10, Abortion: 20, Migration: 20, Trade: -10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Confidence(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOutOfRangeAndStrict(t *testing.T) {
	l := Legacy{Trade: 7, Abortion: 3, Migration: -1, Economics: 6, Rights: 0}

	if diff := cmp.Diff([]string{"trade_score", "migration_score"}, OutOfRange(l)); diff != "" {
		t.Errorf("OutOfRange mismatch (-want +got):\n%s", diff)
	}

	if _, err := ConvertStrict(l); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ConvertStrict error = %v, want ErrOutOfRange", err)
	}

	got, err := ConvertStrict(uniform(3))
	if err != nil {
		t.Fatalf("ConvertStrict: %v", err)
	}
	if got != Convert(uniform(3)) {
		t.Errorf("ConvertStrict = %+v, want %+v", got, Convert(uniform(3)))
	}
}

func TestFromSpectrum(t *testing.T) {
	got, err := FromSpectrum([5]spectrum.Score{1, 2, 3, 4, 6})
	if err != nil {
		t.Fatalf("FromSpectrum: %v", err)
	}
	want := Legacy{Trade: 1, Abortion: 2, Migration: 3, Economics: 4, Rights: 6}
	if got != want {
		t.Errorf("FromSpectrum = %+v, want %+v", got, want)
	}

	_, err = FromSpectrum([5]spectrum.Score{1, 2, spectrum.Unknown, 4, 6})
	if !errors.Is(err, ErrUnknownScore) {
		t.Errorf("FromSpectrum error = %v, want ErrUnknownScore", err)
	}
}
