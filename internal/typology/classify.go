package typology

import (
	"math"
	"sort"

	"github.com/pthm/squares/internal/spectrum"
)

// NearestCount is the number of archetype matches Classify returns.
const NearestCount = 3

// lowCut is the highest score that still maps to a dimension's low pole.
const lowCut = 2

// Match is one ranked (type, variation) candidate.
type Match struct {
	TypeCode      string       `json:"typeCode"`
	TypeName      string       `json:"typeName"`
	FamilyCode    string       `json:"familyCode"`
	FamilyName    string       `json:"familyName"`
	VariationKey  VariationKey `json:"variationKey"`
	VariationName string       `json:"variationName"`
	Distance      float64      `json:"distance"`
}

// Classification is the result of placing a score vector in the typology.
// Type and Family are nil when the call sign has no entry in the table.
type Classification struct {
	Code    string  `json:"code"`
	Type    *Type   `json:"type,omitempty"`
	Family  *Family `json:"family,omitempty"`
	Nearest []Match `json:"nearest"`
}

// CallSign derives the 4-letter code for scores: the low-pole letter when a
// score is at most 2, the high-pole letter otherwise. Scores must already be
// within 0..5; out-of-range input is not checked.
func CallSign(scores [4]int) string {
	dims := spectrum.Current().Dimensions
	code := make([]byte, len(scores))
	for i, v := range scores {
		if v <= lowCut {
			code[i] = dims[i].Low
		} else {
			code[i] = dims[i].High
		}
	}
	return string(code)
}

// FamilyCodeOf returns the family code of a call sign: its Openness and
// Redistribution letters.
func FamilyCodeOf(code string) string {
	if len(code) != 4 {
		return ""
	}
	return code[1:3]
}

// validCallSign reports whether every letter of code is one of the two poles
// of its dimension.
func validCallSign(code string) bool {
	dims := spectrum.Current().Dimensions
	if len(code) != len(dims) {
		return false
	}
	for i, d := range dims {
		if code[i] != d.Low && code[i] != d.High {
			return false
		}
	}
	return true
}

// Classify places scores in the table. A call sign without a table entry is
// not an error: Type and Family stay nil and Nearest is still computed.
func (t *Table) Classify(scores [4]int) Classification {
	c := Classification{
		Code:    CallSign(scores),
		Nearest: t.Nearest(scores, NearestCount),
	}
	if typ, ok := t.Type(c.Code); ok {
		c.Type = &typ
		if f, ok := t.Family(typ.FamilyCode); ok {
			c.Family = &f
		}
	}
	return c
}

// Nearest ranks every (type, variation) pair of the table by Euclidean
// distance to scores and returns the closest k. Equal distances are ordered
// by type code, then moderate < default < extreme.
func (t *Table) Nearest(scores [4]int, k int) []Match {
	matches := make([]Match, 0, len(t.codes)*len(variationOrder))
	for _, code := range t.codes {
		typ := t.types[code]
		for _, v := range typ.Variations {
			matches = append(matches, Match{
				TypeCode:      typ.Code,
				TypeName:      typ.Name,
				FamilyCode:    typ.FamilyCode,
				FamilyName:    typ.FamilyName,
				VariationKey:  v.Key,
				VariationName: v.Name,
				Distance:      Distance(scores, v.Scores),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.TypeCode != b.TypeCode {
			return a.TypeCode < b.TypeCode
		}
		return a.VariationKey.rank() < b.VariationKey.rank()
	})

	if k >= 0 && k < len(matches) {
		matches = matches[:k]
	}
	return matches
}

// Distance is the Euclidean distance between two score vectors.
func Distance(a, b [4]int) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
