package spectrum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Score is a single dimension score. Valid scores are non-negative and
// bounded by the owning Scheme's Max; Unknown marks insufficient evidence
// and is never interchangeable with zero.
type Score int8

// Unknown is the sentinel for a dimension that could not be assessed.
const Unknown Score = -1

// Known reports whether s carries a numeric score.
func (s Score) Known() bool {
	return s >= 0
}

// Int returns the numeric score and true, or 0 and false for Unknown.
func (s Score) Int() (int, bool) {
	if !s.Known() {
		return 0, false
	}
	return int(s), true
}

func (s Score) String() string {
	if !s.Known() {
		return "?"
	}
	return strconv.Itoa(int(s))
}

// MarshalJSON encodes Unknown as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Known() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(s))), nil
}

// UnmarshalJSON decodes null as Unknown.
func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Unknown
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	if v < 0 || v > 127 {
		return fmt.Errorf("score: %d out of range", v)
	}
	*s = Score(v)
	return nil
}

// AllKnown reports whether every score in scores is Known.
func AllKnown(scores []Score) bool {
	for _, s := range scores {
		if !s.Known() {
			return false
		}
	}
	return true
}

// Ints converts scores to plain integers. It fails if any score is Unknown.
func Ints(scores []Score) ([]int, bool) {
	out := make([]int, len(scores))
	for i, s := range scores {
		v, ok := s.Int()
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
