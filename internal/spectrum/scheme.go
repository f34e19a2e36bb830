package spectrum

import (
	"fmt"
	"strings"
)

// variationSelector is the emoji presentation selector (U+FE0F) that some
// generators append to square glyphs.
const variationSelector = "\uFE0F"

// Dimension describes one scored axis of a Scheme.
type Dimension struct {
	// Key is the short identifier (C, O, R, E for the current scheme;
	// trade, abortion, ... for the legacy one).
	Key string

	// Name is the canonical label used in assessment text.
	Name string

	// Labels lists every accepted spelling of the label, Name included.
	Labels []string

	// Low and High are the call-sign letters for each pole. Zero for
	// schemes without call signs.
	Low, High byte

	LowPole     string
	HighPole    string
	Description string

	// Ramp holds a descriptive label per score value, if the scheme has one.
	Ramp []string
}

// Token maps one visual glyph to a score.
type Token struct {
	Glyph string
	Score Score
	Color string
}

// Scheme is an immutable description of a scoring system: its dimensions,
// its visual token table and its call-sign rules.
type Scheme struct {
	Name       string
	Max        int
	Dimensions []Dimension
	Tokens     []Token

	// TypeCodeRequired marks schemes whose assessment header must carry a
	// parenthesised call sign.
	TypeCodeRequired bool
}

// Decode maps a glyph to its score. A trailing variation selector is
// ignored.
func (s *Scheme) Decode(glyph string) (Score, bool) {
	glyph = strings.TrimSuffix(glyph, variationSelector)
	for _, t := range s.Tokens {
		if t.Glyph == glyph {
			return t.Score, true
		}
	}
	return Unknown, false
}

// Glyph returns the visual token for score, or the unknown token when score
// is Unknown or out of range.
func (s *Scheme) Glyph(score Score) string {
	unknown := ""
	for _, t := range s.Tokens {
		if t.Score == score {
			return t.Glyph
		}
		if t.Score == Unknown {
			unknown = t.Glyph
		}
	}
	return unknown
}

// Token returns the token for score.
func (s *Scheme) Token(score Score) (Token, bool) {
	for _, t := range s.Tokens {
		if t.Score == score {
			return t, true
		}
	}
	return Token{}, false
}

// Glyphs returns every glyph of the scheme in table order.
func (s *Scheme) Glyphs() []string {
	out := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		out[i] = t.Glyph
	}
	return out
}

// Alphabet returns the call-sign letters of the scheme, low pole first per
// dimension. Empty for schemes without call signs.
func (s *Scheme) Alphabet() string {
	var b strings.Builder
	for _, d := range s.Dimensions {
		if d.Low == 0 {
			continue
		}
		b.WriteByte(d.Low)
		b.WriteByte(d.High)
	}
	return b.String()
}

// ValidTypeCode reports whether code is a four-letter code drawn from the
// scheme's alphabet.
func (s *Scheme) ValidTypeCode(code string) bool {
	alphabet := s.Alphabet()
	if alphabet == "" || len(code) != len(s.Dimensions) {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(alphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}

// InRange reports whether v is a legal numeric score for the scheme.
func (s *Scheme) InRange(v int) bool {
	return v >= 0 && v <= s.Max
}

// Label returns the descriptive ramp label for a dimension score, or "" if
// the dimension has no ramp or the score is out of range.
func (s *Scheme) Label(dim int, score Score) string {
	if dim < 0 || dim >= len(s.Dimensions) || !score.Known() {
		return ""
	}
	ramp := s.Dimensions[dim].Ramp
	if int(score) >= len(ramp) {
		return ""
	}
	return ramp[score]
}

// Describe returns a short description of a dimension score: its ramp
// label when the dimension has one, otherwise the pole it leans to.
func (s *Scheme) Describe(dim int, score Score) string {
	if !score.Known() {
		return "Unknown"
	}
	if label := s.Label(dim, score); label != "" {
		return label
	}
	if dim < 0 || dim >= len(s.Dimensions) {
		return ""
	}
	d := s.Dimensions[dim]
	if int(score) <= s.Max/2 {
		return d.LowPole
	}
	return d.HighPole
}

// SchemeFor returns the scheme with the given number of dimensions.
func SchemeFor(dimensions int) (*Scheme, error) {
	switch dimensions {
	case len(current.Dimensions):
		return current, nil
	case len(legacy.Dimensions):
		return legacy, nil
	default:
		return nil, fmt.Errorf("no scheme with %d dimensions", dimensions)
	}
}

// SchemeNamed returns a scheme by name ("current" or "legacy").
func SchemeNamed(name string) (*Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case current.Name, "core":
		return current, nil
	case legacy.Name, "tamer":
		return legacy, nil
	default:
		return nil, fmt.Errorf("unknown scheme: %q", name)
	}
}
