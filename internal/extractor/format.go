package extractor

import (
	"fmt"
	"strings"

	"github.com/pthm/squares/internal/spectrum"
)

// Format renders r as canonical assessment text for scheme. Extracting the
// result with the same scheme yields the same name, spectrum, type code,
// confidence and reasoning.
func Format(scheme *spectrum.Scheme, r *Record) (string, error) {
	if len(r.Spectrum) != len(scheme.Dimensions) {
		return "", fmt.Errorf("spectrum has %d scores, want %d", len(r.Spectrum), len(scheme.Dimensions))
	}
	if strings.TrimSpace(r.Name) == "" {
		return "", fmt.Errorf("record has no name")
	}
	if scheme.TypeCodeRequired && !scheme.ValidTypeCode(r.TypeCode) {
		return "", fmt.Errorf("invalid type code %q", r.TypeCode)
	}

	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteByte(' ')
	for _, s := range r.Spectrum {
		b.WriteString(scheme.Glyph(s))
	}
	if scheme.TypeCodeRequired {
		fmt.Fprintf(&b, " (%s)", r.TypeCode)
	}
	b.WriteByte('\n')

	for i, d := range scheme.Dimensions {
		s := r.Spectrum[i]
		fmt.Fprintf(&b, "%s: %s (%s)\n", d.Name, scheme.Glyph(s), scheme.Describe(i, s))
	}

	if r.Confidence != nil || r.Reasoning != "" {
		b.WriteByte('\n')
	}
	if r.Confidence != nil {
		fmt.Fprintf(&b, "Overall Confidence: %d%%\n", *r.Confidence)
	}
	if r.Reasoning != "" {
		fmt.Fprintf(&b, "Reasoning: %s\n", r.Reasoning)
	}
	return b.String(), nil
}
