package extractor

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/pthm/squares/internal/spectrum"
)

const (
	defaultPeriodLabel = "Overall Career"
	maxNoteRunes       = 200
)

// ExtractJSON parses a JSON assessment of the form
//
//	{"spectrum":[...],"confidence":N,"reasoning":"...","timeline":[{"label":"...","spectrum":[...],"note":"..."}]}
//
// The object may be wrapped in prose or a code fence; the first top-level
// object is used. Scores are integers within the scheme range or null. When
// the timeline is absent a single period covering the whole spectrum is
// synthesised.
func (e *Extractor) ExtractJSON(text string) (*Record, error) {
	rec, err := e.extractJSON(text)
	if err != nil {
		e.logger.Debug("json assessment rejected",
			zap.String("scheme", e.scheme.Name),
			zap.Error(err))
		return nil, err
	}
	return rec, nil
}

func (e *Extractor) extractJSON(text string) (*Record, error) {
	raw, err := locateObject(text)
	if err != nil {
		return nil, err
	}
	doc := gjson.Parse(raw)

	scores, err := e.jsonSpectrum(doc.Get("spectrum"))
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Name:      strings.TrimSpace(doc.Get("name").String()),
		Spectrum:  scores,
		Reasoning: strings.TrimSpace(doc.Get("reasoning").String()),
	}

	if c := doc.Get("confidence"); c.Type == gjson.Number {
		if n := c.Float(); n == math.Trunc(n) && n >= 0 && n <= 100 {
			v := int(n)
			rec.Confidence = &v
		}
	}

	code := doc.Get("typeCode").String()
	switch {
	case !e.scheme.TypeCodeRequired:
	case code == "":
		return nil, fail("type code missing")
	case !e.scheme.ValidTypeCode(code):
		return nil, fail("malformed type code %q", code)
	default:
		rec.TypeCode = code
	}

	var periodErr error
	doc.Get("timeline").ForEach(func(_, p gjson.Result) bool {
		ps, err := e.jsonSpectrum(p.Get("spectrum"))
		if err != nil {
			periodErr = err
			return false
		}
		rec.Timeline = append(rec.Timeline, Period{
			Label:    p.Get("label").String(),
			Spectrum: ps,
			Note:     p.Get("note").String(),
		})
		return true
	})
	if periodErr != nil {
		return nil, periodErr
	}
	if len(rec.Timeline) == 0 {
		rec.Timeline = []Period{{
			Label:    defaultPeriodLabel,
			Spectrum: append([]spectrum.Score(nil), rec.Spectrum...),
			Note:     truncate(rec.Reasoning, maxNoteRunes),
		}}
	}

	return rec, nil
}

func (e *Extractor) jsonSpectrum(v gjson.Result) ([]spectrum.Score, error) {
	if !v.IsArray() {
		return nil, fail("spectrum is not an array")
	}
	items := v.Array()
	if len(items) != len(e.scheme.Dimensions) {
		return nil, fail("spectrum has %d scores, want %d", len(items), len(e.scheme.Dimensions))
	}

	out := make([]spectrum.Score, len(items))
	for i, item := range items {
		switch item.Type {
		case gjson.Null:
			out[i] = spectrum.Unknown
		case gjson.Number:
			n := item.Float()
			if n != math.Trunc(n) || n < 0 || n > float64(e.scheme.Max) {
				return nil, fail("score %v out of range", item.Raw)
			}
			out[i] = spectrum.Score(n)
		default:
			return nil, fail("score %s is not a number", item.Raw)
		}
	}
	return out, nil
}

// locateObject returns text when it is valid JSON, or else the span from the
// first '{' to the last '}'.
func locateObject(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", fail("empty input")
	}
	if gjson.Valid(s) && gjson.Parse(s).IsObject() {
		return s, nil
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return "", fail("no JSON object in text")
	}
	sub := s[start : end+1]
	if !gjson.Valid(sub) {
		return "", fail("invalid JSON object")
	}
	return sub, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
