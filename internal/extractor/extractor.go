package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pthm/squares/internal/spectrum"
)

// ErrNoAssessment reports that a text did not contain a parseable
// assessment. Every extraction failure wraps it.
var ErrNoAssessment = errors.New("no assessment found")

// Period is one timeline entry of a JSON assessment.
type Period struct {
	Label    string           `json:"label"`
	Spectrum []spectrum.Score `json:"spectrum"`
	Note     string           `json:"note,omitempty"`
}

// Record is a successfully extracted assessment. Spectrum always holds
// exactly one score per dimension of the scheme it was extracted with.
type Record struct {
	Name       string           `json:"name,omitempty"`
	Spectrum   []spectrum.Score `json:"spectrum"`
	TypeCode   string           `json:"typeCode,omitempty"`
	Confidence *int             `json:"confidence,omitempty"`
	Reasoning  string           `json:"reasoning,omitempty"`
	Timeline   []Period         `json:"timeline,omitempty"`
}

// Current returns the spectrum as a 4-dimension vector.
func (r *Record) Current() ([4]spectrum.Score, bool) {
	var out [4]spectrum.Score
	if len(r.Spectrum) != len(out) {
		return out, false
	}
	copy(out[:], r.Spectrum)
	return out, true
}

// Legacy returns the spectrum as a 5-dimension vector.
func (r *Record) Legacy() ([5]spectrum.Score, bool) {
	var out [5]spectrum.Score
	if len(r.Spectrum) != len(out) {
		return out, false
	}
	copy(out[:], r.Spectrum)
	return out, true
}

// Known reports whether every score of the spectrum is known.
func (r *Record) Known() bool {
	return spectrum.AllKnown(r.Spectrum)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger rejections are reported to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// Extractor parses assessment text for one scheme. It holds only compiled
// patterns and is safe for concurrent use.
type Extractor struct {
	scheme *spectrum.Scheme
	logger *zap.Logger

	header     *regexp.Regexp
	dimension  *regexp.Regexp
	leadToken  *regexp.Regexp
	labelIndex map[string]int
}

var (
	confidencePattern = regexp.MustCompile(`Overall Confidence:\s*(\d+)%`)
	reasoningPattern  = regexp.MustCompile(`(?s)Reasoning:\s*(.+?)(?:\n[ \t]*\n|\z)`)
)

// New builds an Extractor for scheme.
func New(scheme *spectrum.Scheme, opts ...Option) *Extractor {
	e := &Extractor{
		scheme:     scheme,
		logger:     zap.NewNop(),
		labelIndex: make(map[string]int),
	}
	for _, opt := range opts {
		opt(e)
	}

	glyphs := make([]string, 0, len(scheme.Tokens))
	for _, g := range scheme.Glyphs() {
		glyphs = append(glyphs, regexp.QuoteMeta(g))
	}
	token := `(?:` + strings.Join(glyphs, "|") + `)\x{FE0F}?`

	var labels []string
	for i, d := range scheme.Dimensions {
		for _, l := range d.Labels {
			e.labelIndex[l] = i
			labels = append(labels, l)
		}
	}
	// Longest first so "Migration / Immigration" wins over "Migration".
	sort.SliceStable(labels, func(i, j int) bool { return len(labels[i]) > len(labels[j]) })
	for i, l := range labels {
		labels[i] = regexp.QuoteMeta(l)
	}

	e.header = regexp.MustCompile(`^[ \t]*#*[ \t]*(\S.*?)[ \t]+((?:` + token + `)+)[ \t]*(?:\(([^()]*)\))?`)
	e.dimension = regexp.MustCompile(`^[\s>*_#-]*(?:\*\*|__)?(` + strings.Join(labels, "|") + `)(?:\*\*|__)?:?(?:\*\*|__)?[ \t]*(` + token + `)`)
	e.leadToken = regexp.MustCompile(`^[ \t]*` + token)
	return e
}

// Scheme returns the scheme the extractor parses.
func (e *Extractor) Scheme() *spectrum.Scheme {
	return e.scheme
}

// Extract parses one assessment out of text. On failure the returned error
// wraps ErrNoAssessment and the record is nil.
func (e *Extractor) Extract(text string) (*Record, error) {
	rec, err := e.extract(text)
	if err != nil {
		e.logger.Debug("assessment rejected",
			zap.String("scheme", e.scheme.Name),
			zap.Error(err))
		return nil, err
	}
	return rec, nil
}

func (e *Extractor) extract(text string) (*Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fail("empty input")
	}

	plain := project([]byte(text))
	lines := strings.Split(plain, "\n")

	row, rec, err := e.parseHeader(lines)
	if err != nil {
		return nil, err
	}

	scores, err := e.parseDimensions(lines, row)
	if err != nil {
		return nil, err
	}
	rec.Spectrum = scores

	if m := confidencePattern.FindStringSubmatch(plain); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 && n <= 100 {
			rec.Confidence = &n
		}
	}
	if m := reasoningPattern.FindStringSubmatch(plain); m != nil {
		rec.Reasoning = strings.TrimSpace(m[1])
	}

	if len(rec.Spectrum) != len(e.scheme.Dimensions) {
		return nil, fail("spectrum has %d scores, want %d", len(rec.Spectrum), len(e.scheme.Dimensions))
	}
	return rec, nil
}

// parseHeader finds the header line and returns its index. For schemes
// with a type code the header is the earliest line that is a complete
// header, so legend lines like "Scale: 🟪 = 0" are passed over; otherwise
// it is the earliest line carrying a name followed by score tokens. When no
// line qualifies, the first candidate's rejection is returned.
func (e *Extractor) parseHeader(lines []string) (int, *Record, error) {
	var first error
	for i, line := range lines {
		m := e.header.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rec, err := e.headerRecord(i, m)
		if err == nil {
			return i, rec, nil
		}
		if !e.scheme.TypeCodeRequired {
			return 0, nil, err
		}
		if first == nil {
			first = err
		}
	}
	if first != nil {
		return 0, nil, first
	}
	return 0, nil, fail("no header line")
}

// headerRecord validates one header match found on line i.
func (e *Extractor) headerRecord(i int, m []string) (*Record, error) {
	name := strings.TrimSpace(strings.Trim(strings.TrimSpace(m[1]), "#"))
	if name == "" {
		return nil, fail("header on line %d has no name", i+1)
	}

	run, ok := e.decodeRun(m[2])
	if !ok {
		return nil, fail("header tokens on line %d do not decode", i+1)
	}
	if len(run) != len(e.scheme.Dimensions) {
		return nil, fail("header has %d tokens, want %d", len(run), len(e.scheme.Dimensions))
	}

	rec := &Record{Name: name}
	if e.scheme.TypeCodeRequired {
		code := m[3]
		if code == "" {
			return nil, fail("type code missing")
		}
		if !e.scheme.ValidTypeCode(code) {
			return nil, fail("malformed type code %q", code)
		}
		rec.TypeCode = code
	}
	return rec, nil
}

// decodeRun splits a contiguous token run into scores.
func (e *Extractor) decodeRun(run string) ([]spectrum.Score, bool) {
	var out []spectrum.Score
	for run != "" {
		loc := e.leadToken.FindStringIndex(run)
		if loc == nil {
			return nil, false
		}
		score, ok := e.scheme.Decode(strings.TrimSpace(run[:loc[1]]))
		if !ok {
			return nil, false
		}
		out = append(out, score)
		run = run[loc[1]:]
	}
	return out, true
}

// parseDimensions collects one score per dimension from the lines other than
// the header. A label followed by more than one token is not a dimension
// line. The number of dimension lines must match the scheme exactly.
func (e *Extractor) parseDimensions(lines []string, header int) ([]spectrum.Score, error) {
	want := len(e.scheme.Dimensions)
	scores := make([]spectrum.Score, want)
	seen := make([]bool, want)
	found := 0

	for i, line := range lines {
		if i == header {
			continue
		}
		loc := e.dimension.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		if e.leadToken.MatchString(line[loc[1]:]) {
			continue
		}

		label := line[loc[2]:loc[3]]
		dim := e.labelIndex[label]
		if seen[dim] {
			return nil, fail("dimension %s appears more than once", e.scheme.Dimensions[dim].Name)
		}
		score, ok := e.scheme.Decode(line[loc[4]:loc[5]])
		if !ok {
			return nil, fail("undecodable token for %s", e.scheme.Dimensions[dim].Name)
		}
		scores[dim] = score
		seen[dim] = true
		found++
	}

	if found != want {
		return nil, fail("found %d dimension lines, want %d", found, want)
	}
	return scores, nil
}

func fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNoAssessment, fmt.Sprintf(format, args...))
}

// Extract parses text with the scheme that has dimensions dimensions (4 for
// the current scheme, 5 for the legacy one). An unsupported dimension count
// is a caller error and does not wrap ErrNoAssessment.
func Extract(text string, dimensions int) (*Record, error) {
	scheme, err := spectrum.SchemeFor(dimensions)
	if err != nil {
		return nil, err
	}
	return New(scheme).Extract(text)
}
