package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pthm/squares/internal/convert"
	"github.com/pthm/squares/internal/extractor"
	"github.com/pthm/squares/internal/source"
	"github.com/pthm/squares/internal/spectrum"
	"github.com/pthm/squares/internal/typology"
)

// Conversion records how a legacy spectrum was mapped onto the current
// scheme.
type Conversion struct {
	From       convert.Legacy `json:"from"`
	Core       convert.Core   `json:"core"`
	Confidence float64        `json:"confidence"`
	Clamped    []string       `json:"clamped,omitempty"`
}

// Result is the outcome of processing one assessment. Record is nil when
// extraction failed or for a direct conversion; Classification is nil when
// the spectrum has unknown scores.
type Result struct {
	Source         string                   `json:"source,omitempty"`
	Scheme         string                   `json:"scheme"`
	Record         *extractor.Record        `json:"record,omitempty"`
	Conversion     *Conversion              `json:"conversion,omitempty"`
	Classification *typology.Classification `json:"classification,omitempty"`
	Error          string                   `json:"error,omitempty"`

	err error
}

// Err returns the error that stopped processing, if any.
func (r Result) Err() error {
	return r.err
}

// OK reports whether processing succeeded.
func (r Result) OK() bool {
	return r.Error == ""
}

func (r *Result) fail(err error) {
	r.err = err
	r.Error = err.Error()
}

// Pipeline runs text through extraction, conversion and classification.
// It is safe for concurrent use.
type Pipeline struct {
	table      *typology.Table
	logger     *zap.Logger
	extractors map[int]*extractor.Extractor
}

// New builds a pipeline classifying against table. A nil logger discards
// output.
func New(table *typology.Table, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		table:      table,
		logger:     logger,
		extractors: make(map[int]*extractor.Extractor),
	}
	for _, s := range []*spectrum.Scheme{spectrum.Current(), spectrum.Legacy()} {
		p.extractors[len(s.Dimensions)] = extractor.New(s, extractor.WithLogger(logger.Named("extractor")))
	}
	return p
}

// Table returns the typology table results are classified against.
func (p *Pipeline) Table() *typology.Table {
	return p.table
}

// ProcessText extracts an assessment with the scheme of the given
// dimension count and completes it.
func (p *Pipeline) ProcessText(text string, dimensions int) Result {
	ex, err := p.extractorFor(dimensions)
	if err != nil {
		res := Result{}
		res.fail(err)
		return res
	}

	res := Result{Scheme: ex.Scheme().Name}
	rec, err := ex.Extract(text)
	if err != nil {
		res.fail(err)
		return res
	}
	p.complete(&res, rec)
	return res
}

// ProcessDocument extracts the assessment in doc. The document's
// frontmatter may override the default dimension count.
func (p *Pipeline) ProcessDocument(doc *source.Document, dimensions int) Result {
	res := Result{Source: doc.Path}

	dims, err := doc.Dimensions(dimensions)
	if err != nil {
		res.fail(err)
		return res
	}
	ex, err := p.extractorFor(dims)
	if err != nil {
		res.fail(err)
		return res
	}
	res.Scheme = ex.Scheme().Name

	var rec *extractor.Record
	if doc.Format == source.FormatJSON {
		rec, err = ex.ExtractJSON(doc.Body)
	} else {
		rec, err = ex.Extract(doc.Body)
	}
	if err != nil {
		p.logger.Debug("no assessment", zap.String("source", doc.Path), zap.Error(err))
		res.fail(err)
		return res
	}
	if rec.Name == "" {
		rec.Name = doc.Title()
	}

	p.complete(&res, rec)
	return res
}

// ProcessFile loads path and processes it.
func (p *Pipeline) ProcessFile(path string, dimensions int) Result {
	doc, err := source.Load(path)
	if err != nil {
		res := Result{Source: path}
		res.fail(err)
		return res
	}
	return p.ProcessDocument(doc, dimensions)
}

// Convert maps legacy scores onto the current scheme and classifies them.
// Out-of-range fields are clamped and logged.
func (p *Pipeline) Convert(l convert.Legacy) (*Conversion, typology.Classification) {
	c := &Conversion{
		From:       l,
		Core:       convert.Convert(l),
		Confidence: convert.Confidence(l),
		Clamped:    convert.OutOfRange(l),
	}
	if len(c.Clamped) > 0 {
		p.logger.Warn("legacy scores clamped", zap.Strings("fields", c.Clamped))
	}
	return c, p.table.Classify(c.Core.Scores())
}

// Classify wraps a direct classification of current-scheme scores in a
// Result whose Record carries the scores and derived call sign.
func (p *Pipeline) Classify(scores [4]int) Result {
	res := Result{Scheme: spectrum.Current().Name}
	for _, v := range scores {
		if !spectrum.Current().InRange(v) {
			res.fail(fmt.Errorf("score %d out of range 0..%d", v, spectrum.Current().Max))
			return res
		}
	}
	class := p.table.Classify(scores)
	res.Record = &extractor.Record{TypeCode: class.Code}
	for _, v := range scores {
		res.Record.Spectrum = append(res.Record.Spectrum, spectrum.Score(v))
	}
	res.Classification = &class
	return res
}

// ConvertScores wraps Convert in a Result. With strict set, out-of-range
// input fails instead of being clamped.
func (p *Pipeline) ConvertScores(l convert.Legacy, strict bool) Result {
	res := Result{Scheme: spectrum.Legacy().Name}
	if strict {
		if _, err := convert.ConvertStrict(l); err != nil {
			res.fail(err)
			return res
		}
	}
	conv, class := p.Convert(l)
	res.Conversion = conv
	res.Classification = &class
	return res
}

func (p *Pipeline) extractorFor(dimensions int) (*extractor.Extractor, error) {
	ex, ok := p.extractors[dimensions]
	if !ok {
		return nil, fmt.Errorf("unsupported dimension count %d", dimensions)
	}
	return ex, nil
}

// complete attaches rec to res and classifies it when every score is known.
// Legacy spectra are converted first.
func (p *Pipeline) complete(res *Result, rec *extractor.Record) {
	res.Record = rec
	if !rec.Known() {
		p.logger.Debug("spectrum has unknown scores, not classified",
			zap.String("source", res.Source),
			zap.String("name", rec.Name))
		return
	}

	if v, ok := rec.Legacy(); ok {
		l, err := convert.FromSpectrum(v)
		if err != nil {
			res.fail(err)
			return
		}
		conv, class := p.Convert(l)
		res.Conversion = conv
		res.Classification = &class
		return
	}

	if v, ok := rec.Current(); ok {
		var scores [4]int
		for i, s := range v {
			scores[i], _ = s.Int()
		}
		class := p.table.Classify(scores)
		res.Classification = &class
	}
}
