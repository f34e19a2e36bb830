package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pthm/squares/internal/convert"
	"github.com/pthm/squares/internal/extractor"
	"github.com/pthm/squares/internal/pipeline"
	"github.com/pthm/squares/internal/spectrum"
	"github.com/pthm/squares/internal/typology"
	"github.com/pthm/squares/internal/ui"
)

func fixtures(t *testing.T) (*typology.Table, []pipeline.Result) {
	t.Helper()
	tbl, err := typology.Default()
	if err != nil {
		t.Fatalf("typology.Default: %v", err)
	}
	p := pipeline.New(tbl, nil)

	conf := 85
	text, err := extractor.Format(spectrum.Current(), &extractor.Record{
		Name:       "Jane Doe",
		Spectrum:   []spectrum.Score{1, 1, 4, 1},
		TypeCode:   "LGSP",
		Confidence: &conf,
		Reasoning:  "Consistent record.",
	})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	results := []pipeline.Result{
		p.ProcessText(text, 4),
		p.ProcessText("nothing to see here", 4),
		p.ConvertScores(convert.Legacy{Trade: 3, Abortion: 3, Migration: 3, Economics: 3, Rights: 9}, false),
	}
	if !results[0].OK() || results[1].OK() || !results[2].OK() {
		t.Fatalf("unexpected fixture outcomes: %q %q %q", results[0].Error, results[1].Error, results[2].Error)
	}
	return tbl, results
}

func TestJSONReporter(t *testing.T) {
	_, results := fixtures(t)
	var buf bytes.Buffer
	if err := NewJSONReporter(&buf).Report(results); err != nil {
		t.Fatalf("Report: %v", err)
	}

	var out struct {
		Results []struct {
			Scheme         string `json:"scheme"`
			Error          string `json:"error"`
			Classification *struct {
				Code string `json:"code"`
			} `json:"classification"`
		} `json:"results"`
		Summary pipeline.Summary `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(out.Results) != 3 {
		t.Fatalf("len(results) = %d", len(out.Results))
	}
	if out.Results[0].Classification == nil || out.Results[0].Classification.Code != "LGSP" {
		t.Errorf("results[0] = %+v", out.Results[0])
	}
	if out.Results[1].Error == "" {
		t.Error("results[1] lost its error")
	}
	if out.Summary.Total != 3 || out.Summary.Failed != 1 || out.Summary.Classified != 2 {
		t.Errorf("summary = %+v", out.Summary)
	}
}

func TestJSONReporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter(&buf).Report(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"results": []`) {
		t.Errorf("empty report = %s", buf.String())
	}
}

func TestTerminalReporterPlain(t *testing.T) {
	tbl, results := fixtures(t)
	var buf bytes.Buffer
	u := ui.New(&buf, &bytes.Buffer{}, "terminal")
	if err := NewTerminalReporter(&buf, u, tbl).Report(results); err != nil {
		t.Fatalf("Report: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Jane Doe 🟦🟦🟧🟦 LGSP",
		"Civil Rights",
		"Liberty",
		"Confidence 85%",
		"Reasoning Consistent record.",
		"LGSP Progressives",
		"FAIL:",
		"no assessment",
		"Input Trade 3, Abortion 3, Migration 3, Economics 3, Rights 9",
		"WARN: clamped: rights_score",
		"Processed 3 assessments: 2 classified, 1 failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminalReporterUnknownScores(t *testing.T) {
	tbl, err := typology.Default()
	if err != nil {
		t.Fatal(err)
	}
	p := pipeline.New(tbl, nil)
	res := p.ProcessText("Someone 🟦⬜🟧🟦 (LGSP)\nCivil Rights: 🟦\nOpenness: ⬜\nRedistribution: 🟧\nEthics: 🟦\n", 4)
	if !res.OK() {
		t.Fatalf("ProcessText: %s", res.Error)
	}

	var buf bytes.Buffer
	u := ui.New(&buf, &bytes.Buffer{}, "terminal")
	if err := NewTerminalReporter(&buf, u, tbl).Report([]pipeline.Result{res}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Not classified") {
		t.Errorf("output missing unclassified note:\n%s", out)
	}
	if strings.Contains(out, "Processed") {
		t.Errorf("single result printed a summary:\n%s", out)
	}
}

func TestTerminalReporterEmpty(t *testing.T) {
	tbl, _ := fixtures(t)
	var buf bytes.Buffer
	u := ui.New(&buf, &bytes.Buffer{}, "terminal")
	if err := NewTerminalReporter(&buf, u, tbl).Report(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No assessments found") {
		t.Errorf("got %q", buf.String())
	}
}

func TestMarkdownReporter(t *testing.T) {
	_, results := fixtures(t)

	var buf bytes.Buffer
	if err := NewMarkdownReporter(&buf).Report(results); err != nil {
		t.Fatalf("Report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"| Jane Doe", "LGSP Progressives (", "85%", "🟥🟨🟨🟥", "---"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := NewMarkdownReporter(&buf).Report(results[:1]); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Nearest archetypes") {
		t.Errorf("single result without nearest table:\n%s", buf.String())
	}
}

func TestTypeLabel(t *testing.T) {
	tbl, err := typology.Default()
	if err != nil {
		t.Fatal(err)
	}
	c := tbl.Classify([4]int{1, 1, 4, 1})
	if got := typeLabel(&c); !strings.HasPrefix(got, "LGSP Progressives (") {
		t.Errorf("typeLabel = %q", got)
	}
	miss := typology.Classification{Code: "ANST"}
	if got := typeLabel(&miss); got != "ANST (unlisted)" {
		t.Errorf("typeLabel(miss) = %q", got)
	}
	if got := typeLabel(nil); got != "" {
		t.Errorf("typeLabel(nil) = %q", got)
	}
}

func TestWriteTypes(t *testing.T) {
	tbl, err := typology.Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format string
		want   []string
	}{
		{"terminal", []string{"LGSP", "Progressives", "C Civil Rights (L Liberty / A Authority)"}},
		{"markdown", []string{"| LGSP", "Progressives", "---"}},
		{"json", []string{`"code": "LGSP"`, `"variations"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			u := ui.New(&buf, &bytes.Buffer{}, tt.format)
			if err := WriteTypes(u, tbl.Types()); err != nil {
				t.Fatalf("WriteTypes: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
