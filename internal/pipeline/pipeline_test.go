package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pthm/squares/internal/convert"
	"github.com/pthm/squares/internal/extractor"
	"github.com/pthm/squares/internal/source"
	"github.com/pthm/squares/internal/spectrum"
	"github.com/pthm/squares/internal/typology"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	tbl, err := typology.Default()
	if err != nil {
		t.Fatalf("typology.Default: %v", err)
	}
	return New(tbl, nil)
}

func assessment(t *testing.T, scheme *spectrum.Scheme, name, code string, scores ...spectrum.Score) string {
	t.Helper()
	text, err := extractor.Format(scheme, &extractor.Record{Name: name, Spectrum: scores, TypeCode: code})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	return text
}

func TestProcessTextCurrent(t *testing.T) {
	p := newPipeline(t)
	text := assessment(t, spectrum.Current(), "Barack Obama", "LGSP", 1, 1, 3, 1)

	res := p.ProcessText(text, 4)
	if res.Err() != nil {
		t.Fatalf("ProcessText: %v", res.Err())
	}
	if res.Scheme != "current" {
		t.Errorf("Scheme = %q", res.Scheme)
	}
	if res.Conversion != nil {
		t.Errorf("current spectrum was converted: %+v", res.Conversion)
	}
	c := res.Classification
	if c == nil {
		t.Fatal("Classification is nil")
	}
	if c.Code != "LGSP" || c.Type == nil || c.Type.Name != "Progressives" {
		t.Errorf("Classification = %s %+v", c.Code, c.Type)
	}
	if len(c.Nearest) != typology.NearestCount {
		t.Errorf("len(Nearest) = %d", len(c.Nearest))
	}
}

func TestProcessTextLegacy(t *testing.T) {
	p := newPipeline(t)
	text := assessment(t, spectrum.Legacy(), "Neutral Figure", "", 3, 3, 3, 3, 3)

	res := p.ProcessText(text, 5)
	if res.Err() != nil {
		t.Fatalf("ProcessText: %v", res.Err())
	}
	if res.Conversion == nil {
		t.Fatal("Conversion is nil")
	}
	want := convert.Core{CivilRights: 3, Openness: 3, Redistribution: 3, Ethics: 3}
	if res.Conversion.Core != want {
		t.Errorf("Core = %+v, want %+v", res.Conversion.Core, want)
	}
	if res.Conversion.Confidence != 1 {
		t.Errorf("Confidence = %v, want 1", res.Conversion.Confidence)
	}
	if res.Classification == nil || res.Classification.Code != "ANST" {
		t.Errorf("Classification = %+v", res.Classification)
	}
}

func TestProcessTextUnknownScores(t *testing.T) {
	p := newPipeline(t)
	text := assessment(t, spectrum.Current(), "Unclear", "LGSP", 1, spectrum.Unknown, 3, 1)

	res := p.ProcessText(text, 4)
	if !res.OK() {
		t.Fatalf("ProcessText: %v", res.Err())
	}
	if res.Classification != nil {
		t.Errorf("classified a spectrum with unknown scores: %+v", res.Classification)
	}
}

func TestProcessTextFailures(t *testing.T) {
	p := newPipeline(t)

	res := p.ProcessText("nothing to see", 4)
	if !errors.Is(res.Err(), extractor.ErrNoAssessment) {
		t.Errorf("Err = %v, want ErrNoAssessment", res.Err())
	}
	if res.OK() || res.Error == "" {
		t.Errorf("failed result = %+v", res)
	}

	res = p.ProcessText("anything", 3)
	if res.Err() == nil {
		t.Error("unsupported dimension count accepted")
	}
}

func TestProcessDocument(t *testing.T) {
	p := newPipeline(t)
	legacy := assessment(t, spectrum.Legacy(), "Neutral Figure", "", 3, 3, 3, 3, 3)

	tests := []struct {
		name     string
		path     string
		content  string
		dims     int
		wantName string
		wantCode string
	}{
		{
			name:     "frontmatter selects legacy",
			path:     "neutral.md",
			content:  "---\nscheme: legacy\n---\n" + legacy,
			dims:     4,
			wantName: "Neutral Figure",
			wantCode: "ANST",
		},
		{
			name:     "fenced json without a name",
			path:     "neutral.json",
			content:  "```json\n{\"spectrum\":[0,0,0,0,0],\"confidence\":70,\"reasoning\":\"r\"}\n```",
			dims:     5,
			wantName: "",
			wantCode: "LGMP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := source.Parse(tt.path, []byte(tt.content))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			res := p.ProcessDocument(doc, tt.dims)
			if res.Err() != nil {
				t.Fatalf("ProcessDocument: %v", res.Err())
			}
			if res.Record.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", res.Record.Name, tt.wantName)
			}
			if res.Classification == nil || res.Classification.Code != tt.wantCode {
				t.Errorf("Classification = %+v, want %s", res.Classification, tt.wantCode)
			}
		})
	}
}

func TestConvertLogsClampedFields(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tbl, err := typology.Default()
	if err != nil {
		t.Fatal(err)
	}
	p := New(tbl, zap.New(core))

	conv, class := p.Convert(convert.Legacy{Trade: 9, Abortion: 0, Migration: 6, Economics: 0, Rights: 0})
	if diff := cmp.Diff([]string{"trade_score"}, conv.Clamped); diff != "" {
		t.Errorf("Clamped mismatch (-want +got):\n%s", diff)
	}
	if class.Code != typology.CallSign(conv.Core.Scores()) {
		t.Errorf("Code = %s", class.Code)
	}
	if n := logs.FilterMessage("legacy scores clamped").Len(); n != 1 {
		t.Errorf("clamp warnings = %d, want 1", n)
	}
}

func TestClassifyResult(t *testing.T) {
	p := newPipeline(t)

	res := p.Classify([4]int{0, 0, 0, 0})
	if !res.OK() || res.Classification == nil {
		t.Fatalf("Classify failed: %s", res.Error)
	}
	if res.Classification.Code != "LGMP" || res.Scheme != "current" {
		t.Errorf("got code %s scheme %s", res.Classification.Code, res.Scheme)
	}
	if v, ok := res.Record.Current(); !ok || v != [4]spectrum.Score{0, 0, 0, 0} || res.Record.TypeCode != "LGMP" {
		t.Errorf("Record = %+v", res.Record)
	}

	res = p.Classify([4]int{0, 6, 0, 0})
	if res.OK() || res.Classification != nil {
		t.Errorf("out-of-range scores classified: %+v", res)
	}
}

func TestConvertScores(t *testing.T) {
	p := newPipeline(t)
	mid := convert.Legacy{Trade: 3, Abortion: 3, Migration: 3, Economics: 3, Rights: 3}

	res := p.ConvertScores(mid, true)
	if !res.OK() {
		t.Fatalf("ConvertScores: %s", res.Error)
	}
	if res.Conversion == nil || res.Classification == nil {
		t.Fatalf("missing conversion or classification: %+v", res)
	}
	if want := [4]int{3, 3, 3, 3}; res.Conversion.Core.Scores() != want {
		t.Errorf("Core = %v, want %v", res.Conversion.Core.Scores(), want)
	}
	if res.Classification.Code != "ANST" {
		t.Errorf("Code = %s", res.Classification.Code)
	}

	bad := mid
	bad.Rights = 7
	if res := p.ConvertScores(bad, true); res.OK() || !errors.Is(res.Err(), convert.ErrOutOfRange) {
		t.Errorf("strict conversion of out-of-range input: %+v", res)
	}
	if res := p.ConvertScores(bad, false); !res.OK() || len(res.Conversion.Clamped) != 1 {
		t.Errorf("lenient conversion: %+v", res)
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun(t *testing.T) {
	p := newPipeline(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md":  assessment(t, spectrum.Current(), "Alpha", "LGMP", 0, 0, 0, 0),
		"b.md":  "no assessment here",
		"c.txt": assessment(t, spectrum.Current(), "Gamma", "ANST", 5, 5, 5, 5),
		"d.md":  "---\nscheme: legacy\n---\n" + assessment(t, spectrum.Legacy(), "Delta", "", 6, 6, 6, 6, 6),
	})
	paths := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "c.txt"),
		filepath.Join(dir, "d.md"),
		filepath.Join(dir, "missing.md"),
	}

	var calls []int
	results, err := p.Run(context.Background(), paths, Options{
		Concurrency: 2,
		Dimensions:  4,
		OnProgress: func(done, total int, _ Result) {
			if total != len(paths) {
				t.Errorf("total = %d", total)
			}
			calls = append(calls, done)
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(results) != len(paths) {
		t.Fatalf("len(results) = %d", len(results))
	}
	for i, r := range results {
		if r.Source != paths[i] {
			t.Errorf("results[%d].Source = %s, want %s", i, r.Source, paths[i])
		}
	}

	wantOK := []bool{true, false, true, true, false}
	for i, r := range results {
		if r.OK() != wantOK[i] {
			t.Errorf("results[%d].OK() = %v (%s)", i, r.OK(), r.Error)
		}
	}
	if !errors.Is(results[1].Err(), extractor.ErrNoAssessment) {
		t.Errorf("results[1].Err = %v", results[1].Err())
	}

	sort.Ints(calls)
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, calls); diff != "" {
		t.Errorf("progress calls mismatch (-want +got):\n%s", diff)
	}

	s := Summarize(results)
	want := Summary{
		Total:      5,
		Parsed:     3,
		Failed:     2,
		Classified: 3,
		Converted:  1,
		ByScheme:   map[string]int{"current": 2, "legacy": 1},
		ByCode:     map[string]int{"LGMP": 1, "ANST": 2},
		ByFamily:   map[string]int{"Builders": 1, "Unionists": 2},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}
}

func TestRunLogsCompletionAtDebug(t *testing.T) {
	tbl, err := typology.Default()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md": assessment(t, spectrum.Current(), "Alpha", "LGMP", 0, 0, 0, 0),
	})
	paths := []string{filepath.Join(dir, "a.md")}

	tests := []struct {
		name  string
		level zapcore.Level
		want  int
	}{
		{"info", zapcore.InfoLevel, 0},
		{"debug", zapcore.DebugLevel, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(tt.level)
			p := New(tbl, zap.New(core))
			if _, err := p.Run(context.Background(), paths, Options{Dimensions: 4}); err != nil {
				t.Fatalf("Run: %v", err)
			}
			entries := logs.FilterMessage("batch complete").All()
			if len(entries) != tt.want {
				t.Fatalf("batch complete entries = %d, want %d", len(entries), tt.want)
			}
			for _, e := range entries {
				if e.Level != zapcore.DebugLevel {
					t.Errorf("level = %s, want debug", e.Level)
				}
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	p := newPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, []string{"a.md", "b.md"}, Options{Dimensions: 4})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md":             "",
		"nested/b.json":    "",
		"nested/c.txt":     "",
		"nested/skip.go":   "",
		".hidden/d.md":     "",
		"explicit.unknown": "",
	})

	got, err := Collect([]string{dir, filepath.Join(dir, "explicit.unknown")})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "nested", "b.json"),
		filepath.Join(dir, "nested", "c.txt"),
		filepath.Join(dir, "explicit.unknown"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect mismatch (-want +got):\n%s", diff)
	}

	if _, err := Collect([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("Collect of a missing path succeeded")
	}
}

func TestWatch(t *testing.T) {
	p := newPipeline(t)
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan Result, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- p.Watch(ctx, dir, 4, func(r Result) {
			if !r.OK() {
				return
			}
			select {
			case results <- r:
			default:
			}
		})
	}()

	text := assessment(t, spectrum.Current(), "Watched", "LGMP", 1, 1, 1, 1)
	path := filepath.Join(dir, "watched.md")

	// The watcher may not be registered yet; keep rewriting until it reports.
	rewrite := time.NewTicker(500 * time.Millisecond)
	defer rewrite.Stop()
	deadline := time.After(10 * time.Second)

	writeFiles(t, dir, map[string]string{"watched.md": text})
	var got Result
wait:
	for {
		select {
		case got = <-results:
			break wait
		case <-rewrite.C:
			writeFiles(t, dir, map[string]string{"watched.md": text})
		case <-deadline:
			t.Fatal("no result from Watch")
		}
	}

	if got.Source != path || !got.OK() || got.Record.Name != "Watched" {
		t.Errorf("Watch result = %+v", got)
	}

	cancel()
	if err := <-errc; err != nil {
		t.Errorf("Watch: %v", err)
	}
}

func TestWatchMissingDir(t *testing.T) {
	p := newPipeline(t)
	err := p.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), 4, func(Result) {})
	if err == nil {
		t.Error("Watch of a missing directory succeeded")
	}
}
