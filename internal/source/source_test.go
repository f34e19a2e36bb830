package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFormat(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    Format
	}{
		{"markdown", "/a/obama.md", "{", FormatText},
		{"text", "/a/obama.txt", "", FormatText},
		{"json", "/a/obama.json", "", FormatJSON},
		{"uppercase json", "/a/OBAMA.JSON", "", FormatJSON},
		{"sniffed json", "-", "  {\"spectrum\": []}", FormatJSON},
		{"sniffed text", "-", "Barack Obama", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetFormat(tt.path, []byte(tt.content)); got != tt.want {
				t.Errorf("GetFormat(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.md", true},
		{"a.markdown", true},
		{"a.txt", true},
		{"a.json", true},
		{"a.go", false},
		{"a", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Supported(tt.path); got != tt.want {
				t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantKeys []string
		wantBody string
	}{
		{
			name:     "with frontmatter",
			content:  "---\nscheme: legacy\nname: Lincoln\n---\nbody",
			wantKeys: []string{"scheme", "name"},
			wantBody: "body",
		},
		{
			name:     "no frontmatter",
			content:  "body only",
			wantBody: "body only",
		},
		{
			name:     "unterminated",
			content:  "---\nscheme: legacy\nbody",
			wantBody: "---\nscheme: legacy\nbody",
		},
		{
			name:     "invalid yaml",
			content:  "---\nkey: [unclosed\n---\nbody",
			wantBody: "---\nkey: [unclosed\n---\nbody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := ParseFrontmatter([]byte(tt.content))
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if len(fm) != len(tt.wantKeys) {
				t.Errorf("frontmatter = %v, want keys %v", fm, tt.wantKeys)
			}
			for _, k := range tt.wantKeys {
				if _, ok := fm[k]; !ok {
					t.Errorf("frontmatter missing %q", k)
				}
			}
		})
	}
}

func TestDocumentDimensions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{"default", "body", 4, false},
		{"legacy scheme", "---\nscheme: legacy\n---\nbody", 5, false},
		{"tamer alias", "---\nscheme: tamer\n---\nbody", 5, false},
		{"current scheme", "---\nscheme: current\n---\nbody", 4, false},
		{"dimensions", "---\ndimensions: 5\n---\nbody", 5, false},
		{"agreeing", "---\nscheme: legacy\ndimensions: 5\n---\nbody", 5, false},
		{"conflicting", "---\nscheme: legacy\ndimensions: 4\n---\nbody", 0, true},
		{"unknown scheme", "---\nscheme: other\n---\nbody", 0, true},
		{"unsupported count", "---\ndimensions: 3\n---\nbody", 0, true},
		{"non-integer count", "---\ndimensions: five\n---\nbody", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse("doc.md", []byte(tt.content))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got, err := doc.Dimensions(4)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Dimensions error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Dimensions = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lincoln.md")
	content := "---\nname: Abraham Lincoln\nscheme: legacy\n---\n# Abraham Lincoln\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Format != FormatText {
		t.Errorf("Format = %v, want text", doc.Format)
	}
	if doc.Title() != "Abraham Lincoln" {
		t.Errorf("Title = %q", doc.Title())
	}
	if doc.Body != "# Abraham Lincoln\n" {
		t.Errorf("Body = %q", doc.Body)
	}

	if _, err := Load(filepath.Join(dir, "missing.md")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}

func TestParseJSONKeepsBody(t *testing.T) {
	body := "---\n{\"spectrum\":[1,2,3,4,5]}"
	doc, err := Parse("a.json", []byte(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Body != body || doc.Frontmatter != nil {
		t.Errorf("JSON document altered: body=%q frontmatter=%v", doc.Body, doc.Frontmatter)
	}
}
