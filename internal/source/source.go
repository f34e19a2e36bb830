package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm/squares/internal/spectrum"
)

// Document is an assessment loaded from disk or stdin
type Document struct {
	Path        string
	Format      Format
	Body        string
	Frontmatter map[string]interface{} // YAML frontmatter from text documents
}

// Format is how the body of a document is encoded
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	default:
		return "text"
	}
}

// Stdin is the path that names standard input.
const Stdin = "-"

// Load reads and parses the document at path. "-" reads standard input.
func Load(path string) (*Document, error) {
	var (
		content []byte
		err     error
	)
	if path == Stdin {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return Parse(path, content)
}

// Parse builds a document from content. The format is chosen by extension;
// documents without a known extension are sniffed.
func Parse(path string, content []byte) (*Document, error) {
	doc := &Document{
		Path:   path,
		Format: GetFormat(path, content),
	}

	if doc.Format == FormatJSON {
		doc.Body = string(content)
		return doc, nil
	}

	frontmatter, body := ParseFrontmatter(content)
	doc.Frontmatter = frontmatter
	doc.Body = string(body)
	return doc, nil
}

// GetFormat returns the Format for a path, falling back to the content when
// the extension says nothing.
func GetFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".md", ".markdown", ".txt":
		return FormatText
	}
	if strings.HasPrefix(strings.TrimSpace(string(content)), "{") {
		return FormatJSON
	}
	return FormatText
}

// Supported reports whether path has an extension assessments are read from.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".txt", ".json":
		return true
	default:
		return false
	}
}

// Title returns the "name" frontmatter field, if any.
func (d *Document) Title() string {
	if v, ok := d.Frontmatter["name"].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Dimensions returns the dimension count the document declares through its
// "scheme" or "dimensions" frontmatter, or def when it declares neither.
func (d *Document) Dimensions(def int) (int, error) {
	dims := 0

	if v, ok := d.Frontmatter["scheme"]; ok {
		name, ok := v.(string)
		if !ok {
			return 0, fmt.Errorf("%s: scheme must be a string", d.Path)
		}
		scheme, err := spectrum.SchemeNamed(name)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", d.Path, err)
		}
		dims = len(scheme.Dimensions)
	}

	if v, ok := d.Frontmatter["dimensions"]; ok {
		n, ok := v.(int)
		if !ok {
			return 0, fmt.Errorf("%s: dimensions must be an integer", d.Path)
		}
		if _, err := spectrum.SchemeFor(n); err != nil {
			return 0, fmt.Errorf("%s: %w", d.Path, err)
		}
		if dims != 0 && dims != n {
			return 0, fmt.Errorf("%s: scheme has %d dimensions, frontmatter says %d", d.Path, dims, n)
		}
		dims = n
	}

	if dims == 0 {
		return def, nil
	}
	return dims, nil
}

// ParseFrontmatter extracts YAML frontmatter from content between --- delimiters
// Returns the parsed frontmatter and the remaining content without frontmatter
func ParseFrontmatter(content []byte) (map[string]interface{}, []byte) {
	s := string(content)

	// Must start with ---
	if !strings.HasPrefix(s, "---") {
		return nil, content
	}

	// Find the closing ---
	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content
	}

	frontmatterStr := strings.TrimSpace(rest[:endIdx])

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal([]byte(frontmatterStr), &frontmatter); err != nil {
		return nil, content
	}

	remaining := rest[endIdx+4:] // +4 for "\n---"
	if strings.HasPrefix(remaining, "\n") {
		remaining = remaining[1:]
	}

	return frontmatter, []byte(remaining)
}
