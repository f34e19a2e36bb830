package extractor

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// project renders markdown source as plain text: heading markers, emphasis,
// list and quote markers are dropped, soft and hard breaks become newlines
// and blank lines between blocks are kept. Inline HTML, links, images, code
// spans and autolinks keep their source form.
func project(source []byte) string {
	doc := markdown.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	newline := func(n int) {
		if b.Len() == 0 {
			return
		}
		s := b.String()
		for have := len(s) - len(strings.TrimRight(s, "\n")); have < n; have++ {
			b.WriteByte('\n')
		}
	}

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Link:
			if entering {
				b.WriteByte('[')
			} else {
				writeTarget(&b, node.Destination, node.Title)
			}
			return ast.WalkContinue, nil
		case *ast.Image:
			if entering {
				b.WriteString("![")
			} else {
				writeTarget(&b, node.Destination, node.Title)
			}
			return ast.WalkContinue, nil
		}

		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock && n.Kind() != ast.KindDocument {
			if n.HasBlankPreviousLines() {
				newline(2)
			} else {
				newline(1)
			}
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(source))
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			writeCodeSpan(&b, node, source)
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				b.Write(seg.Value(source))
			}
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.WriteByte('<')
			b.Write(node.Label(source))
			b.WriteByte('>')
		}
		return ast.WalkContinue, nil
	})

	return b.String()
}

// writeTarget closes a link or image opened with "[" or "![".
func writeTarget(b *strings.Builder, destination, title []byte) {
	b.WriteString("](")
	b.Write(destination)
	if len(title) > 0 {
		b.WriteString(` "`)
		b.Write(title)
		b.WriteByte('"')
	}
	b.WriteByte(')')
}

// writeCodeSpan writes a code span with a backtick fence longer than any run
// inside it.
func writeCodeSpan(b *strings.Builder, node *ast.CodeSpan, source []byte) {
	var content strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			content.Write(t.Segment.Value(source))
		case *ast.String:
			content.Write(t.Value)
		}
	}
	code := content.String()

	longest, run := 0, 0
	for i := 0; i < len(code); i++ {
		if code[i] == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	pad := ""
	if strings.HasPrefix(code, "`") || strings.HasSuffix(code, "`") {
		pad = " "
	}
	b.WriteString(fence + pad + code + pad + fence)
}
