package readme

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const maxDigestRunes = 200

// Excerpt pulls a title and a short digest out of README markdown: the text
// of the first heading and of the first non-empty paragraph. Either may be
// empty when the document has none.
func Excerpt(markdown string) (title, digest string) {
	src := []byte(markdown)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			if title == "" {
				title = nodeText(n, src)
			}
		case *ast.Paragraph:
			if digest == "" {
				digest = nodeText(n, src)
			}
		}
		if title != "" && digest != "" {
			break
		}
	}

	if r := []rune(digest); len(r) > maxDigestRunes {
		digest = string(r[:maxDigestRunes-3]) + "..."
	}
	return title, digest
}

// nodeText flattens the inline text of a block node, joining line breaks
// with single spaces.
func nodeText(node ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
