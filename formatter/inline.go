package formatter

import (
	"strconv"
	"strings"

	"github.com/txxtlang/txxt/ast"
)

// inlineText renders a run of inline nodes back to TXXT source text,
// the inverse of parser/inline.go's parseInlineSeq. Identity nodes
// already hold their literal source text, so only the delimiter and
// bracket forms need reconstructing.
func inlineText(inlines []ast.Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		b.WriteString(renderInline(in))
	}
	return b.String()
}

func renderInline(in ast.Inline) string {
	switch n := in.(type) {
	case *ast.Identity:
		return n.Text
	case *ast.Emphasis:
		return "_" + inlineText(n.Children) + "_"
	case *ast.Strong:
		return "*" + inlineText(n.Children) + "*"
	case *ast.CodeSpan:
		return "`" + n.Text + "`"
	case *ast.Math:
		return "#" + n.Text + "#"
	case *ast.Citation:
		return "[@" + n.Key + "]"
	case *ast.Footnote:
		return "[" + strconv.Itoa(n.Number) + "]"
	case *ast.Reference:
		return renderReference(n)
	default:
		return ""
	}
}

func renderReference(r *ast.Reference) string {
	switch r.Kind {
	case ast.RefSection:
		return "[#" + r.Target + "]"
	case ast.RefPage:
		return "[p. " + strconv.Itoa(r.Page) + "]"
	default:
		return "[" + r.Target + "]"
	}
}
