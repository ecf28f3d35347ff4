package formatter

import (
	"strconv"
	"strings"

	"github.com/txxtlang/txxt/ast"
)

// canonicalWriter accumulates normalized TXXT source text for one
// document or fragment. Each written line is indented by nesting depth
// (indentWidth spaces per level). Verbatim regions and the line breaks
// inside a multi-line paragraph are copied from the source text, so
// their indentation is the source's own.
type canonicalWriter struct {
	doc         *ast.Document
	indentWidth int
	buf         strings.Builder
}

func (cw *canonicalWriter) line(depth int, text string) {
	cw.buf.WriteString(strings.Repeat(" ", depth*cw.indentWidth))
	cw.buf.WriteString(text)
	cw.buf.WriteByte('\n')
}

func (cw *canonicalWriter) blank() {
	cw.buf.WriteByte('\n')
}

func (cw *canonicalWriter) writeMetadata(anns []*ast.Annotation) {
	for _, ann := range anns {
		cw.line(0, renderAnnotation(ann))
		cw.blank()
	}
}

// writeBlock dispatches on the concrete block type and writes its
// canonical text at the given nesting depth, recursing into any
// children at depth+1.
func (cw *canonicalWriter) writeBlock(b ast.Block, depth int) {
	switch n := b.(type) {
	case *ast.Paragraph:
		cw.line(depth, inlineText(n.Inlines))

	case *ast.Session:
		cw.line(depth, inlineText(n.Header))
		cw.writeChildren(n.Body.Children(), depth+1)

	case *ast.Definition:
		cw.line(depth, inlineText(n.Term)+" ::")
		cw.writeChildren(n.Body.Children(), depth+1)

	case *ast.List:
		cw.writeList(n, depth)

	case *ast.Verbatim:
		cw.writeVerbatim(n)

	case *ast.Annotation:
		cw.line(depth, renderAnnotation(n))

	default:
		cw.line(depth, n.Span().Text(cw.doc.Source()))
	}
}

func (cw *canonicalWriter) writeChildren(children []ast.Block, depth int) {
	for i, c := range children {
		if i > 0 {
			cw.blank()
		}
		cw.writeBlock(c, depth)
	}
}

// writeList aligns every item's marker to the width of the widest
// marker in the list, separated from its content by at least
// MinimumMarkerSpacing — the list analog of the teacher's currency
// column alignment. Marker text itself is never regenerated: each
// ast.ListItem already preserves its own literal marker, mixed or
// out-of-order markers included.
func (cw *canonicalWriter) writeList(l *ast.List, depth int) {
	width := 0
	for _, item := range l.Items {
		if n := len(item.MarkerText); n > width {
			width = n
		}
	}

	for _, item := range l.Items {
		cw.writeListItem(item, depth, width)
	}
}

func (cw *canonicalWriter) writeListItem(item *ast.ListItem, depth, markerWidth int) {
	children := item.Body.Children()

	pad := strings.Repeat(" ", markerWidth-len(item.MarkerText)+MinimumMarkerSpacing)
	firstText := ""
	if len(children) > 0 {
		if p, ok := children[0].(*ast.Paragraph); ok {
			firstText = inlineText(p.Inlines)
			children = children[1:]
		}
	}

	cw.line(depth, item.MarkerText+pad+firstText)
	cw.writeChildren(children, depth+1)
}

// writeVerbatim preserves a verbatim region's source text verbatim:
// its opening title phrase isn't captured on ast.Verbatim (only
// Language/Label/Content are), and normalizing its body would
// contradict the region's whole purpose.
func (cw *canonicalWriter) writeVerbatim(v *ast.Verbatim) {
	text := v.Span().Text(cw.doc.Source())
	cw.buf.WriteString(strings.TrimRight(text, "\n"))
	cw.buf.WriteByte('\n')
}

func renderAnnotation(ann *ast.Annotation) string {
	var b strings.Builder
	b.WriteString(":: ")
	b.WriteString(ann.Label)
	for i, p := range ann.Parameters {
		if i == 0 {
			b.WriteByte(':')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(renderParamValue(p.Value))
	}
	b.WriteString(" :: ")
	b.WriteString(inlineText(ann.Value))
	return b.String()
}

func renderParamValue(v ast.ParamValue) string {
	switch v.Kind {
	case ast.ParamString:
		return strconv.Quote(v.Str)
	case ast.ParamNumber:
		if exp := v.Num.Exponent(); exp < 0 {
			return v.Num.StringFixed(-exp)
		}
		return v.Num.String()
	default:
		return v.Ident
	}
}
