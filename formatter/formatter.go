// Package formatter writes an ast.Document back out as TXXT source,
// either byte-identical to what was parsed or in a normalized
// canonical form.
package formatter

import (
	"context"
	"io"

	"github.com/txxtlang/txxt/ast"
	"github.com/txxtlang/txxt/telemetry"
)

// Mode selects which of the two formatting behaviors Format performs.
type Mode int

const (
	// RoundTrip reproduces the exact source bytes the document was
	// parsed from, per spec §8's round-trip property.
	RoundTrip Mode = iota
	// Canonical normalizes marker spacing, list marker alignment, and
	// indentation to a configured width.
	Canonical
)

const (
	// DefaultIndent is the number of spaces one nesting level adds in
	// canonical mode.
	DefaultIndent = 2
	// MinimumMarkerSpacing is the minimum number of spaces between a
	// list marker and its item's content, matching the minimum
	// currency-column spacing the teacher's alignment logic enforces.
	MinimumMarkerSpacing = 1
)

// Formatter writes an ast.Document as TXXT source text.
type Formatter struct {
	Mode   Mode
	Indent int
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithMode selects round-trip or canonical output.
func WithMode(m Mode) Option {
	return func(f *Formatter) { f.Mode = m }
}

// WithIndent sets the number of spaces one nesting level adds in
// canonical mode.
func WithIndent(n int) Option {
	return func(f *Formatter) { f.Indent = n }
}

// New creates a Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{Mode: RoundTrip, Indent: DefaultIndent}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format writes doc to w. source must be the exact bytes doc was
// parsed from; RoundTrip mode returns them unchanged (every node's
// span already anchors into source, so reproducing the document is
// exactly reproducing source — see DESIGN.md), while Canonical mode
// walks doc's tree and re-derives normalized text.
func (f *Formatter) Format(ctx context.Context, doc *ast.Document, source []byte, w io.Writer) error {
	timer := telemetry.FromContext(ctx).Start("format")
	defer timer.End()

	if f.Mode == RoundTrip {
		_, err := w.Write(source)
		return err
	}

	cw := &canonicalWriter{doc: doc, indentWidth: f.Indent}
	cw.writeMetadata(doc.Metadata)
	for i, b := range doc.Root.Children() {
		if i > 0 {
			cw.blank()
		}
		cw.writeBlock(b, 0)
	}

	_, err := w.Write([]byte(cw.buf.String()))
	return err
}

// FormatNode renders a single block in canonical form, for tooling
// that needs to reformat a fragment (a diagnostic renderer showing the
// offending block, for instance) without running the full document
// through Format.
func (f *Formatter) FormatNode(doc *ast.Document, b ast.Block) string {
	cw := &canonicalWriter{doc: doc, indentWidth: f.Indent}
	cw.writeBlock(b, 0)
	return cw.buf.String()
}
