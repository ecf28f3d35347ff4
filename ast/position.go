// Package ast declares the types used to represent the final, typed TXXT
// syntax tree: source positions, containers, block and inline node
// variants, and the diagnostics attached to them during parsing.
package ast

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Position identifies a single point in a source file.
type Position struct {
	Filename string
	Offset   int // byte offset
	Line     int // 1-indexed
	Column   int // 1-indexed; a tab advances this to the next TabWidth stop
}

// String returns a human-readable "file:line:col" representation.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TabWidth is the number of columns a tab advances for indentation
// purposes. It does not affect byte offsets.
const TabWidth = 4

// SourceSpan is a closed-open byte range with full position information
// at both endpoints. Invariant: Start.Offset <= End.Offset.
type SourceSpan struct {
	Start Position
	End   Position
}

// IsZero reports whether this span was never set.
func (s SourceSpan) IsZero() bool {
	return s == SourceSpan{}
}

// Len returns the span's length in bytes.
func (s SourceSpan) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Text extracts the exact source text covered by the span. Used
// throughout the formatter to prefer preserved source text over
// re-derived formatting.
func (s SourceSpan) Text(source []byte) string {
	if s.Start.Offset < 0 || s.End.Offset > len(source) || s.End.Offset < s.Start.Offset {
		return ""
	}
	return string(source[s.Start.Offset:s.End.Offset])
}

// Covers reports whether s fully contains other (parent/child span
// invariant from spec §3.1/§8 invariant 3).
func (s SourceSpan) Covers(other SourceSpan) bool {
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}

// Join returns the smallest span covering both a and b. Used when a
// parent's span must be widened to cover children discovered after the
// parent node was first created.
func Join(a, b SourceSpan) SourceSpan {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	result := a
	if b.Start.Offset < result.Start.Offset {
		result.Start = b.Start
	}
	if b.End.Offset > result.End.Offset {
		result.End = b.End
	}
	return result
}

// ColumnWidth returns the display width of text starting at startColumn,
// expanding tabs to TabWidth columns and wide runes (CJK, etc.) to their
// terminal cell width. Used by the lexer to compute the Column of every
// token position, so columns count display cells rather than bytes.
func ColumnWidth(text string, startColumn int) int {
	col := startColumn
	for _, r := range text {
		if r == '\t' {
			// advance to the next multiple of TabWidth
			col += TabWidth - ((col - 1) % TabWidth)
			continue
		}
		w := runewidth.RuneWidth(r)
		if w <= 0 {
			w = 1
		}
		col += w
	}
	return col
}
