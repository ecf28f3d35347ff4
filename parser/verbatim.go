package parser

import (
	"strings"

	"github.com/txxtlang/txxt/lexer"
)

// verbatimLabel recovers the optional "(lang)" label that can close a
// verbatim region, per spec §4.1. The label line is preserved in the
// VerbatimEnd token's span, including its indentation and parens, which
// this strips to recover the bare identifier. A region with no label
// line has a zero-width VerbatimEnd and returns two empty strings.
func (a *assembler) verbatimLabel(tokens []lexer.Token) (language, label string) {
	for _, t := range tokens {
		if t.Type != lexer.VerbatimEnd {
			continue
		}
		text := strings.TrimSpace(t.Text(a.source))
		if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
			return "", ""
		}
		ident := a.interner.Intern(text[1 : len(text)-1])
		return ident, ident
	}
	return "", ""
}

// verbatimContent reconstructs a verbatim region's body by joining each
// content line's preserved text with newlines, per spec §4.1 "Content is
// preserved byte-exact, including interior whitespace." A trailing
// newline is appended to match how the region's closing boundary is
// understood: the last content line is always followed by either
// another line or end of file, never by nothing.
func verbatimContent(contentTokens []lexer.Token, source []byte) string {
	if len(contentTokens) == 0 {
		return ""
	}
	lines := make([]string, len(contentTokens))
	for i, t := range contentTokens {
		lines[i] = t.Text(source)
	}
	return strings.Join(lines, "\n") + "\n"
}
