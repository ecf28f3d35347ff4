package parser

import (
	"strings"

	"github.com/txxtlang/txxt/ast"
	"github.com/txxtlang/txxt/lexer"
)

// parseInlines walks a run of tokens (the content of one text-bearing
// line) and builds the inline-transform tree, per spec §4.4 "Inline
// parsing". Nesting respects delimiter balance; mismatched delimiters
// degrade to literal text.
func (a *assembler) parseInlines(tokens []lexer.Token) []ast.Inline {
	pos := 0
	out, _ := a.parseInlineSeq(tokens, &pos, lexer.ILLEGAL, false)
	return out
}

// parseInlineSeq consumes tokens from *pos until either it finds a
// token of type closing (only checked when hasClosing) or it runs out
// of input. It reports whether it stopped because it found the
// closing delimiter (true) or ran out of input (false) — the caller
// uses this to decide whether an opening delimiter was genuinely
// matched or must degrade to literal text.
func (a *assembler) parseInlineSeq(tokens []lexer.Token, pos *int, closing lexer.TokenType, hasClosing bool) ([]ast.Inline, bool) {
	var out []ast.Inline

	for *pos < len(tokens) {
		t := tokens[*pos]

		if hasClosing && t.Type == closing && !t.Open {
			*pos++
			return out, true
		}

		switch t.Type {
		case lexer.StrongDelim, lexer.EmphasisDelim:
			if t.Open {
				out = append(out, a.parseDelimited(tokens, pos, t))
			} else {
				out = append(out, a.identityFromToken(t))
				*pos++
			}

		case lexer.CodeDelim, lexer.MathDelim:
			if t.Open {
				out = append(out, a.parseLiteralDelimited(tokens, pos, t))
			} else {
				out = append(out, a.identityFromToken(t))
				*pos++
			}

		case lexer.RefMarker:
			out = append(out, a.parseReference(t))
			*pos++
			if *pos < len(tokens) && tokens[*pos].Type == lexer.FootnoteNumber && t.Span.Covers(tokens[*pos].Span) {
				*pos++
			}

		case lexer.Text, lexer.Identifier, lexer.ParameterTok:
			out = append(out, a.identityFromToken(t))
			*pos++

		default:
			*pos++
		}
	}

	return out, false
}

// parseDelimited handles Strong/Emphasis: it recurses to find a
// matching close of the same delimiter type, nesting arbitrarily. If
// no match is found before input runs out, the opening delimiter
// degrades to literal text and scanning resumes right after it.
func (a *assembler) parseDelimited(tokens []lexer.Token, pos *int, open lexer.Token) ast.Inline {
	start := *pos
	*pos++
	children, closed := a.parseInlineSeq(tokens, pos, open.Type, true)
	if !closed {
		*pos = start + 1
		return a.identityFromToken(open)
	}

	closeTok := tokens[*pos-1]
	span := ast.Join(open.Span, closeTok.Span)
	if open.Type == lexer.StrongDelim {
		return &ast.Strong{Pos: span, Children: children}
	}
	return &ast.Emphasis{Pos: span, Children: children}
}

// parseLiteralDelimited handles Code/Math: content between the
// delimiters is literal, never itself parsed for nested formatting.
func (a *assembler) parseLiteralDelimited(tokens []lexer.Token, pos *int, open lexer.Token) ast.Inline {
	start := *pos
	*pos++

	textStart := *pos
	for *pos < len(tokens) && !(tokens[*pos].Type == open.Type && !tokens[*pos].Open) {
		*pos++
	}

	if *pos >= len(tokens) {
		*pos = start + 1
		return a.identityFromToken(open)
	}

	closeTok := tokens[*pos]
	text := joinTokenText(tokens[textStart:*pos], a.source)
	span := ast.Join(open.Span, closeTok.Span)
	*pos++

	if open.Type == lexer.CodeDelim {
		return &ast.CodeSpan{Pos: span, Text: text}
	}
	return &ast.Math{Pos: span, Text: text}
}

// joinTokenText reconstructs the exact source slice spanned by a run
// of tokens, including any inter-token whitespace.
func joinTokenText(tokens []lexer.Token, source []byte) string {
	if len(tokens) == 0 {
		return ""
	}
	span := ast.Join(tokens[0].Span, tokens[len(tokens)-1].Span)
	return span.Text(source)
}

func (a *assembler) identityFromToken(t lexer.Token) ast.Inline {
	return &ast.Identity{Pos: t.Span, Text: t.Text(a.source)}
}

// parseReference builds the Reference/Citation/Footnote node for a
// RefMarker token, discriminating by the kind the lexer already
// determined from the leading character inside the brackets.
func (a *assembler) parseReference(t lexer.Token) ast.Inline {
	raw := t.Text(a.source)
	inner := raw
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}

	switch t.RefKind {
	case lexer.RefKindCitation:
		return &ast.Citation{Pos: t.Span, Key: strings.TrimPrefix(inner, "@")}
	case lexer.RefKindSection:
		return &ast.Reference{Pos: t.Span, Kind: ast.RefSection, Target: strings.TrimPrefix(inner, "#")}
	case lexer.RefKindFootnote:
		n := 0
		for _, c := range inner {
			if c < '0' || c > '9' {
				break
			}
			n = n*10 + int(c-'0')
		}
		return &ast.Footnote{Pos: t.Span, Number: n}
	case lexer.RefKindPage:
		n := 0
		digits := strings.TrimPrefix(inner, "p. ")
		for _, c := range digits {
			if c < '0' || c > '9' {
				break
			}
			n = n*10 + int(c-'0')
		}
		return &ast.Reference{Pos: t.Span, Kind: ast.RefPage, Page: n}
	default:
		return &ast.Reference{Pos: t.Span, Kind: ast.RefFile, Target: inner}
	}
}
