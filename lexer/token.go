package lexer

import "github.com/txxtlang/txxt/ast"

// TokenType enumerates the token variants from spec §3.2.
type TokenType uint8

const (
	// Structural
	EOF TokenType = iota
	ILLEGAL
	Newline
	BlankLine
	Indent
	Dedent

	// Sequence / structure markers
	SequenceMarker
	AnnotationMarker // "::"
	DefinitionMarker // trailing "::" after a term
	Dash
	ColonTok
	ParameterTok

	// Content
	Text
	Identifier
	VerbatimStart
	VerbatimContent
	VerbatimEnd

	// References
	RefMarker
	FootnoteNumber

	// Inline formatting delimiters
	StrongDelim
	EmphasisDelim
	CodeDelim
	MathDelim
)

var tokenNames = map[TokenType]string{
	EOF:              "EOF",
	ILLEGAL:          "ILLEGAL",
	Newline:          "Newline",
	BlankLine:        "BlankLine",
	Indent:           "Indent",
	Dedent:           "Dedent",
	SequenceMarker:   "SequenceMarker",
	AnnotationMarker: "AnnotationMarker",
	DefinitionMarker: "DefinitionMarker",
	Dash:             "Dash",
	ColonTok:         "Colon",
	ParameterTok:     "Parameter",
	Text:             "Text",
	Identifier:       "Identifier",
	VerbatimStart:    "VerbatimStart",
	VerbatimContent:  "VerbatimContent",
	VerbatimEnd:      "VerbatimEnd",
	RefMarker:        "RefMarker",
	FootnoteNumber:   "FootnoteNumber",
	StrongDelim:      "StrongDelim",
	EmphasisDelim:    "EmphasisDelim",
	CodeDelim:        "CodeDelim",
	MathDelim:        "MathDelim",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// RefKind discriminates the five reference forms recognized inside
// `[...]`, per spec §4.2 "References".
type RefKind int

const (
	RefKindFile RefKind = iota
	RefKindSection
	RefKindCitation
	RefKindFootnote
	RefKindPage
)

// ListStyleClass is the grammar class a SequenceMarker's literal text
// falls into, independent of the value it happens to carry — used by
// the assembler to derive List.Style from the first item.
type ListStyleClass int

const (
	StyleNone ListStyleClass = iota
	StylePlain
	StyleNumerical
	StyleAlphaLower
	StyleAlphaUpper
	StyleRomanLower
	StyleRomanUpper
)

// Token is a positioned, zero-copy token: it stores a span into the
// source buffer and materializes text only on demand, the same
// trade-off the teacher's lexer makes for its own token stream.
type Token struct {
	Type TokenType
	Span ast.SourceSpan

	// RefKind is only meaningful when Type == RefMarker.
	RefKind RefKind
	// StyleClass is only meaningful when Type == SequenceMarker.
	StyleClass ListStyleClass
	// MarkerComponents is only meaningful when Type == SequenceMarker:
	// the number of chained components in the marker ("1.a.i)" has 3),
	// used to derive List.Form.
	MarkerComponents int
	// Open is only meaningful for the four delimiter types
	// (StrongDelim, EmphasisDelim, CodeDelim, MathDelim): true if this
	// occurrence satisfied the opening-delimiter adjacency rule, false
	// if it satisfied the closing rule.
	Open bool
}

// Text materializes the token's exact source text.
func (t Token) Text(source []byte) string {
	return t.Span.Text(source)
}

// IsZeroWidth reports whether t is permitted to have an empty span —
// only Indent and Dedent are, per spec §3.2 invariant.
func (t Token) IsZeroWidth() bool {
	return t.Type == Indent || t.Type == Dedent
}
