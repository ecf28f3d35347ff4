// Package lexer implements the first two passes of the TXXT pipeline:
// the verbatim scanner (Pass 0, verbatim.go) and the main tokenizer
// (Pass 1, this file), which produces the positioned token stream
// consumed by the block grouper.
package lexer

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/txxtlang/txxt/ast"
)

// Lexer tokenizes TXXT source text, maintaining the indentation stack
// described in spec §4.2 and consulting the Pass-0 verbatim regions so
// that lines inside a verbatim block bypass normal line recognition
// entirely.
type Lexer struct {
	source   []byte
	filename string
	lines    []lineRange
	regions  []VerbatimRegion

	indentStack []int
	tokens      []Token
	interner    *Interner
	diags       []ast.Diagnostic
}

// NewLexer creates a lexer over source. filename is only used to stamp
// positions for error reporting.
func NewLexer(source []byte, filename string) *Lexer {
	return &Lexer{
		source:      source,
		filename:    filename,
		lines:       splitLines(source),
		regions:     ScanVerbatimRegions(source),
		indentStack: []int{0},
		interner:    NewInterner(256),
	}
}

// Interner exposes the lexer's string pool for reuse by later stages.
func (l *Lexer) Interner() *Interner { return l.interner }

// ScanAll runs the full Pass-1 tokenizer and returns the token stream
// plus any lexical diagnostics (indentation errors). The returned
// stream always ends with a single EOF token.
func (l *Lexer) ScanAll() ([]Token, []ast.Diagnostic) {
	regionIdx := 0
	i := 0
	for i < len(l.lines) {
		if regionIdx < len(l.regions) && l.regions[regionIdx].StartLine == i {
			l.scanVerbatimRegion(l.regions[regionIdx])
			i = l.regions[regionIdx].EndLine
			regionIdx++
			continue
		}
		i = l.scanLine(i)
	}

	endPos := l.posAt(len(l.source))
	for len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		l.emit(Dedent, ast.SourceSpan{Start: endPos, End: endPos})
	}
	l.emit(EOF, ast.SourceSpan{Start: endPos, End: endPos})

	return l.tokens, l.diags
}

func (l *Lexer) emit(t TokenType, span ast.SourceSpan) {
	l.tokens = append(l.tokens, Token{Type: t, Span: span})
}

// posAt computes the full Position (line/column) for a byte offset.
// Recomputing from scratch is O(n); acceptable for the sizes this core
// targets (spec §5: a 10,000-line document in one pass).
func (l *Lexer) posAt(offset int) ast.Position {
	line := 1
	col := 1
	for i := 0; i < offset && i < len(l.source); {
		r, size := utf8.DecodeRune(l.source[i:])
		if r == '\n' {
			line++
			col = 1
		} else {
			col = ast.ColumnWidth(string(r), col)
		}
		i += size
	}
	return ast.Position{Filename: l.filename, Offset: offset, Line: line, Column: col}
}

func (l *Lexer) span(start, end int) ast.SourceSpan {
	return ast.SourceSpan{Start: l.posAt(start), End: l.posAt(end)}
}

// scanVerbatimRegion emits VerbatimStart / VerbatimContent* / VerbatimEnd
// for a region identified by Pass 0. ScanAll does not pass the opening
// line to scanLine, so this applies its indentation and tokenizes its
// content as an ordinary line first, then emits the region tokens.
//
// All tokens for the region land in a single logical line (no Newline
// token separates VerbatimStart from its content or end tokens): the
// block grouper's line tree collapses a whole region into one rawLine,
// mirroring how it treats any other single-line block, and only the
// line immediately following the region needs a Newline to flush it.
func (l *Lexer) scanVerbatimRegion(r VerbatimRegion) {
	openLine := l.lines[r.StartLine]
	text := l.source[openLine.Start:openLine.End]
	indentBytes := indentByteLen(text)

	l.applyIndent(leadingIndent(text), openLine.Start)
	l.tokenizeLineContent(openLine, indentBytes, r.StartLine)

	// VerbatimStart marks the transition; span it over the trailing colon.
	colonOffset := trimmedEnd(text) - 1
	l.emit(VerbatimStart, l.span(openLine.Start+colonOffset, openLine.Start+colonOffset+1))

	for _, cl := range r.ContentLine {
		l.emit(VerbatimContent, l.span(cl.Start, cl.End))
	}

	if r.Label != "" {
		labelLine := l.lines[r.EndLine-1]
		l.emit(VerbatimEnd, l.span(labelLine.Start, labelLine.End))
	} else {
		end := r.End
		l.emit(VerbatimEnd, ast.SourceSpan{Start: l.posAt(end), End: l.posAt(end)})
	}

	l.emitLineBreak(r.End, r.EndLine-1)
}

// emitLineBreak emits the Newline token that separates the line at
// lineIdx from its successor, mirroring scanLine's trailing Newline so
// the grouper sees a uniform one-line-per-Newline token stream even
// across the direct-emit verbatim path.
func (l *Lexer) emitLineBreak(offset, lineIdx int) {
	if lineIdx < len(l.lines)-1 {
		l.emit(Newline, l.span(offset, offset+1))
	}
}

// scanLine tokenizes a single logical line at index i (outside any
// verbatim region) and returns the next line index to process.
func (l *Lexer) scanLine(i int) int {
	ln := l.lines[i]
	text := l.source[ln.Start:ln.End]

	if isBlank(text) {
		l.emit(BlankLine, l.span(ln.Start, ln.End))
		return i + 1
	}

	indent := leadingIndent(text)
	l.applyIndent(indent, ln.Start)

	indentBytes := indentByteLen(text)
	l.tokenizeLineContent(ln, indentBytes, i)

	if i < len(l.lines)-1 {
		nlOffset := ln.End
		l.emit(Newline, l.span(nlOffset, nlOffset+1))
	}

	return i + 1
}

// applyIndent pushes/pops the indent stack per spec §4.2 and records a
// diagnostic if a dedent lands on a level that was never pushed.
func (l *Lexer) applyIndent(indent, lineStart int) {
	top := l.indentStack[len(l.indentStack)-1]
	switch {
	case indent > top:
		l.indentStack = append(l.indentStack, indent)
		p := l.posAt(lineStart)
		l.emit(Indent, ast.SourceSpan{Start: p, End: p})
	case indent < top:
		for len(l.indentStack) > 1 && l.indentStack[len(l.indentStack)-1] > indent {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			p := l.posAt(lineStart)
			l.emit(Dedent, ast.SourceSpan{Start: p, End: p})
		}
		if l.indentStack[len(l.indentStack)-1] != indent {
			p := l.posAt(lineStart)
			l.diags = append(l.diags, ast.Diagnostic{
				Severity: ast.SeverityError,
				Span:     ast.SourceSpan{Start: p, End: p},
				Code:     ast.CodeIndentationError,
				Message:  "dedent does not match any enclosing indentation level",
			})
			l.indentStack = append(l.indentStack, indent)
		}
	}
}

// tokenizeLineContent classifies and tokenizes the content of one line
// (the part after leading indentation) per the priority order in spec
// §4.2 "Line-level recognition".
func (l *Lexer) tokenizeLineContent(ln lineRange, indentBytes, lineIdx int) {
	contentStart := ln.Start + indentBytes
	content := l.source[contentStart:ln.End]

	_, markerLen, class, components, isMarker := matchSequenceMarker(content)

	switch {
	case bytes.HasPrefix(content, []byte("::")):
		l.tokenizeAnnotation(contentStart, ln.End)
	case isMarker:
		l.emit(SequenceMarker, l.span(contentStart, contentStart+markerLen))
		l.tokens[len(l.tokens)-1].StyleClass = class
		l.tokens[len(l.tokens)-1].MarkerComponents = components
		rest := contentStart + markerLen
		for rest < ln.End && (l.source[rest] == ' ' || l.source[rest] == '\t') {
			rest++
		}
		l.tokenizeInline(rest, ln.End)
	case isDefinitionLine(content):
		termEnd := trimmedEnd(content)
		markerStart := contentStart + termEnd - 2
		l.tokenizeInline(contentStart, markerStart)
		l.emit(DefinitionMarker, l.span(markerStart, markerStart+2))
	default:
		l.tokenizeInline(contentStart, ln.End)
	}
}

func indentByteLen(line []byte) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

func trimmedEnd(line []byte) int {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t' || line[end-1] == '\r') {
		end--
	}
	return end
}

// isDefinitionLine reports whether content (sans trailing whitespace)
// ends in " ::", i.e. a term marker with nothing following on the line.
func isDefinitionLine(content []byte) bool {
	end := trimmedEnd(content)
	if end < 3 {
		return false
	}
	return content[end-2] == ':' && content[end-1] == ':' && content[end-3] == ' '
}

// tokenizeAnnotation handles "^ *::" lines: AnnotationMarker, label,
// optional parameter block, closing AnnotationMarker, then value inline
// content, per spec §4.2.1 and the surface grammar in §6.1.
func (l *Lexer) tokenizeAnnotation(start, lineEnd int) {
	l.emit(AnnotationMarker, l.span(start, start+2))
	pos := start + 2
	for pos < lineEnd && l.source[pos] == ' ' {
		pos++
	}

	labelStart := pos
	for pos < lineEnd && isIdentByte(l.source[pos]) {
		pos++
	}
	if pos > labelStart {
		l.emit(Identifier, l.span(labelStart, pos))
	}

	if pos < lineEnd && l.source[pos] == ':' && (pos+1 >= lineEnd || l.source[pos+1] != ':') {
		pos = l.tokenizeParameters(pos, lineEnd)
	}

	for pos < lineEnd && l.source[pos] == ' ' {
		pos++
	}

	if pos+1 < lineEnd && l.source[pos] == ':' && l.source[pos+1] == ':' {
		l.emit(AnnotationMarker, l.span(pos, pos+2))
		pos += 2
		for pos < lineEnd && l.source[pos] == ' ' {
			pos++
		}
		l.tokenizeInline(pos, lineEnd)
	}
}

// tokenizeParameters handles a ":key=value,key=value" block and returns
// the offset just past the last parameter.
func (l *Lexer) tokenizeParameters(start, lineEnd int) int {
	pos := start
	for pos < lineEnd && l.source[pos] == ':' {
		pos++
		pairStart := pos
		for pos < lineEnd && l.source[pos] != ',' && l.source[pos] != ' ' {
			if l.source[pos] == '"' {
				pos++
				for pos < lineEnd && l.source[pos] != '"' {
					pos++
				}
			}
			if pos < lineEnd {
				pos++
			}
		}
		if pos > pairStart {
			l.emit(ParameterTok, l.span(pairStart, pos))
		}
		for pos < lineEnd && l.source[pos] == ',' {
			pos++
			pairStart = pos
			for pos < lineEnd && l.source[pos] != ',' && l.source[pos] != ' ' {
				if l.source[pos] == '"' {
					pos++
					for pos < lineEnd && l.source[pos] != '"' {
						pos++
					}
				}
				if pos < lineEnd {
					pos++
				}
			}
			if pos > pairStart {
				l.emit(ParameterTok, l.span(pairStart, pos))
			}
		}
	}
	return pos
}

// matchSequenceMarker recognizes a list marker at the start of content,
// per the grammar in spec §4.2.2 / §6.1. It also recognizes the "Full"
// form, where a marker chains several components directly against each
// other with no intervening space ("1.a.i)"); components is the number
// of components found, used by the assembler to derive List.Form.
func matchSequenceMarker(content []byte) (marker string, length int, class ListStyleClass, components int, ok bool) {
	if len(content) == 0 {
		return "", 0, StyleNone, 0, false
	}

	if content[0] == '-' && len(content) > 1 && content[1] == ' ' {
		return "-", 1, StylePlain, 1, true
	}

	pos := 0
	for {
		compLen, compClass, sep, matched := matchOneComponent(content[pos:])
		if !matched {
			break
		}
		if components == 0 {
			class = compClass
		}
		pos += compLen
		components++
		if sep == ')' {
			break
		}
		// sep == '.': chain directly into another component with no
		// space, or this is the final component and a space must follow.
		if pos < len(content) && content[pos] != ' ' {
			continue
		}
		break
	}

	if components == 0 {
		return "", 0, StyleNone, 0, false
	}
	if pos >= len(content) || content[pos] != ' ' {
		return "", 0, StyleNone, 0, false
	}
	return string(content[:pos]), pos, class, components, true
}

// matchOneComponent matches one marker component ("1.", "a)", "iii.")
// at the start of content, without requiring a trailing space (chained
// components may run directly into the next).
func matchOneComponent(content []byte) (length int, class ListStyleClass, sep byte, ok bool) {
	if len(content) == 0 {
		return 0, StyleNone, 0, false
	}

	i := 0
	for i < len(content) && content[i] >= '0' && content[i] <= '9' {
		i++
	}
	if i > 0 {
		if i < len(content) && (content[i] == '.' || content[i] == ')') {
			return i + 1, StyleNumerical, content[i], true
		}
		return 0, StyleNone, 0, false
	}

	if isAsciiLetter(content[0]) {
		// A run of two or more roman-numeral letters ("ii.", "XIV)").
		romans, romanClass := []byte("ivxlcdm"), StyleRomanLower
		if content[0] >= 'A' && content[0] <= 'Z' {
			romans, romanClass = []byte("IVXLCDM"), StyleRomanUpper
		}
		n := 0
		for n < len(content) && bytes.IndexByte(romans, content[n]) >= 0 {
			n++
		}
		if n > 1 && n < len(content) && (content[n] == '.' || content[n] == ')') {
			return n + 1, romanClass, content[n], true
		}

		class := classifyLetterMarker(content[0])
		if len(content) > 1 && (content[1] == '.' || content[1] == ')') {
			return 2, class, content[1], true
		}
	}

	return 0, StyleNone, 0, false
}

func classifyLetterMarker(b byte) ListStyleClass {
	switch {
	case b == 'i' || b == 'I':
		if b == 'i' {
			return StyleRomanLower
		}
		return StyleRomanUpper
	case b >= 'a' && b <= 'z':
		return StyleAlphaLower
	case b >= 'A' && b <= 'Z':
		return StyleAlphaUpper
	default:
		return StyleNone
	}
}

func isAsciiLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_' || b == '-'
}

// tokenizeInline walks [start, end) character by character recognizing
// inline formatting delimiters and references, per spec §4.2 "Inline
// formatting". Interior whitespace is preserved as explicit Text tokens
// rather than dropped (spec §9 Open Questions flags the source's
// whitespace-dropping as a bug this implementation must not repeat).
func (l *Lexer) tokenizeInline(start, end int) {
	pos := start
	textStart := -1

	flushText := func(upTo int) {
		if textStart >= 0 && upTo > textStart {
			l.emit(Text, l.span(textStart, upTo))
		}
		textStart = -1
	}

	for pos < end {
		r, size := utf8.DecodeRune(l.source[pos:end])

		switch r {
		case '*', '_', '`', '#':
			if l.isOpeningDelim(r, start, end, pos) {
				flushText(pos)
				l.emit(delimType(r), l.span(pos, pos+size))
				l.tokens[len(l.tokens)-1].Open = true
				pos += size
				continue
			}
			if l.isClosingDelim(r, start, end, pos) {
				flushText(pos)
				l.emit(delimType(r), l.span(pos, pos+size))
				pos += size
				continue
			}
		case '[':
			if consumed := l.tryScanReference(pos, end); consumed > 0 {
				flushText(pos)
				pos += consumed
				continue
			}
		}

		if textStart < 0 {
			textStart = pos
		}
		pos += size
	}
	flushText(end)
}

func delimType(r rune) TokenType {
	switch r {
	case '*':
		return StrongDelim
	case '_':
		return EmphasisDelim
	case '`':
		return CodeDelim
	case '#':
		return MathDelim
	default:
		return ILLEGAL
	}
}

// isOpeningDelim: preceded by whitespace, line start, or another opening
// delimiter; followed immediately by a non-space character.
func (l *Lexer) isOpeningDelim(r rune, start, end, pos int) bool {
	if pos+1 >= end {
		return false
	}
	next, _ := utf8.DecodeRune(l.source[pos+1 : end])
	if unicode.IsSpace(next) {
		return false
	}
	if pos == start {
		return true
	}
	prev, prevSize := utf8.DecodeLastRune(l.source[start:pos])
	if unicode.IsSpace(prev) {
		return true
	}
	switch prev {
	case '*', '_', '`', '#':
		return true
	}
	_ = prevSize
	return false
}

// isClosingDelim: immediately preceded by a non-space character;
// followed by whitespace, punctuation, line end, or another closing
// delimiter.
func (l *Lexer) isClosingDelim(r rune, start, end, pos int) bool {
	if pos == start {
		return false
	}
	prev, _ := utf8.DecodeLastRune(l.source[start:pos])
	if unicode.IsSpace(prev) {
		return false
	}
	if pos+1 >= end {
		return true
	}
	next, nextSize := utf8.DecodeRune(l.source[pos+1 : end])
	if unicode.IsSpace(next) || unicode.IsPunct(next) {
		return true
	}
	switch next {
	case '*', '_', '`', '#':
		return true
	}
	_ = nextSize
	return false
}

// tryScanReference attempts to scan a "[...]" reference starting at
// pos and returns the number of bytes consumed, or 0 if pos does not
// begin a well-formed reference.
func (l *Lexer) tryScanReference(pos, end int) int {
	closeIdx := -1
	for i := pos + 1; i < end; i++ {
		if l.source[i] == ']' {
			closeIdx = i
			break
		}
		if l.source[i] == '\n' {
			return 0
		}
	}
	if closeIdx < 0 {
		return 0
	}

	inner := l.source[pos+1 : closeIdx]
	kind, footnoteDigitsStart := classifyReference(inner)

	l.emit(RefMarker, l.span(pos, closeIdx+1))
	l.tokens[len(l.tokens)-1].RefKind = kind

	if kind == RefKindFootnote {
		digitStart := pos + 1 + footnoteDigitsStart
		l.emit(FootnoteNumber, l.span(digitStart, closeIdx))
	}

	return closeIdx + 1 - pos
}

// classifyReference discriminates by leading character, per spec §4.2
// "References". footnoteDigitsStart is the byte offset (relative to
// inner) where the digit run begins, used only when kind is footnote.
func classifyReference(inner []byte) (kind RefKind, footnoteDigitsStart int) {
	if len(inner) == 0 {
		return RefKindFile, 0
	}
	switch {
	case inner[0] == '@':
		return RefKindCitation, 0
	case inner[0] == '#':
		return RefKindSection, 0
	case isAllDigits(inner):
		return RefKindFootnote, 0
	case bytes.HasPrefix(inner, []byte("p. ")):
		return RefKindPage, 3
	default:
		return RefKindFile, 0
	}
}

func isAllDigits(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
