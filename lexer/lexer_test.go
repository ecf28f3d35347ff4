package lexer

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func containsType(types []TokenType, want TokenType) bool {
	for _, tt := range types {
		if tt == want {
			return true
		}
	}
	return false
}

func TestScanAllSimpleParagraph(t *testing.T) {
	source := []byte("A plain paragraph.\n")
	tokens, diags := NewLexer(source, "notes.txxt").ScanAll()
	assert.Equal(t, 0, len(diags))

	types := tokenTypes(tokens)
	assert.True(t, containsType(types, Text))
	assert.Equal(t, EOF, types[len(types)-1])
}

func TestScanAllSequenceMarker(t *testing.T) {
	source := []byte("1. First item\n2. Second item\n")
	tokens, diags := NewLexer(source, "notes.txxt").ScanAll()
	assert.Equal(t, 0, len(diags))

	count := 0
	for _, tok := range tokens {
		if tok.Type == SequenceMarker {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestScanAllIndentDedent(t *testing.T) {
	source := []byte("A header\n  Nested body.\nBack to top level.\n")
	tokens, _ := NewLexer(source, "notes.txxt").ScanAll()

	types := tokenTypes(tokens)
	assert.True(t, containsType(types, Indent))
	assert.True(t, containsType(types, Dedent))
}

func TestScanAllAnnotationMarker(t *testing.T) {
	source := []byte(":: note :: This is a note.\n")
	tokens, diags := NewLexer(source, "notes.txxt").ScanAll()
	assert.Equal(t, 0, len(diags))

	count := 0
	for _, tok := range tokens {
		if tok.Type == AnnotationMarker {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestScanAllDefinitionMarker(t *testing.T) {
	source := []byte("A term ::\n")
	tokens, _ := NewLexer(source, "notes.txxt").ScanAll()

	found := false
	for _, tok := range tokens {
		if tok.Type == DefinitionMarker {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScanAllVerbatimRegionSingleLine(t *testing.T) {
	// The whole region (VerbatimStart/VerbatimContent*/VerbatimEnd) must
	// land without an internal Newline — see grouper/classify.go's
	// makeVerbatim, which expects them all in one rawLine.
	source := []byte("Example:\n  some code\n  more code\n  (go)\n")
	tokens, diags := NewLexer(source, "notes.txxt").ScanAll()
	assert.Equal(t, 0, len(diags))

	startIdx, endIdx := -1, -1
	for i, tok := range tokens {
		if tok.Type == VerbatimStart {
			startIdx = i
		}
		if tok.Type == VerbatimEnd {
			endIdx = i
		}
	}
	assert.True(t, startIdx >= 0)
	assert.True(t, endIdx > startIdx)

	for _, tok := range tokens[startIdx:endIdx] {
		assert.True(t, tok.Type != Newline)
	}
}

func TestScanAllDelimiters(t *testing.T) {
	source := []byte("*strong* and _emphasis_ and `code` and #math#\n")
	tokens, _ := NewLexer(source, "notes.txxt").ScanAll()

	types := tokenTypes(tokens)
	assert.True(t, containsType(types, StrongDelim))
	assert.True(t, containsType(types, EmphasisDelim))
	assert.True(t, containsType(types, CodeDelim))
	assert.True(t, containsType(types, MathDelim))
}

func TestScanAllReferenceMarker(t *testing.T) {
	source := []byte("See [file.txxt] for more.\n")
	tokens, _ := NewLexer(source, "notes.txxt").ScanAll()

	found := false
	for _, tok := range tokens {
		if tok.Type == RefMarker {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTokenTextReturnsSourceSlice(t *testing.T) {
	source := []byte("Hello world.\n")
	tokens, _ := NewLexer(source, "notes.txxt").ScanAll()

	var combined string
	for _, tok := range tokens {
		if tok.Type == Text {
			combined += tok.Text(source)
		}
	}
	assert.Contains(t, combined, "Hello")
}
