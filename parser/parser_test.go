package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/txxtlang/txxt/ast"
)

func parseOK(t *testing.T, source string) *ast.Document {
	t.Helper()
	doc, err := Parse([]byte(source), "notes.txxt")
	assert.NoError(t, err)
	return doc
}

func TestParseSimpleParagraph(t *testing.T) {
	doc := parseOK(t, "A plain paragraph.\n")
	blocks := doc.Root.Children()
	assert.Equal(t, 1, len(blocks))

	p, ok := blocks[0].(*ast.Paragraph)
	assert.True(t, ok)
	assert.Equal(t, 1, len(p.Inlines))
	id, ok := p.Inlines[0].(*ast.Identity)
	assert.True(t, ok)
	assert.Equal(t, "A plain paragraph.", id.Text)
}

func TestParseSingleItemListDegradesToParagraph(t *testing.T) {
	doc := parseOK(t, "1. Only item\n")
	blocks := doc.Root.Children()
	assert.Equal(t, 1, len(blocks))

	_, ok := blocks[0].(*ast.Paragraph)
	assert.True(t, ok)
	assert.Equal(t, 1, len(doc.Diagnostics))
	assert.Equal(t, ast.CodeSingleItemList, doc.Diagnostics[0].Code)
}

func TestParseNestedListWithMixedStyling(t *testing.T) {
	doc := parseOK(t, "1. First\n  a. Nested\n  b. Nested two\n2. Second\n")
	blocks := doc.Root.Children()
	assert.Equal(t, 1, len(blocks))

	outer, ok := blocks[0].(*ast.List)
	assert.True(t, ok)
	assert.Equal(t, 2, len(outer.Items))

	firstBody := outer.Items[0].Body.Children()
	assert.Equal(t, 2, len(firstBody))

	inner, ok := firstBody[1].(*ast.List)
	assert.True(t, ok)
	assert.Equal(t, 2, len(inner.Items))
}

func TestParseListFlagsInconsistentMarkerStyles(t *testing.T) {
	doc := parseOK(t, "1. First\na. Nested\n2. Second\n")
	blocks := doc.Root.Children()
	assert.Equal(t, 1, len(blocks))

	list, ok := blocks[0].(*ast.List)
	assert.True(t, ok)
	assert.Equal(t, 3, len(list.Items))
	assert.True(t, list.Inconsistent)
}

func TestParseSessionWithAnnotation(t *testing.T) {
	doc := parseOK(t, "A header\n  :: note :: An annotation.\n  Body text.\n")
	blocks := doc.Root.Children()
	assert.Equal(t, 1, len(blocks))

	sess, ok := blocks[0].(*ast.Session)
	assert.True(t, ok)
	assert.True(t, len(sess.Body.Children()) >= 1)
}

func TestParseVerbatimWithLanguageTag(t *testing.T) {
	doc := parseOK(t, "Example:\n  fmt.Println(\"hi\")\n(go)\n")
	blocks := doc.Root.Children()
	assert.Equal(t, 1, len(blocks))

	v, ok := blocks[0].(*ast.Verbatim)
	assert.True(t, ok)
	assert.Equal(t, "go", v.Language)
	assert.Contains(t, v.Content, "fmt.Println")
}

func TestParseAnnotationAttachesToFollowingBlock(t *testing.T) {
	doc := parseOK(t, "First paragraph.\n:: note :: An annotation.\nSecond paragraph.\n")
	blocks := doc.Root.Children()
	assert.Equal(t, 2, len(blocks))

	assert.Equal(t, 0, len(doc.AnnotationsFor(blocks[0])))
	anns := doc.AnnotationsFor(blocks[1])
	assert.Equal(t, 1, len(anns))
	assert.Equal(t, "note", anns[0].Label)
}

func TestParseTrailingAnnotationBecomesDocumentMetadata(t *testing.T) {
	doc := parseOK(t, "A paragraph.\n:: note :: trailing annotation\n")
	blocks := doc.Root.Children()
	assert.Equal(t, 1, len(blocks))
	assert.Equal(t, 0, len(doc.AnnotationsFor(blocks[0])))
	assert.Equal(t, 1, len(doc.Metadata))
	assert.Equal(t, "note", doc.Metadata[0].Label)
}

func TestParseDefinition(t *testing.T) {
	doc := parseOK(t, "A term ::\n  The definition of the term.\n")
	blocks := doc.Root.Children()
	assert.Equal(t, 1, len(blocks))

	def, ok := blocks[0].(*ast.Definition)
	assert.True(t, ok)
	assert.Equal(t, 1, len(def.Term))
}

func TestParseDiagnosticsSortedByPosition(t *testing.T) {
	doc := parseOK(t, "A plain paragraph.\n")
	for i := 1; i < len(doc.Diagnostics); i++ {
		assert.True(t, doc.Diagnostics[i-1].Span.Start.Offset <= doc.Diagnostics[i].Span.Start.Offset)
	}
}

func TestParseAssemblyInfoCountsBlocks(t *testing.T) {
	doc := parseOK(t, "First.\n\nSecond.\n")
	assert.Equal(t, ParserVersion, doc.Assembly.ParserVersion)
	assert.Equal(t, ast.Fingerprint(doc.Source()), doc.Assembly.Fingerprint)
	assert.Equal(t, 2, doc.Assembly.BlockCount)
}

func TestTokenizeReturnsTokenStream(t *testing.T) {
	tokens, err := Tokenize([]byte("A paragraph.\n"), "notes.txxt")
	assert.NoError(t, err)
	assert.True(t, len(tokens) > 0)
}
