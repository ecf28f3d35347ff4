package grouper

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/txxtlang/txxt/lexer"
)

func group(t *testing.T, source string) *Block {
	t.Helper()
	tokens, _ := lexer.NewLexer([]byte(source), "notes.txxt").ScanAll()
	root, diags := Group(tokens, []byte(source))
	assert.Equal(t, 0, len(diags))
	return root
}

func TestGroupParagraph(t *testing.T) {
	root := group(t, "A plain paragraph.\n")
	assert.Equal(t, 1, len(root.Children))
	assert.Equal(t, Paragraph, root.Children[0].Kind)
}

func TestGroupList(t *testing.T) {
	root := group(t, "1. First item\n2. Second item\n")
	assert.Equal(t, 1, len(root.Children))
	assert.Equal(t, List, root.Children[0].Kind)
	assert.Equal(t, 2, len(root.Children[0].Items))
}

func TestGroupSession(t *testing.T) {
	root := group(t, "A header\n  Body text.\n")
	assert.Equal(t, 1, len(root.Children))
	assert.Equal(t, Session, root.Children[0].Kind)
	assert.Equal(t, 1, len(root.Children[0].Children))
	assert.Equal(t, Paragraph, root.Children[0].Children[0].Kind)
}

func TestGroupDefinition(t *testing.T) {
	root := group(t, "A term ::\n  The definition body.\n")
	assert.Equal(t, 1, len(root.Children))
	assert.Equal(t, Definition, root.Children[0].Kind)
}

func TestGroupAnnotation(t *testing.T) {
	root := group(t, ":: note :: This is a note.\n")
	assert.Equal(t, 1, len(root.Children))
	assert.Equal(t, Annotation, root.Children[0].Kind)
}

func TestGroupVerbatimSingleBlock(t *testing.T) {
	root := group(t, "Example:\n  some code\n  more code\n(go)\n")
	assert.Equal(t, 1, len(root.Children))
	assert.Equal(t, Verbatim, root.Children[0].Kind)
	assert.Equal(t, 2, len(root.Children[0].VerbatimContent))
}

func TestGroupBlankLineSeparatesParagraphs(t *testing.T) {
	root := group(t, "First paragraph.\n\nSecond paragraph.\n")
	assert.Equal(t, 2, len(root.Children))
	assert.Equal(t, Paragraph, root.Children[0].Kind)
	assert.Equal(t, Paragraph, root.Children[1].Kind)
}

func TestGroupNestedListUnderSession(t *testing.T) {
	root := group(t, "A header\n  1. First\n  2. Second\n")
	assert.Equal(t, 1, len(root.Children))
	session := root.Children[0]
	assert.Equal(t, Session, session.Kind)
	assert.Equal(t, 1, len(session.Children))
	assert.Equal(t, List, session.Children[0].Kind)
}
