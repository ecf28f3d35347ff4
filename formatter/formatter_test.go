package formatter

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/txxtlang/txxt/parser"
)

func TestRoundTripReproducesSourceExactly(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "Paragraph", source: "A plain paragraph.\n"},
		{name: "List", source: "1. First item\n2. Second item\n"},
		{name: "Session", source: "A header\n  Body paragraph.\n"},
		{name: "Verbatim", source: "Example:\n  some code\n  (go)\n"},
		{name: "Definition", source: "A term ::\n  The definition body.\n"},
		{name: "Annotation", source: ":: note :: An annotation.\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, err := parser.Parse([]byte(test.source), "notes.txxt")
			assert.NoError(t, err)

			var buf bytes.Buffer
			f := New()
			assert.NoError(t, f.Format(context.Background(), doc, []byte(test.source), &buf))
			assert.Equal(t, test.source, buf.String())
		})
	}
}

func TestCanonicalFormatsParagraph(t *testing.T) {
	source := "A plain paragraph.\n"
	doc, err := parser.Parse([]byte(source), "notes.txxt")
	assert.NoError(t, err)

	var buf bytes.Buffer
	f := New(WithMode(Canonical))
	assert.NoError(t, f.Format(context.Background(), doc, []byte(source), &buf))
	assert.Equal(t, "A plain paragraph.\n", buf.String())
}

func TestCanonicalAlignsListMarkers(t *testing.T) {
	source := "1. First\n2. Second\n"
	doc, err := parser.Parse([]byte(source), "notes.txxt")
	assert.NoError(t, err)

	var buf bytes.Buffer
	f := New(WithMode(Canonical))
	assert.NoError(t, f.Format(context.Background(), doc, []byte(source), &buf))
	assert.Equal(t, "1. First\n2. Second\n", buf.String())
}

func TestCanonicalIndentsSessionBody(t *testing.T) {
	source := "A header\n  Body text.\n"
	doc, err := parser.Parse([]byte(source), "notes.txxt")
	assert.NoError(t, err)

	var buf bytes.Buffer
	f := New(WithMode(Canonical), WithIndent(4))
	assert.NoError(t, f.Format(context.Background(), doc, []byte(source), &buf))
	assert.Equal(t, "A header\n    Body text.\n", buf.String())
}

func TestCanonicalPreservesVerbatimContentByteExact(t *testing.T) {
	source := "Example:\n  raw    content\n  (go)\n"
	doc, err := parser.Parse([]byte(source), "notes.txxt")
	assert.NoError(t, err)

	f := New(WithMode(Canonical))
	out := f.FormatNode(doc, doc.Blocks()[0])
	assert.Contains(t, out, "raw    content")
}

func TestWithIndentDefault(t *testing.T) {
	f := New()
	assert.Equal(t, DefaultIndent, f.Indent)
	assert.Equal(t, RoundTrip, f.Mode)
}
