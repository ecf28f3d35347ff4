package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func span(startOffset, endOffset int) SourceSpan {
	return SourceSpan{
		Start: Position{Offset: startOffset},
		End:   Position{Offset: endOffset},
	}
}

func TestSourceSpan_Text(t *testing.T) {
	source := []byte("hello world")

	t.Run("Valid span", func(t *testing.T) {
		assert.Equal(t, "hello", span(0, 5).Text(source))
	})

	t.Run("Valid span in middle", func(t *testing.T) {
		assert.Equal(t, "world", span(6, 11).Text(source))
	})

	t.Run("Zero span", func(t *testing.T) {
		assert.Equal(t, "", span(0, 0).Text(source))
	})

	t.Run("Negative start", func(t *testing.T) {
		assert.Equal(t, "", span(-5, 3).Text(source))
	})

	t.Run("Start greater than End", func(t *testing.T) {
		assert.Equal(t, "", span(10, 5).Text(source))
	})

	t.Run("End beyond source length", func(t *testing.T) {
		assert.Equal(t, "", span(0, 100).Text(source))
	})
}

func TestSourceSpan_IsZero(t *testing.T) {
	assert.True(t, span(0, 0).IsZero())
	assert.True(t, !span(0, 5).IsZero())
}

func TestJoin(t *testing.T) {
	a := span(4, 10)
	b := span(0, 6)
	j := Join(a, b)
	assert.Equal(t, 0, j.Start.Offset)
	assert.Equal(t, 10, j.End.Offset)
}

func TestColumnWidth(t *testing.T) {
	t.Run("plain ascii", func(t *testing.T) {
		assert.Equal(t, 6, ColumnWidth("hello", 1))
	})

	t.Run("tab expands to next multiple of four", func(t *testing.T) {
		assert.Equal(t, 5, ColumnWidth("\t", 1))
		assert.Equal(t, 9, ColumnWidth("\t", 5))
	})

	t.Run("wide rune counts double", func(t *testing.T) {
		assert.Equal(t, 3, ColumnWidth("中", 1))
	})
}

func TestFingerprint_Stable(t *testing.T) {
	a := Fingerprint([]byte("same bytes"))
	b := Fingerprint([]byte("same bytes"))
	c := Fingerprint([]byte("different bytes"))
	assert.Equal(t, a, b)
	assert.True(t, a != c)
}
