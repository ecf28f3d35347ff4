package errors

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/txxtlang/txxt/ast"
)

func pos(line, col int) ast.Position {
	return ast.Position{Filename: "notes.txxt", Line: line, Column: col}
}

func TestTextFormatterFormatWithoutSource(t *testing.T) {
	tf := NewTextFormatter()

	d := ast.Diagnostic{
		Severity: ast.SeverityError,
		Code:     ast.CodeIndentationError,
		Message:  "dedent does not match any enclosing indentation level",
	}

	output := tf.Format(d)
	assert.Contains(t, output, "dedent does not match")
	assert.Contains(t, output, string(ast.CodeIndentationError))
}

func TestTextFormatterFormatWithSourceContext(t *testing.T) {
	source := "Line one.\nLine two.\n  Line three.\nLine four.\n"
	tf := NewTextFormatter(WithSource([]byte(source)))

	d := ast.Diagnostic{
		Severity: ast.SeverityError,
		Code:     ast.CodeIndentationError,
		Span:     ast.SourceSpan{Start: pos(3, 3), End: pos(3, 3)},
		Message:  "dedent does not match any enclosing indentation level",
	}

	output := tf.Format(d)
	lines := strings.Split(output, "\n")

	assert.True(t, len(lines) > 2)
	assert.True(t, strings.Contains(output, "Line three."))
	assert.True(t, strings.Contains(output, "^"))
}

func TestTextFormatterFormatAllSeparatesWithBlankLine(t *testing.T) {
	tf := NewTextFormatter()

	diags := []ast.Diagnostic{
		{Severity: ast.SeverityError, Code: ast.CodeIndentationError, Message: "first"},
		{Severity: ast.SeverityWarning, Code: ast.CodeMixedListStyle, Message: "second"},
	}

	output := tf.FormatAll(diags)
	assert.Contains(t, output, "first")
	assert.Contains(t, output, "second")
	assert.Contains(t, output, "\n\n")
}

func TestJSONFormatterFormat(t *testing.T) {
	jf := NewJSONFormatter()

	d := ast.Diagnostic{
		Severity: ast.SeverityWarning,
		Code:     ast.CodeSingleItemList,
		Span:     ast.SourceSpan{Start: pos(5, 1), End: pos(5, 10)},
		Message:  "single-item list degrades to a paragraph",
	}

	output := jf.Format(d)
	assert.Contains(t, output, `"severity":"warning"`)
	assert.Contains(t, output, `"code":"SingleItemList"`)
	assert.Contains(t, output, `"line":5`)
}

func TestJSONFormatterFormatAllProducesArray(t *testing.T) {
	jf := NewJSONFormatter()

	diags := []ast.Diagnostic{
		{Severity: ast.SeverityError, Code: ast.CodeIndentationError, Message: "a"},
		{Severity: ast.SeverityInfo, Code: ast.CodeDuplicateAnnotation, Message: "b"},
	}

	output := jf.FormatAll(diags)
	assert.True(t, strings.HasPrefix(output, "["))
	assert.True(t, strings.HasSuffix(output, "]"))
	assert.Contains(t, output, `"message": "a"`)
	assert.Contains(t, output, `"message": "b"`)
}
