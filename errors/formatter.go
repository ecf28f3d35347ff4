// Package errors provides diagnostic formatting infrastructure,
// separate from the parsing pipeline so the same ast.Diagnostic values
// can be rendered for a terminal, a plain log, or a machine consumer.
//
// The package defines a Formatter interface with two implementations:
//   - TextFormatter: source-context, caret-pointing output for a CLI
//   - JSONFormatter: structured output for tooling and editors
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/txxtlang/txxt/ast"
)

// Formatter renders diagnostics for output in a specific format.
type Formatter interface {
	Format(d ast.Diagnostic) string
	FormatAll(diags []ast.Diagnostic) string
}

var (
	severityStyles = map[ast.Severity]lipgloss.Style{
		ast.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}).Bold(true),
		ast.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#D7AF00"}).Bold(true),
		ast.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"}),
	}
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
)

// TextFormatter formats diagnostics for terminal output: the message,
// styled by severity, followed by the surrounding source lines with a
// caret under the offending column.
type TextFormatter struct {
	sourceContent []byte
}

// TextFormatterOption configures a TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content diagnostics are rendered against.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) { tf.sourceContent = source }
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format renders a single diagnostic.
func (tf *TextFormatter) Format(d ast.Diagnostic) string {
	style, ok := severityStyles[d.Severity]
	if !ok {
		style = severityStyles[ast.SeverityError]
	}

	header := fmt.Sprintf("%s: %s [%s]", d.Severity, d.Message, d.Code)
	if d.Span.IsZero() || tf.sourceContent == nil {
		return style.Render(header)
	}

	var buf bytes.Buffer
	buf.WriteString(style.Render(header))
	buf.WriteString(fmt.Sprintf(" (%s)", d.Span.Start))
	buf.WriteString("\n\n")
	buf.WriteString(tf.sourceContext(d.Span.Start))
	return buf.String()
}

// FormatAll renders multiple diagnostics, separated by blank lines.
func (tf *TextFormatter) FormatAll(diags []ast.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	var buf bytes.Buffer
	for i, d := range diags {
		buf.WriteString(tf.Format(d))
		if i < len(diags)-1 {
			buf.WriteString("\n\n")
		}
	}
	return buf.String()
}

// sourceContext shows 2 lines before and 1 line after pos, with a caret
// under pos's column on the offending line.
func (tf *TextFormatter) sourceContext(pos ast.Position) string {
	var buf bytes.Buffer

	lines := strings.Split(string(tf.sourceContent), "\n")
	startLine := pos.Line - 3
	endLine := pos.Line + 1
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	for i := startLine; i <= endLine && i < len(lines); i++ {
		buf.WriteString("   ")
		buf.WriteString(contextStyle.Render(lines[i]))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString(caretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// JSONFormatter formats diagnostics as JSON, for editors and other
// tooling that need a structured representation.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter { return &JSONFormatter{} }

// DiagnosticJSON is the wire representation of one ast.Diagnostic.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Start    PositionJSON `json:"start"`
	End      PositionJSON `json:"end"`
}

// PositionJSON is the wire representation of an ast.Position.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

func (jf *JSONFormatter) toJSON(d ast.Diagnostic) DiagnosticJSON {
	return DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     string(d.Code),
		Message:  d.Message,
		Start:    PositionJSON{Filename: d.Span.Start.Filename, Line: d.Span.Start.Line, Column: d.Span.Start.Column},
		End:      PositionJSON{Filename: d.Span.End.Filename, Line: d.Span.End.Line, Column: d.Span.End.Column},
	}
}

// Format renders a single diagnostic as a JSON object.
func (jf *JSONFormatter) Format(d ast.Diagnostic) string {
	data, _ := json.Marshal(jf.toJSON(d))
	return string(data)
}

// FormatAll renders a slice of diagnostics as a JSON array.
func (jf *JSONFormatter) FormatAll(diags []ast.Diagnostic) string {
	out := make([]DiagnosticJSON, 0, len(diags))
	for _, d := range diags {
		out = append(out, jf.toJSON(d))
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return string(data)
}
