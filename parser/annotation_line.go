package parser

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/txxtlang/txxt/ast"
	"github.com/txxtlang/txxt/lexer"
)

// parseAnnotationLine converts one grouper.Annotation block's token line
// into an ast.Annotation, per the grammar in spec §4.2.1 / §6.1:
// AnnotationMarker, optional label Identifier, optional parameter block,
// closing AnnotationMarker, then the value's inline content.
func parseAnnotationLine(tokens []lexer.Token, span ast.SourceSpan, a *assembler) ast.Block {
	pos := 0
	if pos < len(tokens) && tokens[pos].Type == lexer.AnnotationMarker {
		pos++
	}

	var label string
	if pos < len(tokens) && tokens[pos].Type == lexer.Identifier {
		label = a.interner.Intern(tokens[pos].Text(a.source))
		pos++
	}

	var params []ast.Parameter
	for pos < len(tokens) && tokens[pos].Type == lexer.ParameterTok {
		params = append(params, parseParameter(tokens[pos], a.source, a.interner))
		pos++
	}

	if pos < len(tokens) && tokens[pos].Type == lexer.AnnotationMarker {
		pos++
	}

	value := a.parseInlines(tokens[pos:])
	a.inlineCount += len(value)

	return &ast.Annotation{Pos: span, Label: label, Parameters: params, Value: value}
}

// parseParameter splits one "key=value" ParameterTok into a
// key and typed ParamValue, per spec §3.5: a bare identifier, a quoted
// string, or a decimal number (kept as decimal.Decimal so the original
// literal representation round-trips).
func parseParameter(t lexer.Token, source []byte, interner *lexer.Interner) ast.Parameter {
	text := t.Text(source)
	key, value := text, ""
	if i := strings.IndexByte(text, '='); i >= 0 {
		key, value = text[:i], text[i+1:]
	}

	return ast.Parameter{Pos: t.Span, Key: interner.Intern(key), Value: parseParamValue(value)}
}

func parseParamValue(value string) ast.ParamValue {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		unquoted, err := strconv.Unquote(value)
		if err != nil {
			unquoted = value[1 : len(value)-1]
		}
		return ast.ParamValue{Str: unquoted, Kind: ast.ParamString}
	}

	if num, err := decimal.NewFromString(value); err == nil {
		return ast.ParamValue{Num: num, Kind: ast.ParamNumber}
	}

	return ast.ParamValue{Ident: value, Kind: ast.ParamIdent}
}
