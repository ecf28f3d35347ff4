package parser

import (
	"github.com/txxtlang/txxt/ast"
	"github.com/txxtlang/txxt/grouper"
	"github.com/txxtlang/txxt/lexer"
)

// deriveListStyle derives a List's Style and Form from its first item's
// marker, per spec §3.4 "List styling attributes live on List, not
// ListItem". Inconsistent reports whether any other item's marker
// grammar class differs from the first item's, so the assembler can
// flag it without rejecting the list outright (spec §8 invariant 6
// permits out-of-order or mixed markers within one list).
func deriveListStyle(items []*grouper.Block) (style ast.ListStyle, form ast.ListForm, inconsistent bool) {
	if len(items) == 0 {
		return ast.ListPlain, ast.ListShort, false
	}

	first := items[0].Lines[0][0]
	style = styleClassToListStyle(first.StyleClass)
	if first.MarkerComponents > 1 {
		form = ast.ListFull
	} else {
		form = ast.ListShort
	}

	for _, item := range items[1:] {
		marker := item.Lines[0][0]
		if marker.StyleClass != first.StyleClass {
			inconsistent = true
			break
		}
	}

	return style, form, inconsistent
}

func styleClassToListStyle(c lexer.ListStyleClass) ast.ListStyle {
	switch c {
	case lexer.StyleNumerical:
		return ast.ListNumerical
	case lexer.StyleAlphaLower:
		return ast.ListAlphaLower
	case lexer.StyleAlphaUpper:
		return ast.ListAlphaUpper
	case lexer.StyleRomanLower:
		return ast.ListRomanLower
	case lexer.StyleRomanUpper:
		return ast.ListRomanUpper
	default:
		return ast.ListPlain
	}
}
