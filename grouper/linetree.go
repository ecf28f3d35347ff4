package grouper

import "github.com/txxtlang/txxt/lexer"

// rawLine is one line's worth of content tokens (phase 1 of spec §4.3:
// the token tree). Children holds lines nested one Indent level
// deeper, attached to this line by the indentation stack.
type rawLine struct {
	Tokens   []lexer.Token
	Blank    bool
	Children []*rawLine
}

// buildLineTree replays the Indent/Dedent structure of the token
// stream into a tree of rawLines, so later phases can work with
// nesting directly instead of re-deriving it from indentation levels.
func buildLineTree(tokens []lexer.Token) []*rawLine {
	var root []*rawLine

	type frame struct {
		lines *[]*rawLine
		last  *rawLine
	}
	stack := []*frame{{lines: &root}}

	var current []lexer.Token

	flush := func() {
		if len(current) == 0 {
			return
		}
		top := stack[len(stack)-1]
		line := &rawLine{Tokens: current}
		*top.lines = append(*top.lines, line)
		top.last = line
		current = nil
	}

	for _, t := range tokens {
		switch t.Type {
		case lexer.Indent:
			flush()
			top := stack[len(stack)-1]
			if top.last == nil {
				// Indent with no preceding sibling line: attach the new
				// level directly under the current container instead of
				// dropping it.
				stack = append(stack, &frame{lines: top.lines})
				continue
			}
			stack = append(stack, &frame{lines: &top.last.Children})
		case lexer.Dedent:
			flush()
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case lexer.Newline:
			flush()
		case lexer.BlankLine:
			flush()
			top := stack[len(stack)-1]
			line := &rawLine{Blank: true}
			*top.lines = append(*top.lines, line)
			top.last = line
		case lexer.EOF:
			flush()
		default:
			current = append(current, t)
		}
	}
	flush()

	return root
}
