package grouper

import (
	"github.com/txxtlang/txxt/ast"
	"github.com/txxtlang/txxt/lexer"
)

// grouping carries the accumulated diagnostics across the recursive
// classification pass (phase 3 of spec §4.3).
type grouping struct {
	source []byte
	diags  []ast.Diagnostic
}

// classify implements phases 2 and 3 together: it walks sibling lines,
// treating runs delimited by blank lines as candidate groups, and
// classifies each run into one or more Blocks per the priority order
// in spec §4.3. owner is the container kind the resulting blocks will
// live in, used to flag Session-in-ContentContainer violations.
func (g *grouping) classify(lines []*rawLine, owner containerKind) []*Block {
	var blocks []*Block
	i := 0
	for i < len(lines) {
		if lines[i].Blank {
			i++
			continue
		}

		switch {
		case startsWithAnnotationMarker(lines[i]):
			blocks = append(blocks, g.makeAnnotation(lines[i]))
			i++

		case endsWithDefinitionMarker(lines[i]):
			blocks = append(blocks, g.makeDefinition(lines[i]))
			i++

		case isVerbatimLine(lines[i]):
			blocks = append(blocks, g.makeVerbatim(lines[i]))
			i++

		case startsWithSequenceMarker(lines[i]):
			j := i
			var items []*rawLine
			for j < len(lines) && !lines[j].Blank && startsWithSequenceMarker(lines[j]) {
				items = append(items, lines[j])
				j++
			}
			if len(items) >= 2 || len(items[0].Children) > 0 {
				blocks = append(blocks, g.makeList(items))
			} else {
				para := g.makeParagraph(items)
				g.diags = append(g.diags, ast.Diagnostic{
					Severity: ast.SeverityWarning,
					Span:     para.Span,
					Code:     ast.CodeSingleItemList,
					Message:  "single-item list degrades to a paragraph",
				})
				blocks = append(blocks, para)
			}
			i = j

		case len(lines[i].Children) > 0 && isPlainTextLine(lines[i]):
			blocks = append(blocks, g.makeSession(lines[i], owner))
			i++

		default:
			j := i
			var para []*rawLine
			for j < len(lines) && !lines[j].Blank &&
				isPlainTextLine(lines[j]) && len(lines[j].Children) == 0 &&
				!startsWithSequenceMarker(lines[j]) && !startsWithAnnotationMarker(lines[j]) &&
				!endsWithDefinitionMarker(lines[j]) && !isVerbatimLine(lines[j]) {
				para = append(para, lines[j])
				j++
			}
			if len(para) == 0 {
				para = []*rawLine{lines[i]}
				j = i + 1
			}
			blocks = append(blocks, g.makeParagraph(para))
			i = j
		}
	}
	return blocks
}

func startsWithAnnotationMarker(l *rawLine) bool {
	return len(l.Tokens) > 0 && l.Tokens[0].Type == lexer.AnnotationMarker
}

func endsWithDefinitionMarker(l *rawLine) bool {
	return len(l.Tokens) > 0 && l.Tokens[len(l.Tokens)-1].Type == lexer.DefinitionMarker
}

func startsWithSequenceMarker(l *rawLine) bool {
	return len(l.Tokens) > 0 && l.Tokens[0].Type == lexer.SequenceMarker
}

func isVerbatimLine(l *rawLine) bool {
	for _, t := range l.Tokens {
		if t.Type == lexer.VerbatimStart {
			return true
		}
	}
	return false
}

func isPlainTextLine(l *rawLine) bool {
	return !startsWithAnnotationMarker(l) && !endsWithDefinitionMarker(l) &&
		!startsWithSequenceMarker(l) && !isVerbatimLine(l)
}

func lineSpan(tokens []lexer.Token) ast.SourceSpan {
	if len(tokens) == 0 {
		return ast.SourceSpan{}
	}
	return ast.Join(tokens[0].Span, tokens[len(tokens)-1].Span)
}

func (g *grouping) makeAnnotation(l *rawLine) *Block {
	return &Block{Kind: Annotation, Lines: [][]lexer.Token{l.Tokens}, Span: lineSpan(l.Tokens)}
}

func (g *grouping) makeDefinition(l *rawLine) *Block {
	children := g.classifyContentContainer(l.Children)
	span := lineSpan(l.Tokens)
	if len(children) > 0 {
		span = ast.Join(span, spanOfChildren(children))
	}
	return &Block{Kind: Definition, Lines: [][]lexer.Token{l.Tokens}, Children: children, Span: span}
}

func (g *grouping) makeVerbatim(l *rawLine) *Block {
	var content []lexer.Token
	var end lexer.Token
	for _, t := range l.Tokens {
		switch t.Type {
		case lexer.VerbatimContent:
			content = append(content, t)
		case lexer.VerbatimEnd:
			end = t
		}
	}
	span := lineSpan(l.Tokens)
	if end.Type == lexer.VerbatimEnd {
		span = ast.Join(span, end.Span)
	}
	return &Block{Kind: Verbatim, Lines: [][]lexer.Token{l.Tokens}, VerbatimContent: content, Span: span}
}

func (g *grouping) makeList(items []*rawLine) *Block {
	var itemBlocks []*Block
	var span ast.SourceSpan
	for idx, item := range items {
		children := g.classifyContentContainer(item.Children)
		itemSpan := lineSpan(item.Tokens)
		if len(children) > 0 {
			itemSpan = ast.Join(itemSpan, spanOfChildren(children))
		}
		ib := &Block{Kind: ListItem, Lines: [][]lexer.Token{item.Tokens}, Children: children, Span: itemSpan}
		itemBlocks = append(itemBlocks, ib)
		if idx == 0 {
			span = itemSpan
		} else {
			span = ast.Join(span, itemSpan)
		}
	}
	return &Block{Kind: List, Items: itemBlocks, Span: span}
}

func (g *grouping) makeSession(l *rawLine, owner containerKind) *Block {
	children := g.classify(l.Children, sessionContainer)
	span := lineSpan(l.Tokens)
	if len(children) > 0 {
		span = ast.Join(span, spanOfChildren(children))
	}
	block := &Block{Kind: Session, Lines: [][]lexer.Token{l.Tokens}, Children: children, Span: span}

	if owner == contentContainer {
		g.diags = append(g.diags, ast.Diagnostic{
			Severity: ast.SeverityError,
			Span:     span,
			Code:     ast.CodeSessionInContent,
			Message:  "session not permitted inside a content container",
		})
		return &Block{Kind: ErrorKind, Span: span}
	}
	return block
}

func (g *grouping) makeParagraph(lines []*rawLine) *Block {
	var toks [][]lexer.Token
	var span ast.SourceSpan
	for idx, l := range lines {
		toks = append(toks, l.Tokens)
		s := lineSpan(l.Tokens)
		if idx == 0 {
			span = s
		} else {
			span = ast.Join(span, s)
		}
	}
	return &Block{Kind: Paragraph, Lines: toks, Span: span}
}

// classifyContentContainer classifies children that must obey
// ContentContainer rules (no Session descendants), per spec §3.3/§4.3.
func (g *grouping) classifyContentContainer(lines []*rawLine) []*Block {
	return g.classify(lines, contentContainer)
}
