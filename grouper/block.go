// Package grouper implements the second pipeline stage: it turns the
// lexer's flat token stream into a hierarchical tree of semantic
// blocks, the intermediate representation the assembler refines into
// the final AST.
package grouper

import (
	"github.com/txxtlang/txxt/ast"
	"github.com/txxtlang/txxt/lexer"
)

// Kind enumerates the block-node kinds of the intermediate tree.
type Kind int

const (
	Root Kind = iota
	Session
	Paragraph
	List
	ListItem
	Definition
	Annotation
	Verbatim
	TextLine
	BlankLineKind
	ErrorKind
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "Root"
	case Session:
		return "Session"
	case Paragraph:
		return "Paragraph"
	case List:
		return "List"
	case ListItem:
		return "ListItem"
	case Definition:
		return "Definition"
	case Annotation:
		return "Annotation"
	case Verbatim:
		return "Verbatim"
	case TextLine:
		return "TextLine"
	case BlankLineKind:
		return "BlankLine"
	case ErrorKind:
		return "Error"
	default:
		return "Unknown"
	}
}

// containerKind classifies whether a Block's Children obey
// ContentContainer rules (no Session descendants) or SessionContainer
// rules (anything permitted), per spec §3.3.
type containerKind int

const (
	contentContainer containerKind = iota
	sessionContainer
)

func (k Kind) containerKind() containerKind {
	switch k {
	case Root, Session:
		return sessionContainer
	default:
		return contentContainer
	}
}

// Block is a node of the intermediate block tree. Lines holds the
// header token runs contributing to this block: a Paragraph has one
// entry per source line; a Session, Definition, ListItem or Annotation
// has exactly one (its header/marker/term line); a List has none of
// its own (its Items carry their own lines). VerbatimContent holds the
// VerbatimContent tokens of a Verbatim block in order.
type Block struct {
	Kind            Kind
	Lines           [][]lexer.Token
	Children        []*Block
	Items           []*Block
	VerbatimContent []lexer.Token
	Span            ast.SourceSpan
}

// Group runs the block grouper over a token stream and returns the
// root block (kind Root, a SessionContainer) plus any structural
// diagnostics raised while enforcing container rules.
func Group(tokens []lexer.Token, source []byte) (*Block, []ast.Diagnostic) {
	lines := buildLineTree(tokens)
	g := &grouping{source: source}
	children := g.classify(lines, sessionContainer)
	root := &Block{Kind: Root, Children: children}
	root.Span = spanOfChildren(children)
	return root, g.diags
}

func spanOfChildren(children []*Block) ast.SourceSpan {
	var span ast.SourceSpan
	for i, c := range children {
		if i == 0 {
			span = c.Span
		} else {
			span = ast.Join(span, c.Span)
		}
	}
	return span
}
