package ast

// BlockVisitor is the closed set of block variants a language-server,
// formatter, or linter must handle, per spec §9 "the spec requires the
// AST to be traversable via a visitor pattern over a closed set of
// block and inline variants."
type BlockVisitor interface {
	VisitParagraph(*Paragraph)
	VisitList(*List)
	VisitListItem(*ListItem)
	VisitSession(*Session)
	VisitDefinition(*Definition)
	VisitVerbatim(*Verbatim)
	VisitAnnotation(*Annotation)
	VisitError(*ErrorNode)
}

// InlineVisitor is the closed set of inline transform variants.
type InlineVisitor interface {
	VisitIdentity(*Identity)
	VisitEmphasis(*Emphasis)
	VisitStrong(*Strong)
	VisitCode(*CodeSpan)
	VisitMath(*Math)
	VisitReference(*Reference)
	VisitCitation(*Citation)
	VisitFootnote(*Footnote)
}

// AcceptInline dispatches to the matching InlineVisitor method. Inline
// doesn't declare Accept itself (its node set nests via Children, not a
// single embedded field), so dispatch lives here as a free function.
func AcceptInline(n Inline, v InlineVisitor) {
	switch t := n.(type) {
	case *Identity:
		v.VisitIdentity(t)
	case *Emphasis:
		v.VisitEmphasis(t)
	case *Strong:
		v.VisitStrong(t)
	case *CodeSpan:
		v.VisitCode(t)
	case *Math:
		v.VisitMath(t)
	case *Reference:
		v.VisitReference(t)
	case *Citation:
		v.VisitCitation(t)
	case *Footnote:
		v.VisitFootnote(t)
	}
}

// WalkBlocks performs a pre-order traversal over b and its descendants,
// invoking fn on each block. Used by Document.Blocks and by linters that
// need a flat walk without implementing a full BlockVisitor.
func WalkBlocks(b Block, fn func(Block)) {
	fn(b)
	switch t := b.(type) {
	case *List:
		for _, item := range t.Items {
			WalkBlocks(item, fn)
		}
	case *ListItem:
		for _, c := range t.Body.Children() {
			WalkBlocks(c, fn)
		}
	case *Session:
		for _, c := range t.Body.Children() {
			WalkBlocks(c, fn)
		}
	case *Definition:
		for _, c := range t.Body.Children() {
			WalkBlocks(c, fn)
		}
	}
}

// WalkInlines performs a pre-order traversal over n and its children.
func WalkInlines(n Inline, fn func(Inline)) {
	fn(n)
	switch t := n.(type) {
	case *Emphasis:
		for _, c := range t.Children {
			WalkInlines(c, fn)
		}
	case *Strong:
		for _, c := range t.Children {
			WalkInlines(c, fn)
		}
	}
}
