package ast

import "fmt"

// Container is the tagged-variant container polymorphism called for in
// spec §9 "Container polymorphism": rather than inheritance, a container
// is either content-only or session-capable, and child-kind constraints
// are enforced by construction (AppendChild), not by a class hierarchy.
type Container interface {
	Children() []Block
	AppendChild(b Block) error
	Span() SourceSpan
}

// ContentContainer permits any block kind except Session. Used by
// ListItem and Definition bodies. Annotation has no body container:
// lines indented under an annotation line are not kept in the AST.
type ContentContainer struct {
	Pos      SourceSpan
	children []Block
}

func (c *ContentContainer) Children() []Block { return c.children }
func (c *ContentContainer) Span() SourceSpan  { return c.Pos }

// AppendChild adds b as the last child, rejecting Session per the
// "session placed where only content is allowed" structural error in
// spec §7.
func (c *ContentContainer) AppendChild(b Block) error {
	if _, ok := b.(*Session); ok {
		return fmt.Errorf("structural error: session not permitted inside a content container")
	}
	c.children = append(c.children, b)
	c.Pos = Join(c.Pos, b.Span())
	return nil
}

// SessionContainer permits any block kind, including nested Session.
// Used by Document.Root and by each Session's body.
type SessionContainer struct {
	Pos      SourceSpan
	children []Block
}

func (c *SessionContainer) Children() []Block { return c.children }
func (c *SessionContainer) Span() SourceSpan  { return c.Pos }

func (c *SessionContainer) AppendChild(b Block) error {
	c.children = append(c.children, b)
	c.Pos = Join(c.Pos, b.Span())
	return nil
}
