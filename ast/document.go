package ast

import "hash/fnv"

// AssemblyInfo records the per-parse metadata called for in spec §4.4
// "Assembly metadata": parser version, a stable content fingerprint, and
// structural counts, none of which can be derived from the tree without
// re-walking it, so they're computed once during assembly and cached
// here.
type AssemblyInfo struct {
	ParserVersion string
	Fingerprint   uint64
	BlockCount    int
	InlineCount   int
	MaxDepth      int
}

// Fingerprint hashes source bytes with FNV-1a. This is the one place in
// the module that reaches for the standard library instead of a
// third-party hash — see DESIGN.md: a 64-bit non-cryptographic content
// fingerprint has no natural home among the teacher's or pack's
// dependencies (xxhash et al. are pulled in transitively by minio, not
// by anything this module imports directly), and hash/fnv is the
// textbook-idiomatic choice for exactly this use.
func Fingerprint(source []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(source)
	return h.Sum64()
}

// Document is the final, typed, annotated, span-carrying syntax tree
// produced by the assembler (spec §3.4, §6.2).
type Document struct {
	Filename    string
	source      []byte
	Metadata    []*Annotation // root-level preamble and trailing annotations, attached to the document
	Root        *SessionContainer
	Assembly    AssemblyInfo
	Diagnostics []Diagnostic

	// Attachments holds annotations attached to a specific block by
	// proximity (spec §4.4, rules 2 and 3), keyed by the block they
	// attach to. Annotations are removed from the tree's normal child
	// position once attached; use AnnotationsFor to look them up.
	Attachments map[Block][]*Annotation
}

// AnnotationsFor returns the annotations attached to b by proximity,
// or nil if none attach to it.
func (d *Document) AnnotationsFor(b Block) []*Annotation {
	return d.Attachments[b]
}

// NewDocument constructs an (initially empty) Document over source,
// ready for the assembler to populate Root/Metadata/Diagnostics.
func NewDocument(filename string, source []byte) *Document {
	return &Document{
		Filename: filename,
		source:   source,
		Root:     &SessionContainer{},
	}
}

// Source returns the raw bytes the document was parsed from.
func (d *Document) Source() []byte { return d.source }

// Blocks returns every block in the tree in document order (pre-order,
// depth-first), flattening nested containers.
func (d *Document) Blocks() []Block {
	var out []Block
	for _, c := range d.Root.Children() {
		WalkBlocks(c, func(b Block) { out = append(out, b) })
	}
	return out
}

// Inlines returns every inline node in the tree in document order.
func (d *Document) Inlines() []Inline {
	var out []Inline
	collect := func(n Inline) { out = append(out, n) }
	var visit func(b Block)
	visit = func(b Block) {
		switch t := b.(type) {
		case *Paragraph:
			for _, in := range t.Inlines {
				WalkInlines(in, collect)
			}
		case *Session:
			for _, in := range t.Header {
				WalkInlines(in, collect)
			}
		case *Definition:
			for _, in := range t.Term {
				WalkInlines(in, collect)
			}
		case *Annotation:
			for _, in := range t.Value {
				WalkInlines(in, collect)
			}
		}
	}
	for _, b := range d.Blocks() {
		visit(b)
	}
	return out
}

// Node is anything in either the block or inline tree that carries a
// span. Block and Inline both satisfy it structurally.
type Node interface {
	Span() SourceSpan
}

// NodeAt returns the most deeply nested node whose span contains offset,
// per spec §6.2 "span-based lookup (nodeAt(offset) -> Node)". Returns
// nil if offset falls outside every span.
func (d *Document) NodeAt(offset int) Node {
	var best Node
	consider := func(n Node) {
		sp := n.Span()
		if sp.Start.Offset <= offset && offset < sp.End.Offset {
			if best == nil || sp.Len() <= best.Span().Len() {
				best = n
			}
		}
	}

	for _, b := range d.Blocks() {
		consider(b)
	}
	for _, in := range d.Inlines() {
		consider(in)
	}
	return best
}
