package parser

import "github.com/txxtlang/txxt/ast"

// attachAnnotations implements the proximity rules of spec §4.4: an
// annotation immediately preceding another block (blank lines
// permitted in between — the grouper has already discarded those)
// attaches to that block; annotations trailing at the end of a
// container attach to the container's owner; at the document root,
// both the leading (preamble) and trailing cases attach to
// Document.Metadata instead of a block.
func (a *assembler) attachAnnotations(blocks []ast.Block, isRoot bool) []ast.Block {
	var out []ast.Block
	var pending []*ast.Annotation
	seenContent := false

	for _, b := range blocks {
		if ann, ok := b.(*ast.Annotation); ok {
			pending = append(pending, ann)
			continue
		}

		if len(pending) > 0 {
			if isRoot && !seenContent {
				a.doc.Metadata = append(a.doc.Metadata, pending...)
			} else {
				a.attach(b, pending)
			}
			pending = nil
		}

		seenContent = true
		out = append(out, b)
	}

	if len(pending) > 0 {
		if isRoot {
			a.doc.Metadata = append(a.doc.Metadata, pending...)
		} else {
			a.pendingTrailing = append(a.pendingTrailing, pending...)
		}
	}

	return out
}

func (a *assembler) attach(target ast.Block, anns []*ast.Annotation) {
	if a.doc.Attachments == nil {
		a.doc.Attachments = make(map[ast.Block][]*ast.Annotation)
	}
	a.doc.Attachments[target] = append(a.doc.Attachments[target], anns...)
}
