// Package parser implements the third pipeline stage: it refines the
// block grouper's intermediate tree into the final, typed, span-
// annotated AST, resolving inline formatting, list styling, and
// annotation attachment along the way.
package parser

import (
	"golang.org/x/exp/slices"

	"github.com/txxtlang/txxt/ast"
	"github.com/txxtlang/txxt/grouper"
	"github.com/txxtlang/txxt/lexer"
)

// ParserVersion is embedded in every Document's AssemblyInfo.
const ParserVersion = "txxt-core/1"

// Parse runs the full pipeline — tokenizer, grouper, assembler — over
// source and returns the resulting Document. The Document is always
// well-formed as a tree; parse failures are carried as diagnostics
// rather than a returned error (per spec §7), so the error return is
// reserved for conditions outside the grammar itself (none at present).
func Parse(source []byte, filename string) (*ast.Document, error) {
	tokens, lexDiags := lexer.NewLexer(source, filename).ScanAll()
	root, groupDiags := grouper.Group(tokens, source)

	doc := Assemble(root, source, filename)
	doc.Diagnostics = append(doc.Diagnostics, lexDiags...)
	doc.Diagnostics = append(doc.Diagnostics, groupDiags...)

	// The three stages append diagnostics in their own internal order
	// (lexer, grouper, then assembler); re-sort by position so a
	// consumer sees them in document order regardless of which stage
	// raised each one.
	slices.SortFunc(doc.Diagnostics, func(a, b ast.Diagnostic) int {
		return a.Span.Start.Offset - b.Span.Start.Offset
	})

	return doc, nil
}

// Tokenize runs only the tokenizer (Pass 0 + Pass 1) and returns the
// raw token stream, for tooling that needs token-level output without
// paying for block grouping or assembly.
func Tokenize(source []byte, filename string) ([]lexer.Token, error) {
	tokens, _ := lexer.NewLexer(source, filename).ScanAll()
	return tokens, nil
}

// assembler carries the state threaded through the block-tree walk:
// the source buffer (for span text and gap reconstruction) and the
// Document under construction, which accumulates metadata and
// attachments as a side effect of the walk.
type assembler struct {
	source   []byte
	doc      *ast.Document
	interner *lexer.Interner

	blockCount  int
	inlineCount int
	maxDepth    int

	// pendingTrailing holds trailing annotations for a container whose
	// owner block does not exist yet (its body is assembled before the
	// Session/Definition/ListItem node that will own it). Safe as a
	// single field because assembleContainer/reattachOwner pairs are
	// strictly nested, never concurrent.
	pendingTrailing []*ast.Annotation
}

// Assemble converts a grouper.Block tree (rooted at a Root block) into
// a final ast.Document. Annotation labels and list markers repeat
// heavily across a document (a handful of marker styles and label
// vocabularies reused everywhere), so the assembler interns both
// rather than allocating a fresh string per occurrence.
func Assemble(root *grouper.Block, source []byte, filename string) *ast.Document {
	doc := ast.NewDocument(filename, source)
	a := &assembler{source: source, doc: doc, interner: lexer.NewInterner(256)}

	children := a.assembleRoot(root.Children)
	doc.Root = &ast.SessionContainer{}
	for _, c := range children {
		_ = doc.Root.AppendChild(c)
	}

	doc.Assembly = ast.AssemblyInfo{
		ParserVersion: ParserVersion,
		Fingerprint:   ast.Fingerprint(source),
		BlockCount:    a.blockCount,
		InlineCount:   a.inlineCount,
		MaxDepth:      a.maxDepth,
	}

	return doc
}

// assembleRoot converts the document's top-level blocks, attaching
// preamble and trailing annotations to Document.Metadata.
func (a *assembler) assembleRoot(blocks []*grouper.Block) []ast.Block {
	out := a.assembleBlocks(blocks, 1)
	return a.attachAnnotations(out, true)
}

// assembleContainer converts a slice of sibling grouper.Blocks that
// live inside a non-root container into ast.Blocks. Trailing
// annotations are stashed in a.pendingTrailing for the caller to
// collect via reattachOwner once the owning block exists.
func (a *assembler) assembleContainer(blocks []*grouper.Block, depth int) []ast.Block {
	out := a.assembleBlocks(blocks, depth)
	result := a.attachAnnotations(out, false)
	return result
}

func (a *assembler) assembleBlocks(blocks []*grouper.Block, depth int) []ast.Block {
	if depth > a.maxDepth {
		a.maxDepth = depth
	}

	var out []ast.Block
	for _, b := range blocks {
		ab := a.assembleBlock(b, depth)
		if ab != nil {
			out = append(out, ab)
		}
	}
	return out
}

// assembleBlock converts a single grouper.Block into its ast.Block
// counterpart.
func (a *assembler) assembleBlock(b *grouper.Block, depth int) ast.Block {
	a.blockCount++

	switch b.Kind {
	case grouper.Paragraph:
		return a.assembleParagraph(b)
	case grouper.Session:
		return a.assembleSession(b, depth)
	case grouper.List:
		return a.assembleList(b, depth)
	case grouper.Definition:
		return a.assembleDefinition(b, depth)
	case grouper.Annotation:
		return a.assembleAnnotation(b)
	case grouper.Verbatim:
		return a.assembleVerbatim(b)
	case grouper.ErrorKind:
		return &ast.ErrorNode{Pos: b.Span, Code: ast.CodeSessionInContent, Message: "session not permitted inside a content container"}
	default:
		return &ast.ErrorNode{Pos: b.Span, Message: "unrecognized block"}
	}
}

func (a *assembler) assembleParagraph(b *grouper.Block) ast.Block {
	var inlines []ast.Inline
	for i, line := range b.Lines {
		if i > 0 {
			inlines = append(inlines, a.gapText(b.Lines[i-1], line))
		}
		inlines = append(inlines, a.parseInlines(line)...)
	}
	a.inlineCount += len(inlines)
	return &ast.Paragraph{Pos: b.Span, Inlines: inlines}
}

// gapText reconstructs the whitespace (the newline and any leading
// indentation) between two consecutive paragraph lines as an explicit
// Identity(Text) node, per spec §9's instruction to preserve interior
// whitespace rather than drop it.
func (a *assembler) gapText(prev, next []lexer.Token) ast.Inline {
	if len(prev) == 0 || len(next) == 0 {
		return &ast.Identity{Text: ""}
	}
	start := prev[len(prev)-1].Span.End
	end := next[0].Span.Start
	span := ast.SourceSpan{Start: start, End: end}
	return &ast.Identity{Pos: span, Text: span.Text(a.source)}
}

func (a *assembler) assembleSession(b *grouper.Block, depth int) ast.Block {
	header := a.parseInlines(b.Lines[0])
	a.inlineCount += len(header)
	body := &ast.SessionContainer{}
	children := a.assembleContainer(b.Children, depth+1)
	for _, c := range children {
		_ = body.AppendChild(c)
	}
	sess := &ast.Session{Pos: b.Span, Header: header, Body: body}
	a.reattachOwner(children, sess)
	return sess
}

func (a *assembler) assembleDefinition(b *grouper.Block, depth int) ast.Block {
	termTokens := stripTrailingMarker(b.Lines[0], lexer.DefinitionMarker)
	term := a.parseInlines(termTokens)
	a.inlineCount += len(term)
	body := &ast.ContentContainer{}
	children := a.assembleContainer(b.Children, depth+1)
	for _, c := range children {
		_ = body.AppendChild(c)
	}
	def := &ast.Definition{Pos: b.Span, Term: term, Body: body}
	a.reattachOwner(children, def)
	return def
}

func (a *assembler) assembleAnnotation(b *grouper.Block) ast.Block {
	return parseAnnotationLine(b.Lines[0], b.Span, a)
}

func (a *assembler) assembleVerbatim(b *grouper.Block) ast.Block {
	language, label := a.verbatimLabel(b.Lines[0])
	content := verbatimContent(b.VerbatimContent, a.source)
	return &ast.Verbatim{Pos: b.Span, Language: language, Label: label, Content: content}
}

func (a *assembler) assembleList(b *grouper.Block, depth int) ast.Block {
	style, form, inconsistent := deriveListStyle(b.Items)
	if inconsistent {
		a.doc.Diagnostics = append(a.doc.Diagnostics, ast.Diagnostic{
			Severity: ast.SeverityWarning,
			Span:     b.Span,
			Code:     ast.CodeMixedListStyle,
			Message:  "list items use more than one marker style",
		})
	}

	items := make([]*ast.ListItem, 0, len(b.Items))
	for _, itemBlock := range b.Items {
		items = append(items, a.assembleListItem(itemBlock, depth))
	}

	return &ast.List{Pos: b.Span, Style: style, Form: form, Items: items, Inconsistent: inconsistent}
}

func (a *assembler) assembleListItem(b *grouper.Block, depth int) *ast.ListItem {
	markerToken := b.Lines[0][0]
	rest := b.Lines[0][1:]

	body := &ast.ContentContainer{Pos: b.Span}
	inlineBlock := &ast.Paragraph{Pos: lineSpanOf(rest), Inlines: a.parseInlines(rest)}
	a.inlineCount += len(inlineBlock.Inlines)
	_ = body.AppendChild(inlineBlock)

	children := a.assembleContainer(b.Children, depth+1)
	for _, c := range children {
		_ = body.AppendChild(c)
	}

	item := &ast.ListItem{Pos: b.Span, MarkerText: a.interner.Intern(markerToken.Text(a.source)), Body: body}
	a.reattachOwner(children, item)
	return item
}

// reattachOwner collects any trailing-annotation attachments that were
// provisionally stashed in a.pendingTrailing (the owning block did not
// exist yet when its body was assembled) and attaches them to the
// now-constructed owner block.
func (a *assembler) reattachOwner(children []ast.Block, owner ast.Block) {
	if len(a.pendingTrailing) > 0 {
		a.attach(owner, a.pendingTrailing)
		a.pendingTrailing = nil
	}
}

func lineSpanOf(tokens []lexer.Token) ast.SourceSpan {
	if len(tokens) == 0 {
		return ast.SourceSpan{}
	}
	return ast.Join(tokens[0].Span, tokens[len(tokens)-1].Span)
}

func stripTrailingMarker(tokens []lexer.Token, t lexer.TokenType) []lexer.Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].Type == t {
		return tokens[:len(tokens)-1]
	}
	return tokens
}
