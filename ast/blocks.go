package ast

import "github.com/shopspring/decimal"

// Block is implemented by every final-AST block variant listed in spec
// §3.4: Paragraph, List, ListItem, Session, Definition, Verbatim,
// Annotation, plus the error-recovery ErrorNode from §7.
type Block interface {
	Span() SourceSpan
	Accept(v BlockVisitor)
	blockNode()
}

// Paragraph is one or more non-empty lines at a common indent, carrying
// a single run of inline content.
type Paragraph struct {
	Pos     SourceSpan
	Inlines []Inline
}

func (p *Paragraph) Span() SourceSpan    { return p.Pos }
func (p *Paragraph) Accept(v BlockVisitor) { v.VisitParagraph(p) }
func (p *Paragraph) blockNode()          {}

// ListStyle is derived from the first item's marker grammar class.
type ListStyle int

const (
	ListPlain ListStyle = iota
	ListNumerical
	ListAlphaLower
	ListAlphaUpper
	ListRomanLower
	ListRomanUpper
)

func (s ListStyle) String() string {
	switch s {
	case ListPlain:
		return "Plain"
	case ListNumerical:
		return "Numerical"
	case ListAlphaLower:
		return "AlphaLower"
	case ListAlphaUpper:
		return "AlphaUpper"
	case ListRomanLower:
		return "RomanLower"
	case ListRomanUpper:
		return "RomanUpper"
	default:
		return "Unknown"
	}
}

// ListForm distinguishes a bare marker ("1.") from one carrying the full
// hierarchy ("1.a.i)").
type ListForm int

const (
	ListShort ListForm = iota
	ListFull
)

// List carries styling attributes on itself, not on its ListItems, per
// spec §3.4 "List styling attributes live on List, not ListItem".
type List struct {
	Pos          SourceSpan
	Style        ListStyle
	Form         ListForm
	Items        []*ListItem
	Inconsistent bool // true if any item's inferred style differs from Style
}

func (l *List) Span() SourceSpan      { return l.Pos }
func (l *List) Accept(v BlockVisitor) { v.VisitList(l) }
func (l *List) blockNode()            {}

// ListItem preserves its literal marker text exactly, even when markers
// are out of order or mixed across a list (spec §3.4, §8 invariant 6).
type ListItem struct {
	Pos        SourceSpan
	MarkerText string
	Body       *ContentContainer
}

func (i *ListItem) Span() SourceSpan      { return i.Pos }
func (i *ListItem) Accept(v BlockVisitor) { v.VisitListItem(i) }
func (i *ListItem) blockNode()            {}

// Session is a nestable section: a header line plus an indented body.
type Session struct {
	Pos    SourceSpan
	Header []Inline
	Body   *SessionContainer
}

func (s *Session) Span() SourceSpan      { return s.Pos }
func (s *Session) Accept(v BlockVisitor) { v.VisitSession(s) }
func (s *Session) blockNode()            {}

// Definition is `Term ::` with content indented below.
type Definition struct {
	Pos  SourceSpan
	Term []Inline
	Body *ContentContainer
}

func (d *Definition) Span() SourceSpan      { return d.Pos }
func (d *Definition) Accept(v BlockVisitor) { v.VisitDefinition(d) }
func (d *Definition) blockNode()            {}

// Verbatim is a literally preserved region introduced by a
// colon-terminated header, optionally closed by a parenthesized label.
// Content is preserved byte-exact, including interior whitespace.
type Verbatim struct {
	Pos      SourceSpan
	Language string // optional language tag from the (lang) label
	Label    string // the raw label identifier, if present
	Content  string
}

func (v *Verbatim) Span() SourceSpan      { return v.Pos }
func (v *Verbatim) Accept(vi BlockVisitor) { vi.VisitVerbatim(v) }
func (v *Verbatim) blockNode()            {}

// ParamValue is a parameter's typed value: exactly one of Ident, Str, or
// Num is set. Numeric literals are kept as decimal.Decimal so a
// parameter like ":width=12.50" round-trips with its original decimal
// representation, the same reasoning the teacher's ledger code applies
// to monetary amounts.
type ParamValue struct {
	Ident string
	Str   string
	Num   decimal.Decimal
	Kind  ParamValueKind
}

type ParamValueKind int

const (
	ParamIdent ParamValueKind = iota
	ParamString
	ParamNumber
)

// Parameter is one `key=value` pair from an annotation's parameter
// block, with a span covering the full pair (the spec flags zero-width
// Parameter spans as a known source-side bug this implementation must
// not reproduce).
type Parameter struct {
	Pos   SourceSpan
	Key   string
	Value ParamValue
}

// Annotation is `:: label ::` or `:: label :: value`, carrying an
// optional parameter block and attaching to a nearby block by proximity
// (spec §4.4).
type Annotation struct {
	Pos        SourceSpan
	Label      string
	Parameters []Parameter
	Value      []Inline
}

func (a *Annotation) Span() SourceSpan      { return a.Pos }
func (a *Annotation) Accept(v BlockVisitor) { v.VisitAnnotation(a) }
func (a *Annotation) blockNode()            {}

// ErrorNode covers a span where a lexical or structural error was
// detected; parsing resumes at the next blank line (spec §7).
type ErrorNode struct {
	Pos     SourceSpan
	Code    Code
	Message string
}

func (e *ErrorNode) Span() SourceSpan      { return e.Pos }
func (e *ErrorNode) Accept(v BlockVisitor) { v.VisitError(e) }
func (e *ErrorNode) blockNode()            {}
