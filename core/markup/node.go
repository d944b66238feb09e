package markup

import "github.com/gaurav-prasanna/helpdoc/core/xref"

// Kind enumerates the node types produced by the tokenizer.
type Kind int

const (
	KindText      Kind = iota // raw author text
	KindBrace                 // escaped literal brace, written {{
	KindLink                  // {Text:target}
	KindRef                   // t[...] or p[...]
	KindItalic                // i[...]
	KindBold                  // b[...]
	KindCode                  // `...`
	KindHeading               // h1[...], h2[...], h3[...]
	KindBar                   // bar[...]
	KindCodeBlock             // code@...@
	KindPre                   // pre@...@
	KindNav                   // nav@...@
	KindList                  // ul@...@
	KindItem                  // li@...@
	KindDiagram               // dia[...]
	KindRule                  // -----
	KindReserved              // <NAME>
)

// Node is one element of the flat sequence produced by Parse. Container
// nodes (headings, bars, breadcrumbs, lists, items, links) hold their
// content in Children; every other node carries its payload in Text.
type Node struct {
	Kind     Kind
	Pos      int
	Text     string
	Target   string
	Level    int
	Ref      xref.Reference
	Children []Node
}
