// Package markup rewrites the help markup grammar into plain help text or HTML.
//
// Source text is tokenized once into a flat node sequence. Each output target
// then walks the sequence in a single pass, so replacements are never
// re-scanned: text is escaped exactly once and resolved cross references are
// final. The grammar has a single nesting level. Headings, bars, breadcrumbs
// and list items may contain inline tags; inline tags contain text only; a
// list may contain items; nothing else nests.
package markup

import (
	"strings"

	"github.com/gaurav-prasanna/helpdoc/core/xref"
)

const ruleMarker = "-----"

type scope int

const (
	scopeTop scope = iota
	scopeList
	scopeInline
)

type delimiter int

const (
	bracketRaw  delimiter = iota // name[text]
	bracketTree                  // name[inline...]
	atRaw                        // name@text@
	atTree                       // name@inline...@
)

type tagSpec struct {
	name  string
	open  string
	kind  Kind
	level int
	ref   xref.Kind
	delim delimiter
	// scopes where the tag may appear
	top, list, inline bool
}

// Longer openers come first so that "bar[" is tried before "b[".
var tags = []tagSpec{
	{name: "code", open: "code@", kind: KindCodeBlock, delim: atRaw, top: true},
	{name: "pre", open: "pre@", kind: KindPre, delim: atRaw, top: true},
	{name: "nav", open: "nav@", kind: KindNav, delim: atTree, top: true},
	{name: "ul", open: "ul@", kind: KindList, delim: atTree, top: true},
	{name: "li", open: "li@", kind: KindItem, delim: atTree, top: true, list: true},
	{name: "dia", open: "dia[", kind: KindDiagram, delim: bracketRaw, top: true},
	{name: "bar", open: "bar[", kind: KindBar, delim: bracketTree, top: true},
	{name: "h1", open: "h1[", kind: KindHeading, level: 1, delim: bracketTree, top: true},
	{name: "h2", open: "h2[", kind: KindHeading, level: 2, delim: bracketTree, top: true},
	{name: "h3", open: "h3[", kind: KindHeading, level: 3, delim: bracketTree, top: true},
	{name: "t", open: "t[", kind: KindRef, ref: xref.Type, delim: bracketRaw, top: true, list: true, inline: true},
	{name: "p", open: "p[", kind: KindRef, ref: xref.Procedure, delim: bracketRaw, top: true, list: true, inline: true},
	{name: "i", open: "i[", kind: KindItalic, delim: bracketRaw, top: true, list: true, inline: true},
	{name: "b", open: "b[", kind: KindBold, delim: bracketRaw, top: true, list: true, inline: true},
}

func (t tagSpec) allowed(s scope) bool {
	switch s {
	case scopeTop:
		return t.top
	case scopeList:
		return t.list
	default:
		return t.inline
	}
}

// Parse tokenizes markup into a flat node sequence.
func Parse(src string) ([]Node, error) {
	p := &parser{src: src}
	return p.sequence(scopeTop, 0, 0, "")
}

type parser struct {
	src string
	pos int
}

// sequence reads nodes until the stop byte (consumed) or end of input. A
// non-zero stop that never appears is reported against the opening tag.
// Inside a bracket tag a bare "[" is rejected, since the first "]" would
// close the tag.
func (p *parser) sequence(s scope, stop byte, open int, tag string) ([]Node, error) {
	var (
		nodes     []Node
		text      strings.Builder
		textStart int
	)
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, Node{Kind: KindText, Pos: textStart, Text: text.String()})
			text.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if stop != 0 && c == stop {
			flush()
			p.pos++
			return nodes, nil
		}

		node, ok, err := p.element(s)
		if err != nil {
			return nil, err
		}
		if ok {
			flush()
			nodes = append(nodes, node)
			continue
		}

		if stop == ']' && c == '[' {
			return nil, newError(p.src, p.pos, tag, ErrNested)
		}
		if text.Len() == 0 {
			textStart = p.pos
		}
		text.WriteByte(c)
		p.pos++
	}

	if stop != 0 {
		return nil, newError(p.src, open, tag, ErrUnterminated)
	}
	flush()
	return nodes, nil
}

// element tries to read one tag at the current position.
func (p *parser) element(s scope) (Node, bool, error) {
	start := p.pos
	rest := p.src[start:]

	switch rest[0] {
	case '{':
		node := p.brace()
		return node, p.pos > start, nil
	case '<':
		node := p.reserved()
		return node, p.pos > start, nil
	case '`':
		node := p.codeSpan()
		return node, p.pos > start, nil
	case '-':
		if s == scopeTop && isRule(p.src, start) {
			p.pos += len(ruleMarker)
			return Node{Kind: KindRule, Pos: start}, true, nil
		}
		return Node{}, false, nil
	}

	if start > 0 && isIdent(p.src[start-1]) {
		return Node{}, false, nil
	}

	for _, t := range tags {
		if !strings.HasPrefix(rest, t.open) {
			continue
		}
		if !t.allowed(s) {
			return Node{}, false, newError(p.src, start, t.open, ErrNested)
		}
		node, err := p.tag(t, start)
		if err != nil {
			return Node{}, false, err
		}
		return node, true, nil
	}
	return Node{}, false, nil
}

func (p *parser) tag(t tagSpec, start int) (Node, error) {
	p.pos = start + len(t.open)
	node := Node{Kind: t.kind, Pos: start, Level: t.level}

	switch t.delim {
	case bracketRaw:
		body, err := p.raw(']', '[', start, t.open)
		if err != nil {
			return Node{}, err
		}
		if t.kind == KindRef {
			node.Ref = xref.Reference{Kind: t.ref, Name: body}
		}
		if t.kind == KindDiagram {
			body = strings.TrimSpace(body)
		}
		node.Text = body

	case atRaw:
		body, err := p.raw('@', 0, start, t.open)
		if err != nil {
			return Node{}, err
		}
		node.Text = body

	case bracketTree, atTree:
		stop := byte(']')
		if t.delim == atTree {
			stop = '@'
		}
		inner := scopeInline
		if t.kind == KindList {
			inner = scopeList
		}
		children, err := p.sequence(inner, stop, start, t.open)
		if err != nil {
			return Node{}, err
		}
		if len(children) == 0 {
			return Node{}, newError(p.src, start, t.open, ErrEmptyTag)
		}
		node.Children = children
	}
	return node, nil
}

// raw reads verbatim text up to the closing byte. A nested opening byte is
// rejected so that a stray tag inside an inline span fails loudly.
func (p *parser) raw(close, nested byte, start int, tag string) (string, error) {
	from := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == close {
			body := p.src[from:p.pos]
			p.pos++
			if body == "" {
				return "", newError(p.src, start, tag, ErrEmptyTag)
			}
			return body, nil
		}
		if nested != 0 && c == nested {
			return "", newError(p.src, p.pos, tag, ErrNested)
		}
		p.pos++
	}
	return "", newError(p.src, start, tag, ErrUnterminated)
}

// brace reads "{{" or a "{Text:target}" link. Anything else leaves the
// position untouched so the brace is kept as text.
func (p *parser) brace() Node {
	start := p.pos
	rest := p.src[start:]
	if strings.HasPrefix(rest, "{{") {
		p.pos += 2
		return Node{Kind: KindBrace, Pos: start}
	}

	end := strings.IndexByte(rest, '}')
	if end < 0 {
		return Node{}
	}
	body := rest[1:end]
	if strings.ContainsAny(body, "{\n") {
		return Node{}
	}
	colon := strings.IndexByte(body, ':')
	if colon <= 0 || colon == len(body)-1 {
		return Node{}
	}

	p.pos += end + 1
	return Node{
		Kind:     KindLink,
		Pos:      start,
		Target:   body[colon+1:],
		Children: splitReserved(body[:colon], start+1),
	}
}

func (p *parser) reserved() Node {
	start := p.pos
	name, ok := reservedAt(p.src[start:])
	if !ok {
		return Node{}
	}
	p.pos += len(name) + 2
	return Node{Kind: KindReserved, Pos: start, Text: name}
}

// codeSpan reads a backtick span. The closing backtick must be on the same
// line; otherwise the backtick is ordinary text.
func (p *parser) codeSpan() Node {
	start := p.pos
	rest := p.src[start+1:]
	end := strings.IndexAny(rest, "`\n")
	if end <= 0 || rest[end] != '`' {
		return Node{}
	}
	p.pos += end + 2
	return Node{Kind: KindCode, Pos: start, Text: rest[:end]}
}

func reservedAt(s string) (string, bool) {
	if len(s) < 3 || s[0] != '<' {
		return "", false
	}
	end := strings.IndexByte(s, '>')
	if end < 2 {
		return "", false
	}
	name := s[1:end]
	if !isReserved(name) {
		return "", false
	}
	return name, true
}

// splitReserved splits link text into text and reserved-name nodes.
func splitReserved(s string, pos int) []Node {
	var nodes []Node
	for s != "" {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			nodes = append(nodes, Node{Kind: KindText, Pos: pos, Text: s})
			break
		}
		name, ok := reservedAt(s[i:])
		if !ok {
			nodes = append(nodes, Node{Kind: KindText, Pos: pos, Text: s[:i+1]})
			s, pos = s[i+1:], pos+i+1
			continue
		}
		if i > 0 {
			nodes = append(nodes, Node{Kind: KindText, Pos: pos, Text: s[:i]})
		}
		nodes = append(nodes, Node{Kind: KindReserved, Pos: pos + i, Text: name})
		n := i + len(name) + 2
		s, pos = s[n:], pos+n
	}
	return nodes
}

// isRule reports whether exactly five dashes start at i. Longer runs of
// dashes are text.
func isRule(src string, i int) bool {
	if !strings.HasPrefix(src[i:], ruleMarker) {
		return false
	}
	if i > 0 && src[i-1] == '-' {
		return false
	}
	end := i + len(ruleMarker)
	return end == len(src) || src[end] != '-'
}

func isIdent(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
