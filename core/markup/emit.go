package markup

import (
	"strings"

	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/xref"
)

// writer accumulates emitted output. After a block element the newlines that
// immediately follow it in the source are dropped.
type writer struct {
	buf    []byte
	skipNL bool
}

func (w *writer) text(s string) {
	if w.skipNL {
		s = strings.TrimLeft(s, "\n")
		if s == "" {
			return
		}
		w.skipNL = false
	}
	w.buf = append(w.buf, s...)
}

func (w *writer) raw(s string) {
	w.skipNL = false
	w.buf = append(w.buf, s...)
}

// block writes a block element with the blank lines around it trimmed.
func (w *writer) block(s string) {
	for len(w.buf) > 0 && w.buf[len(w.buf)-1] == '\n' {
		w.buf = w.buf[:len(w.buf)-1]
	}
	w.buf = append(w.buf, s...)
	w.skipNL = true
}

func (w *writer) String() string {
	return string(w.buf)
}

// --- plain help text ---

type plainEmitter struct {
	w     writer
	names Names
}

func (e *plainEmitter) emit(nodes []Node) {
	for _, n := range nodes {
		e.node(n)
	}
}

func (e *plainEmitter) sub(nodes []Node) string {
	s := &plainEmitter{names: e.names}
	s.emit(nodes)
	return s.w.String()
}

func (e *plainEmitter) node(n Node) {
	switch n.Kind {
	case KindText:
		e.w.text(n.Text)
	case KindBrace:
		e.w.raw("{{")
	case KindLink:
		text := e.sub(n.Children)
		target := e.names.Expand(n.Target)
		if isExternal(target) {
			e.w.raw(text)
		} else {
			e.w.raw("{" + text + ":" + target + "}")
		}
	case KindRef:
		e.w.raw("{" + n.Ref.Name + ":" + n.Ref.ID() + "}")
	case KindItalic, KindCode:
		e.w.raw("'" + n.Text + "'")
	case KindBold:
		e.w.raw(n.Text)
	case KindHeading:
		if n.Level == 2 {
			e.w.raw(glyphs["DIAMOND"].plain + " ")
		}
		e.w.raw(e.sub(n.Children))
	case KindBar, KindNav:
		e.w.raw(e.sub(n.Children))
	case KindCodeBlock, KindPre:
		e.w.raw(indent(n.Text))
	case KindList:
		e.w.raw(strings.TrimLeft(e.sub(n.Children), "\n"))
		e.w.skipNL = true
	case KindItem:
		e.w.raw(glyphs["BULLET"].plain + " " + e.sub(n.Children) + "\n\n")
		e.w.skipNL = true
	case KindDiagram:
		e.w.raw(DiagramPlaceholder(n.Text))
	case KindRule:
		e.w.raw(ruleMarker)
	case KindReserved:
		e.w.raw(e.names.plain(n.Text))
	}
}

// --- HTML ---

type htmlEmitter struct {
	w        writer
	names    Names
	diagrams core.DiagramSource
}

func (e *htmlEmitter) emit(nodes []Node) error {
	for _, n := range nodes {
		if err := e.node(n); err != nil {
			return err
		}
	}
	return nil
}

func (e *htmlEmitter) sub(nodes []Node) (string, error) {
	s := &htmlEmitter{names: e.names, diagrams: e.diagrams}
	if err := s.emit(nodes); err != nil {
		return "", err
	}
	return s.w.String(), nil
}

func (e *htmlEmitter) node(n Node) error {
	switch n.Kind {
	case KindText:
		e.w.text(escapeText(n.Text))
	case KindBrace:
		e.w.raw("{")
	case KindLink:
		text, err := e.sub(n.Children)
		if err != nil {
			return err
		}
		target := e.names.Expand(n.Target)
		if !isExternal(target) {
			target = xref.Href(target)
		}
		e.w.raw(`<a href="` + escapeAttr(target) + `">` + text + "</a>")
	case KindRef:
		e.w.raw(`<a href="` + escapeAttr(xref.Href(n.Ref.ID())) + `">` + escapeText(n.Ref.Name) + "</a>")
	case KindItalic:
		e.w.raw("<i>" + escapeText(n.Text) + "</i>")
	case KindBold:
		e.w.raw("<b>" + escapeText(n.Text) + "</b>")
	case KindCode:
		e.w.raw("<code>" + escapeText(n.Text) + "</code>")
	case KindHeading:
		inner, err := e.sub(n.Children)
		if err != nil {
			return err
		}
		tag := "h" + string(rune('0'+n.Level))
		e.w.block("<" + tag + ">" + inner + "</" + tag + ">")
	case KindBar:
		inner, err := e.sub(n.Children)
		if err != nil {
			return err
		}
		e.w.block(`<div class="bar"><span>` + inner + "</span></div>")
	case KindNav:
		inner, err := e.sub(n.Children)
		if err != nil {
			return err
		}
		e.w.block("<nav>" + inner + "</nav>")
	case KindCodeBlock:
		e.w.block(codeHTML(n.Text))
	case KindPre:
		e.w.block(`<pre class="diagram">` + escapeText(strings.Trim(n.Text, "\n")) + "</pre>")
	case KindList:
		var items strings.Builder
		for _, c := range n.Children {
			if c.Kind == KindText && strings.TrimSpace(c.Text) == "" {
				continue
			}
			s, err := e.sub([]Node{c})
			if err != nil {
				return err
			}
			items.WriteString(s)
		}
		e.w.block("<ul>" + strings.Trim(items.String(), "\n") + "</ul>")
	case KindItem:
		inner, err := e.sub(n.Children)
		if err != nil {
			return err
		}
		e.w.block("<li>" + strings.Trim(inner, "\n") + "</li>")
	case KindDiagram:
		if e.diagrams == nil {
			return &Error{Tag: "dia[", Pos: n.Pos, Snippet: n.Text, Err: ErrUnknownDiagram}
		}
		text, err := e.diagrams.Diagram(n.Text)
		if err != nil {
			return &Error{Tag: "dia[", Pos: n.Pos, Snippet: n.Text, Err: err}
		}
		e.w.block(`<pre class="diagram">` + escapeText(text) + "</pre>")
	case KindRule:
		e.w.block("<hr>")
	case KindReserved:
		e.w.raw(e.names.html(n.Text))
	}
	return nil
}

// --- text only ---

// textOnly flattens nodes to their visible text. It is used for page
// titles and for reading back signatures from headings.
func textOnly(nodes []Node, names Names) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case KindText, KindCodeBlock, KindPre, KindItalic, KindBold:
			b.WriteString(n.Text)
		case KindBrace:
			b.WriteString("{")
		case KindRef:
			b.WriteString(n.Ref.Name)
		case KindCode:
			b.WriteString(`"` + n.Text + `"`)
		case KindReserved:
			b.WriteString(names.text(n.Text))
		case KindRule, KindDiagram:
		default:
			b.WriteString(textOnly(n.Children, names))
		}
	}
	return b.String()
}

// --- helpers ---

// DiagramPlaceholder returns the marker left in plain help text for the
// splice pass to replace with the re-encoded diagram.
func DiagramPlaceholder(name string) string {
	return "dia[" + name + "]"
}

func (n Names) plain(name string) string {
	if g, ok := glyphs[name]; ok {
		return g.plain
	}
	v, _ := n.lookup(name)
	return v
}

func (n Names) html(name string) string {
	if g, ok := glyphs[name]; ok {
		return g.html
	}
	v, _ := n.lookup(name)
	return escapeText(v)
}

func (n Names) text(name string) string {
	if g, ok := glyphs[name]; ok {
		return g.text
	}
	v, _ := n.lookup(name)
	return v
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

func isExternal(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// indent prefixes every line with two spaces and terminates it with a newline.
func indent(s string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(strings.TrimSuffix(s, "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(strings.TrimSuffix(line, "\n"))
		b.WriteByte('\n')
	}
	return b.String()
}

const indentUnit = "    "

// codeHTML renders a code block: one div per line, leading four-space
// groups marked as indentation, strings and comments highlighted.
func codeHTML(src string) string {
	src = strings.TrimRight(strings.TrimLeft(src, "\n"), " \t\n")

	var b strings.Builder
	b.WriteString(`<div class="code">`)
	for _, line := range strings.Split(src, "\n") {
		if line == "" {
			b.WriteString("<pre></pre>")
			continue
		}
		b.WriteString("<div>")
		b.WriteString(highlightLine(line))
		b.WriteString("</div>")
	}
	b.WriteString("</div>")
	return b.String()
}

func highlightLine(line string) string {
	var b strings.Builder
	for strings.HasPrefix(line, indentUnit) {
		b.WriteString(`<span class="indent">` + indentUnit + "</span>")
		line = line[len(indentUnit):]
	}

	plainFrom := 0
	flush := func(to int) {
		b.WriteString(escapeText(line[plainFrom:to]))
	}
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			end := strings.IndexByte(line[i+1:], '"')
			if end < 0 {
				continue
			}
			flush(i)
			stop := i + end + 2
			b.WriteString(`<span class="string">` + escapeText(line[i:stop]) + "</span>")
			plainFrom = stop
			i = stop - 1
		case '\'':
			flush(i)
			b.WriteString(`<span class="comment">` + escapeText(line[i:]) + "</span>")
			return b.String()
		}
	}
	flush(len(line))
	return b.String()
}
