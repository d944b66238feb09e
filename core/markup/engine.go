package markup

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/helpdoc/core"
)

// Target selects the output form of a rewrite.
type Target int

const (
	// TargetPlain produces help viewer text with control-byte glyphs.
	TargetPlain Target = iota
	// TargetHTML produces an HTML fragment.
	TargetHTML
	// TargetTitle produces unadorned text for page titles.
	TargetTitle
)

func (t Target) String() string {
	switch t {
	case TargetPlain:
		return "plain"
	case TargetHTML:
		return "html"
	case TargetTitle:
		return "title"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// Engine rewrites markup for one target at a time. It is safe for
// concurrent use provided its DiagramSource is.
type Engine struct {
	names    Names
	diagrams core.DiagramSource
}

// New creates an engine. diagrams may be nil when no HTML output with
// diagrams is produced.
func New(names Names, diagrams core.DiagramSource) *Engine {
	return &Engine{names: names.WithDefaults(), diagrams: diagrams}
}

// Names returns the reserved names the engine substitutes.
func (e *Engine) Names() Names {
	return e.names
}

// Rewrite parses src and emits it for target.
func (e *Engine) Rewrite(src string, target Target) (string, error) {
	nodes, err := Parse(src)
	if err != nil {
		return "", err
	}
	return e.emit(nodes, target)
}

func (e *Engine) emit(nodes []Node, target Target) (string, error) {
	switch target {
	case TargetPlain:
		p := &plainEmitter{names: e.names}
		p.emit(nodes)
		return p.w.String(), nil
	case TargetHTML:
		h := &htmlEmitter{names: e.names, diagrams: e.diagrams}
		if err := h.emit(nodes); err != nil {
			return "", err
		}
		return h.w.String(), nil
	case TargetTitle:
		return textOnly(nodes, e.names), nil
	}
	return "", fmt.Errorf("unknown target %v", target)
}

// Page is a topic body rewritten for HTML together with its title.
type Page struct {
	Title string
	Body  string
}

// Title returns the text of the first level-1 heading in src.
func (e *Engine) Title(src string) (string, error) {
	nodes, err := Parse(src)
	if err != nil {
		return "", err
	}
	return e.title(src, nodes)
}

// Page parses src once and renders both its title and its HTML body.
func (e *Engine) Page(src string) (Page, error) {
	nodes, err := Parse(src)
	if err != nil {
		return Page{}, err
	}
	title, err := e.title(src, nodes)
	if err != nil {
		return Page{}, err
	}
	body, err := e.emit(nodes, TargetHTML)
	if err != nil {
		return Page{}, err
	}
	return Page{Title: title, Body: body}, nil
}

func (e *Engine) title(src string, nodes []Node) (string, error) {
	for _, n := range nodes {
		if n.Kind == KindHeading && n.Level == 1 {
			return strings.TrimSpace(textOnly(n.Children, e.names)), nil
		}
	}
	return "", newError(src, 0, "h1[", ErrNoTitle)
}

// Text flattens parsed nodes to their visible text.
func (e *Engine) Text(nodes []Node) string {
	return textOnly(nodes, e.names)
}

// Diagram returns the raw text of a named diagram.
func (e *Engine) Diagram(name string) (string, error) {
	if e.diagrams == nil {
		return "", ErrUnknownDiagram
	}
	return e.diagrams.Diagram(name)
}
