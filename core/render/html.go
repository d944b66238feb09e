package render

import (
	_ "embed"
	"html"
	"strings"

	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/markup"
)

const (
	titleSlot = "[TITLE]"
	bodySlot  = "[BODY]"
)

// DefaultTitleSuffix is appended to every page title.
const DefaultTitleSuffix = " - TMBASIC Documentation"

//go:embed page.html
var defaultTemplate string

// HTMLRenderer fills a two-slot page template for each topic.
type HTMLRenderer struct {
	engine   *markup.Engine
	template string
	suffix   string
}

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithTemplate replaces the embedded page template. The template must
// contain both the [TITLE] and [BODY] slots.
func WithTemplate(template string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.template = template
	}
}

// WithTitleSuffix replaces DefaultTitleSuffix.
func WithTitleSuffix(suffix string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.suffix = suffix
	}
}

// NewHTMLRenderer creates an HTMLRenderer using the embedded template.
func NewHTMLRenderer(engine *markup.Engine, opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{engine: engine, template: defaultTemplate, suffix: DefaultTitleSuffix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ValidTemplate reports whether a page template has both slots.
func ValidTemplate(template string) bool {
	return strings.Contains(template, titleSlot) && strings.Contains(template, bodySlot)
}

// Render returns the complete HTML page. A topic without an h1 heading is
// an error.
func (r *HTMLRenderer) Render(topic core.Topic) ([]byte, error) {
	page, err := r.engine.Page(topic.Body)
	if err != nil {
		return nil, err
	}
	// One pass so that slot text inside the title or body is left alone.
	out := strings.NewReplacer(
		titleSlot, html.EscapeString(page.Title+r.suffix),
		bodySlot, page.Body,
	).Replace(r.template)
	return []byte(out), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
