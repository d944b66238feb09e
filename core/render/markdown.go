package render

import (
	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/markup"
	"github.com/gaurav-prasanna/helpdoc/core/normalize"
)

// MarkdownRenderer exports a topic as Markdown by converting its HTML body.
type MarkdownRenderer struct {
	engine     *markup.Engine
	normalizer *normalize.MarkdownNormalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(engine *markup.Engine) *MarkdownRenderer {
	return &MarkdownRenderer{engine: engine, normalizer: normalize.New()}
}

// Render returns the topic body as Markdown.
func (r *MarkdownRenderer) Render(topic core.Topic) ([]byte, error) {
	page, err := r.engine.Page(topic.Body)
	if err != nil {
		return nil, err
	}
	md, err := r.normalizer.Normalize(page.Body)
	if err != nil {
		return nil, err
	}
	return []byte(md + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
