// Package render turns topics into their output encodings.
package render

import (
	"strings"

	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/markup"
)

// TopicMarker starts every topic chunk of the aggregate help file.
const TopicMarker = ".topic "

// PlainTextRenderer produces the help viewer chunk for a topic.
type PlainTextRenderer struct {
	engine *markup.Engine
}

// NewPlainTextRenderer creates a PlainTextRenderer.
func NewPlainTextRenderer(engine *markup.Engine) *PlainTextRenderer {
	return &PlainTextRenderer{engine: engine}
}

// Render returns the topic marker line followed by the plain body.
// Diagrams are left as placeholders for the splice pass.
func (r *PlainTextRenderer) Render(topic core.Topic) ([]byte, error) {
	body, err := r.engine.Rewrite(strings.TrimSpace(topic.Body), markup.TargetPlain)
	if err != nil {
		return nil, err
	}
	return []byte(TopicMarker + topic.ID + "\n" + strings.TrimRight(body, "\n") + "\n"), nil
}

// Extension returns the file extension for plain help text.
func (r *PlainTextRenderer) Extension() string {
	return ".txt"
}
