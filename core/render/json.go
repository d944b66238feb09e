package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/markup"
	"github.com/gaurav-prasanna/helpdoc/core/xref"
)

// Heading is one h1..h3 heading of a topic.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is one outgoing reference of a topic.
type Link struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

// ManifestEntry describes the structure of one topic.
type ManifestEntry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Page     string    `json:"page"`
	Headings []Heading `json:"headings"`
	Links    []Link    `json:"links"`
	Diagrams []string  `json:"diagrams,omitempty"`
}

// JSONRenderer describes topics for the site manifest.
type JSONRenderer struct {
	engine *markup.Engine
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer(engine *markup.Engine) *JSONRenderer {
	return &JSONRenderer{engine: engine}
}

// Entry extracts the headings, links and diagrams of a topic.
func (r *JSONRenderer) Entry(topic core.Topic) (ManifestEntry, error) {
	nodes, err := markup.Parse(topic.Body)
	if err != nil {
		return ManifestEntry{}, err
	}
	title, err := r.engine.Title(topic.Body)
	if err != nil {
		return ManifestEntry{}, err
	}

	entry := ManifestEntry{
		ID:       topic.ID,
		Title:    title,
		Page:     xref.Href(topic.ID),
		Headings: []Heading{},
		Links:    []Link{},
	}
	r.collect(&entry, nodes)
	return entry, nil
}

func (r *JSONRenderer) collect(entry *ManifestEntry, nodes []markup.Node) {
	names := r.engine.Names()
	for _, n := range nodes {
		switch n.Kind {
		case markup.KindHeading:
			entry.Headings = append(entry.Headings, Heading{
				Level: n.Level,
				Text:  strings.TrimSpace(r.engine.Text(n.Children)),
			})
		case markup.KindLink:
			entry.Links = append(entry.Links, Link{
				Text:   r.engine.Text(n.Children),
				Target: names.Expand(n.Target),
			})
			continue
		case markup.KindRef:
			entry.Links = append(entry.Links, Link{Text: n.Ref.Name, Target: n.Ref.ID()})
		case markup.KindDiagram:
			entry.Diagrams = append(entry.Diagrams, n.Text)
		}
		r.collect(entry, n.Children)
	}
}

// Render returns the manifest entry of one topic as JSON.
func (r *JSONRenderer) Render(topic core.Topic) ([]byte, error) {
	entry, err := r.Entry(topic)
	if err != nil {
		return nil, err
	}
	return marshal(entry)
}

// Manifest returns the entries of all topics as one JSON document.
func (r *JSONRenderer) Manifest(entries []ManifestEntry) ([]byte, error) {
	return marshal(entries)
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}
