// Package core defines the data model and the pipeline interfaces for helpdoc.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"strings"
)

// Topic is one renderable documentation page. Its title is the first
// level-1 heading inside Body and is derived at render time.
type Topic struct {
	ID   string
	Body string
}

// Parameter is one entry of an overload's call signature.
type Parameter struct {
	Name        string
	Type        string
	Description string
}

// Return describes the value produced by a function overload.
type Return struct {
	Type        string
	Description string
}

// Example is a description/code/output triple. The Has* flags record
// whether the corresponding block was present in the source.
type Example struct {
	Description string
	Code        string
	Output      string
	HasCode     bool
	HasOutput   bool
}

// Overload is one callable signature of a procedure.
type Overload struct {
	Parameters     []Parameter
	Return         *Return
	Description    string
	HasDescription bool
	Examples       []Example
}

// IsFunction reports whether the overload produces a value.
func (o Overload) IsFunction() bool {
	return o.Return != nil
}

// Signature returns the untagged declaration line of the overload, e.g.
// "function Foo(x as Integer) as Integer" or "sub Foo()".
func (o Overload) Signature(name string) string {
	var b strings.Builder
	if o.IsFunction() {
		b.WriteString("function ")
	} else {
		b.WriteString("sub ")
	}
	b.WriteString(name)
	b.WriteByte('(')
	for i, p := range o.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name + " as " + p.Type)
	}
	b.WriteByte(')')
	if o.IsFunction() {
		b.WriteString(" as " + o.Return.Type)
	}
	return b.String()
}

// Procedure is a named BASIC routine documented by one or more overloads.
type Procedure struct {
	Name        string
	Description string
	Overloads   []Overload
}

// TopicID returns the canonical topic identifier of the procedure page.
func (p Procedure) TopicID() string {
	return "procedure_" + p.Name
}

// Diagram is a named piece of ASCII art referenced from markup by dia[name].
type Diagram struct {
	Name string
	Text string
}

// Renderer converts a topic into one output encoding.
type Renderer interface {
	Render(topic Topic) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".md").
	Extension() string
}

// DiagramSource resolves diagram names to their raw UTF-8 text.
type DiagramSource interface {
	Diagram(name string) (string, error)
}

// Encoder re-encodes a source-encoded file into the help viewer's code page.
type Encoder interface {
	Encode(ctx context.Context, srcPath, dstPath string) error
}

// Splicer replaces every placeholder for the named diagram inside the
// help file with the re-encoded diagram content.
type Splicer interface {
	Splice(ctx context.Context, name, diagramPath, helpPath string) error
}

// FetchResult holds a built page and where it came from.
type FetchResult struct {
	ID   string
	Path string
	HTML string
}

// Fetcher retrieves a built HTML page by topic id.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*FetchResult, error)
}
