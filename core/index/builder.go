// Package index builds the procedure index topic.
package index

import (
	"sort"
	"strings"
	"sync"

	"github.com/gaurav-prasanna/helpdoc/core"
)

const breadcrumb = "nav@{<TITLE_HOME>:<TOPIC_HOME>} <TRIANGLE_RIGHT> " +
	"{<TITLE_BASIC_REFERENCE>:<TOPIC_BASIC_REFERENCE>}@"

// Builder collects procedure names. Adding is safe from multiple goroutines.
type Builder struct {
	mu    sync.Mutex
	names []string
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{}
}

// Add records a procedure name. Duplicates are kept.
func (b *Builder) Add(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.names = append(b.names, name)
}

// Names returns the collected names in ascending byte order.
func (b *Builder) Names() []string {
	b.mu.Lock()
	names := append([]string(nil), b.names...)
	b.mu.Unlock()
	sort.Strings(names)
	return names
}

// Topic returns the index page with one bullet per collected name.
func (b *Builder) Topic(id string) core.Topic {
	var s strings.Builder
	s.WriteString(breadcrumb + "\n\n")
	s.WriteString("h1[<TITLE_PROCEDURE_INDEX>]\n\n")
	if names := b.Names(); len(names) > 0 {
		s.WriteString("ul@")
		for _, name := range names {
			s.WriteString("li@p[" + name + "]@\n")
		}
		s.WriteString("@\n")
	}
	return core.Topic{ID: id, Body: s.String()}
}
