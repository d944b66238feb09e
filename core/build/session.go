package build

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/index"
	"github.com/gaurav-prasanna/helpdoc/core/render"
)

// Session holds the state of one build. Every topic owns a slot fixed
// before rendering starts, so workers never contend for a position and
// the aggregate order does not depend on scheduling.
type Session struct {
	topics   []core.Topic
	plain    [][]byte
	manifest []render.ManifestEntry
	index    *index.Builder
}

// NewSession creates a session with n topic slots.
func NewSession(n int) *Session {
	return &Session{
		topics:   make([]core.Topic, n),
		plain:    make([][]byte, n),
		manifest: make([]render.ManifestEntry, n),
		index:    index.New(),
	}
}

// Set stores the rendered plain text of the topic in slot i.
func (s *Session) Set(i int, topic core.Topic, plain []byte) error {
	if i < 0 || i >= len(s.plain) {
		return fmt.Errorf("slot %d out of range [0, %d)", i, len(s.plain))
	}
	s.topics[i] = topic
	s.plain[i] = plain
	return nil
}

// SetEntry stores the manifest entry of slot i.
func (s *Session) SetEntry(i int, entry render.ManifestEntry) {
	s.manifest[i] = entry
}

// AddProcedure records a procedure name for the index.
func (s *Session) AddProcedure(name string) {
	s.index.Add(name)
}

// Procedures returns the recorded procedure names in index order.
func (s *Session) Procedures() []string {
	return s.index.Names()
}

// IndexTopic builds the procedure index topic.
func (s *Session) IndexTopic(id string) core.Topic {
	return s.index.Topic(id)
}

// Topics returns every filled slot in order.
func (s *Session) Topics() []core.Topic {
	var topics []core.Topic
	for i, t := range s.topics {
		if s.plain[i] != nil {
			topics = append(topics, t)
		}
	}
	return topics
}

// Manifest returns the manifest entries of every filled slot in order.
func (s *Session) Manifest() []render.ManifestEntry {
	var entries []render.ManifestEntry
	for i, e := range s.manifest {
		if s.plain[i] != nil {
			entries = append(entries, e)
		}
	}
	return entries
}

// Help joins the plain text chunks into the aggregate help file, one blank
// line between topics.
func (s *Session) Help() []byte {
	var chunks [][]byte
	for _, c := range s.plain {
		if c != nil {
			chunks = append(chunks, c)
		}
	}
	return bytes.Join(chunks, []byte("\n"))
}
