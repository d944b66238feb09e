// Package source reads topic, procedure and diagram files from disk.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gaurav-prasanna/helpdoc/core"
)

// Ext is the extension of every source file.
const Ext = ".txt"

// ListFiles returns the paths of the regular files in dir, sorted by name.
// Hidden files are skipped.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Name returns the file base name without its extension. It is the topic
// id of a topic file and the name of a diagram file.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadTopic reads a topic file.
func ReadTopic(path string) (core.Topic, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return core.Topic{}, fmt.Errorf("reading topic: %w", err)
	}
	return core.Topic{ID: Name(path), Body: string(body)}, nil
}

// Diagrams resolves diagram names to <dir>/<name>.txt and caches what it
// reads. It is safe for concurrent use.
type Diagrams struct {
	dir string

	mu    sync.Mutex
	cache map[string]string
}

// NewDiagrams creates a diagram source rooted at dir.
func NewDiagrams(dir string) *Diagrams {
	return &Diagrams{dir: dir, cache: make(map[string]string)}
}

// Path returns the file a diagram name resolves to.
func (d *Diagrams) Path(name string) string {
	return filepath.Join(d.dir, name+Ext)
}

// Diagram returns the raw text of a diagram with trailing newlines removed.
func (d *Diagrams) Diagram(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return "", fmt.Errorf("invalid diagram name %q", name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if text, ok := d.cache[name]; ok {
		return text, nil
	}
	data, err := os.ReadFile(d.Path(name))
	if err != nil {
		return "", fmt.Errorf("reading diagram %s: %w", name, err)
	}
	text := strings.TrimRight(string(data), "\n")
	d.cache[name] = text
	return text, nil
}

// List returns every diagram file in the directory. A missing directory
// has no diagrams.
func (d *Diagrams) List() ([]core.Diagram, error) {
	paths, err := ListFiles(d.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var diagrams []core.Diagram
	for _, p := range paths {
		if filepath.Ext(p) != Ext {
			continue
		}
		text, err := d.Diagram(Name(p))
		if err != nil {
			return nil, err
		}
		diagrams = append(diagrams, core.Diagram{Name: Name(p), Text: text})
	}
	return diagrams, nil
}
