// Package fetch implements the Fetcher interface over a built HTML
// directory.
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/xref"
)

// DirFetcher reads topic pages from the HTML output directory.
type DirFetcher struct {
	dir string
}

// New creates a DirFetcher rooted at dir.
func New(dir string) *DirFetcher {
	return &DirFetcher{dir: dir}
}

// Fetch reads the page of the given topic id. A missing page wraps
// os.ErrNotExist.
func (f *DirFetcher) Fetch(ctx context.Context, id string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("fetching %q: %w", id, os.ErrNotExist)
	}

	path := filepath.Join(f.dir, xref.Href(id))
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", id, err)
	}
	return &core.FetchResult{ID: id, Path: path, HTML: string(body)}, nil
}

// Pages lists the topic ids of every page in the directory, sorted.
func (f *DirFetcher) Pages() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".html" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".html"))
	}
	sort.Strings(ids)
	return ids, nil
}
