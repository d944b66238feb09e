// Package normalize converts rendered HTML pages into Markdown.
package normalize

import (
	"fmt"
	"regexp"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// localLinkRegex matches Markdown links to sibling HTML pages.
var localLinkRegex = regexp.MustCompile(`\]\(([^)/:#?\s]+)\.html\)`)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML fragment into Markdown. Links between topic
// pages are retargeted to the sibling .md files.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return localLinkRegex.ReplaceAllString(markdown, "]($1.md)"), nil
}
