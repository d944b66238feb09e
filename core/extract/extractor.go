// Package extract reads the title and outgoing links of a built page.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is what the link checker needs from one HTML page.
type Page struct {
	Title string
	Links []string // href values in document order, duplicates removed
}

// HTMLExtractor parses pages with goquery.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses a page. Links are read from the content container: the
// first of <main>, <article> or <body> that exists.
func (e *HTMLExtractor) Extract(html string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Page{}, fmt.Errorf("parsing HTML: %w", err)
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return Page{}, fmt.Errorf("no content container found in HTML")
	}

	page := Page{Title: strings.TrimSpace(doc.Find("title").First().Text())}
	seen := make(map[string]bool)
	content.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || seen[href] {
			return
		}
		seen[href] = true
		page.Links = append(page.Links, href)
	})
	return page, nil
}
