package crawl

import (
	"net/url"
	"path"
	"strings"
)

// staticExtensions are link targets that are never topic pages.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".txt": true, ".md": true, ".json": true,
}

// IsExternal reports whether href leaves the help site.
func IsExternal(href string) bool {
	parsed, err := url.Parse(href)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" || parsed.Host != ""
}

// IsStaticAsset reports whether href points at a non-page file.
func IsStaticAsset(href string) bool {
	parsed, err := url.Parse(href)
	if err != nil {
		return false
	}
	return staticExtensions[strings.ToLower(path.Ext(parsed.Path))]
}

// TopicID returns the topic id a local page link points at. Fragments and
// queries are dropped. ok is false for in-page anchors, external links,
// assets and paths outside the flat page directory.
func TopicID(href string) (id string, ok bool) {
	if IsExternal(href) || IsStaticAsset(href) {
		return "", false
	}
	parsed, err := url.Parse(href)
	if err != nil || parsed.Path == "" {
		return "", false
	}
	p := strings.TrimPrefix(parsed.Path, "./")
	if strings.Contains(p, "/") || path.Ext(p) != ".html" {
		return "", false
	}
	id = strings.TrimSuffix(p, ".html")
	return id, id != ""
}
