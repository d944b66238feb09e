package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/markup"
)

type diagrams map[string]string

func (d diagrams) Diagram(name string) (string, error) {
	text, ok := d[name]
	if !ok {
		return "", markup.ErrUnknownDiagram
	}
	return text, nil
}

func newEngine() *markup.Engine {
	return markup.New(markup.DefaultNames(), diagrams{"box": "+--+\n|<>|\n+--+"})
}

const welcome = "\nnav@{<TITLE_HOME>:<TOPIC_HOME>}@\n\nh1[Welcome & Hello]\n\nSee p[Foo] and i[x].\n\ndia[box]\n\n"

func TestPlainTextRenderer(t *testing.T) {
	r := NewPlainTextRenderer(newEngine())
	assert.Equal(t, ".txt", r.Extension())

	out, err := r.Render(core.Topic{ID: "doc", Body: welcome})
	require.NoError(t, err)
	assert.Equal(t,
		".topic doc\n{TMBASIC Documentation:doc}\n\nWelcome & Hello\n\nSee {Foo:procedure_Foo} and 'x'.\n\ndia[box]\n",
		string(out))

	_, err = r.Render(core.Topic{ID: "bad", Body: "t[unterminated"})
	assert.ErrorIs(t, err, markup.ErrUnterminated)
}

func TestHTMLRenderer(t *testing.T) {
	r := NewHTMLRenderer(newEngine())
	assert.Equal(t, ".html", r.Extension())

	out, err := r.Render(core.Topic{ID: "doc", Body: welcome})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, "Welcome & Hello - TMBASIC Documentation", doc.Find("title").Text())
	assert.Equal(t, "Welcome & Hello", doc.Find("main h1").Text())
	assert.Equal(t, 1, doc.Find("main nav a[href='doc.html']").Length())

	href, ok := doc.Find("main a:contains('Foo')").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "procedure_Foo.html", href)
	assert.Equal(t, "x", doc.Find("main i").Text())
	assert.Equal(t, "+--+\n|<>|\n+--+", doc.Find("main pre.diagram").Text())
	assert.Contains(t, string(out), "<title>Welcome &amp; Hello - TMBASIC Documentation</title>")
	assert.Contains(t, doc.Find("head style").Text(), "white-space: pre-line")
}

func TestHTMLRendererOptions(t *testing.T) {
	r := NewHTMLRenderer(newEngine(), WithTemplate("<t>[TITLE]</t>[BODY]"), WithTitleSuffix(""))

	out, err := r.Render(core.Topic{ID: "x", Body: "h1[`Foo` Procedure]\n\nText [BODY]"})
	require.NoError(t, err)
	assert.Equal(t, "<t>&#34;Foo&#34; Procedure</t><h1><code>Foo</code> Procedure</h1>Text [BODY]", string(out))
}

func TestHTMLRendererErrors(t *testing.T) {
	r := NewHTMLRenderer(newEngine())

	_, err := r.Render(core.Topic{ID: "x", Body: "no heading here"})
	assert.ErrorIs(t, err, markup.ErrNoTitle)

	_, err = r.Render(core.Topic{ID: "x", Body: "h1[T]\n\ndia[nope]"})
	assert.ErrorIs(t, err, markup.ErrUnknownDiagram)
}

func TestValidTemplate(t *testing.T) {
	assert.True(t, ValidTemplate(defaultTemplate))
	assert.True(t, ValidTemplate("[BODY][TITLE]"))
	assert.False(t, ValidTemplate("<html>[BODY]</html>"))
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer(newEngine())
	assert.Equal(t, ".md", r.Extension())

	out, err := r.Render(core.Topic{ID: "doc", Body: "h1[Welcome]\n\nSee p[Foo] or {the site:https://example.com/a.html}."})
	require.NoError(t, err)

	md := string(out)
	assert.Contains(t, md, "# Welcome")
	assert.Contains(t, md, "[Foo](procedure_Foo.md)")
	assert.Contains(t, md, "[the site](https://example.com/a.html)")
}

func TestJSONRenderer(t *testing.T) {
	r := NewJSONRenderer(newEngine())

	entry, err := r.Entry(core.Topic{ID: "doc", Body: welcome + "h2[More about t[List of Integer]]"})
	require.NoError(t, err)

	assert.Equal(t, "doc", entry.ID)
	assert.Equal(t, "Welcome & Hello", entry.Title)
	assert.Equal(t, "doc.html", entry.Page)
	assert.Equal(t, []Heading{{Level: 1, Text: "Welcome & Hello"}, {Level: 2, Text: "More about List of Integer"}}, entry.Headings)
	assert.Equal(t, []Link{
		{Text: "TMBASIC Documentation", Target: "doc"},
		{Text: "Foo", Target: "procedure_Foo"},
		{Text: "List of Integer", Target: "type_List"},
	}, entry.Links)
	assert.Equal(t, []string{"box"}, entry.Diagrams)

	data, err := r.Manifest([]ManifestEntry{entry})
	require.NoError(t, err)
	var decoded []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []ManifestEntry{entry}, decoded)
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer(newEngine(), "TMBASIC Manual")
	assert.Equal(t, ".pdf", r.Extension())

	out, err := r.Manual([]core.Topic{
		{ID: "doc", Body: welcome},
		{ID: "list", Body: "h1[Lists]\n\nul@li@one@li@two@@\n\ncode@x = 1@\n\n-----\n"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"))

	_, err = r.Render(core.Topic{ID: "x", Body: "h1[T]\n\ndia[nope]"})
	assert.ErrorIs(t, err, markup.ErrUnknownDiagram)

	_, err = r.Render(core.Topic{ID: "x", Body: "untitled"})
	assert.ErrorIs(t, err, markup.ErrNoTitle)
}
