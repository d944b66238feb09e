package build

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/helpdoc/config"
	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/encode"
	"github.com/gaurav-prasanna/helpdoc/core/markup"
	"github.com/gaurav-prasanna/helpdoc/core/procedure"
	"github.com/gaurav-prasanna/helpdoc/core/render"
)

const addOne = `.procedure AddOne
.overload
.description
Adds one to a number.
.parameter x: Integer
The input.
.return Integer
The input plus one.
`

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.AssetDirs = nil
	cfg.Stylesheet = ""
	cfg.Jobs = 2
	cfg.TextOut = "out/txt"
	cfg.HTMLOut = "out/html"
	cfg.TempDir = "out/temp"
	cfg.Resolve(root)
	return cfg
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"topics/doc.txt":          "h1[Welcome]\n\nSee p[AddOne].\n\ndia[box]\n",
		"topics/types.txt":        "h1[Types]\n\nBack to {home:doc}.\n",
		"topics/.hidden":          "ignored",
		"procedures/addOne.txt":   addOne,
		"diagrams/box.txt":        "+-+\n|{|\n+-+\n",
		"html/style.css":          "body {}\n",
		"fonts/serif/regular.ttf": "font",
	})

	cfg := testConfig(root)
	cfg.Stylesheet = filepath.Join(root, "html/style.css")
	cfg.AssetDirs = []string{filepath.Join(root, "fonts/serif")}
	cfg.MarkdownOut = filepath.Join(root, "out/md")
	cfg.ManifestOut = filepath.Join(root, "out/manifest.json")
	cfg.PDFOut = filepath.Join(root, "out/manual.pdf")

	var stdout bytes.Buffer
	d, err := New(cfg, nil, &stdout)
	require.NoError(t, err)

	res, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Topics)
	assert.Equal(t, 1, res.Procedures)
	assert.Equal(t, 1, res.Diagrams)
	assert.Equal(t, 2, res.Assets)

	help, err := os.ReadFile(res.HelpPath)
	require.NoError(t, err)
	text := string(help)

	markers := []string{".topic doc\n", ".topic types\n", ".topic procedure_AddOne\n", ".topic procedureIndex\n"}
	last := -1
	for _, m := range markers {
		i := strings.Index(text, m)
		require.GreaterOrEqual(t, i, 0, "missing %q", m)
		assert.Greater(t, i, last, "%q out of order", m)
		last = i
	}
	assert.Contains(t, text, "Welcome\n\nSee {AddOne:procedure_AddOne}.\n\n+-+\n  |{{|\n  +-+\n")
	assert.NotContains(t, text, "dia[box]")
	assert.Contains(t, text, "\x07 {AddOne:procedure_AddOne}")

	for _, name := range []string{"doc.html", "types.html", "procedure_AddOne.html", "procedureIndex.html", "style.css", "serif/regular.ttf"} {
		assert.FileExists(t, filepath.Join(cfg.HTMLOut, name))
	}
	page, err := os.ReadFile(filepath.Join(cfg.HTMLOut, "doc.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<pre class="diagram">+-+`+"\n|{|\n+-+</pre>")

	assert.FileExists(t, filepath.Join(cfg.TempDir, "box.txt"))
	assert.FileExists(t, filepath.Join(cfg.MarkdownOut, "procedure_AddOne.md"))

	data, err := os.ReadFile(cfg.ManifestOut)
	require.NoError(t, err)
	var entries []render.ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, "doc", entries[0].ID)
	assert.Equal(t, []string{"box"}, entries[0].Diagrams)
	assert.Equal(t, "Procedure Index", entries[3].Title)

	pdf, err := os.ReadFile(cfg.PDFOut)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	assert.Contains(t, stdout.String(), "✓ Written: "+res.HelpPath+"\n")
	assert.Contains(t, stdout.String(), "✓ Written: "+cfg.PDFOut+"\n")
}

func TestRunDeterministic(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		files["topics/"+name+".txt"] = "h1[" + name + "]\n"
		files["procedures/"+name+".txt"] = ".procedure " + strings.ToUpper(name) + "\n.overload\n"
	}

	var outputs []string
	for i := 0; i < 3; i++ {
		root := t.TempDir()
		writeFiles(t, root, files)
		cfg := testConfig(root)
		cfg.Jobs = 4

		d, err := New(cfg, nil, nil)
		require.NoError(t, err)
		res, err := d.Run(context.Background())
		require.NoError(t, err)
		help, err := os.ReadFile(res.HelpPath)
		require.NoError(t, err)
		outputs = append(outputs, string(help))
	}
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
	assert.Less(t, strings.Index(outputs[0], ".topic f\n"), strings.Index(outputs[0], ".topic procedure_A\n"))
	assert.True(t, strings.HasSuffix(outputs[0], "{F:procedure_F}\n"))
}

func TestRunMarkupError(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"topics/doc.txt":   "h1[Welcome]\n\ncode@never closed\n",
		"procedures/.keep": "",
	})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	d, err := New(testConfig(root), logger, nil)
	require.NoError(t, err)

	_, err = d.Run(context.Background())
	require.ErrorIs(t, err, markup.ErrUnterminated)
	assert.ErrorContains(t, err, "rendering topic doc")
	assert.Contains(t, logs.String(), "markup error")
	assert.Contains(t, logs.String(), "topic=doc")
	assert.Contains(t, logs.String(), "snippet=")
}

func TestRunProcedureError(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"topics/doc.txt":      "h1[Welcome]\n",
		"procedures/bad.txt":  "stray line\n.procedure Bad\n",
		"procedures/good.txt": ".procedure Good\n",
	})

	var logs bytes.Buffer
	d, err := New(testConfig(root), slog.New(slog.NewTextHandler(&logs, nil)), nil)
	require.NoError(t, err)

	_, err = d.Run(context.Background())
	var perr *procedure.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Line)
	assert.ErrorIs(t, err, procedure.ErrUnexpectedLine)
	assert.Contains(t, logs.String(), "line=1")
}

func TestRunUnknownDiagram(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"topics/doc.txt":   "h1[Welcome]\n\ndia[nope]\n",
		"procedures/.keep": "",
	})

	d, err := New(testConfig(root), nil, nil)
	require.NoError(t, err)
	_, err = d.Run(context.Background())
	assert.ErrorIs(t, err, markup.ErrUnknownDiagram)
}

func TestRunSplicerFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"topics/doc.txt":   "h1[Welcome]\n\ndia[box]\n",
		"procedures/.keep": "",
		"diagrams/box.txt": "[]\n",
	})
	helper := filepath.Join(root, "insert.sh")
	require.NoError(t, os.WriteFile(helper, []byte("#!/bin/sh\nexit 2\n"), 0o755))

	cfg := testConfig(root)
	cfg.Splicer = helper
	d, err := New(cfg, nil, nil)
	require.NoError(t, err)

	_, err = d.Run(context.Background())
	var terr *encode.ExternalToolError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 2, terr.ExitCode)
	assert.ErrorContains(t, err, "splicing diagram box")
}

func TestRunCanceled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"topics/doc.txt":   "h1[Welcome]\n",
		"procedures/.keep": "",
	})
	d, err := New(testConfig(root), nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewErrors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"page.html": "<html>[BODY]</html>"})

	cfg := testConfig(root)
	cfg.Template = filepath.Join(root, "page.html")
	_, err := New(cfg, nil, nil)
	assert.ErrorContains(t, err, "[TITLE] and [BODY]")

	cfg.Template = filepath.Join(root, "missing.html")
	_, err = New(cfg, nil, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg = testConfig(root)
	cfg.Encoder = "recode"
	_, err = New(cfg, nil, nil)
	assert.ErrorContains(t, err, "unknown encoder")
}

func TestSession(t *testing.T) {
	s := NewSession(3)
	require.NoError(t, s.Set(2, core.Topic{ID: "c"}, []byte(".topic c\n")))
	require.NoError(t, s.Set(0, core.Topic{ID: "a"}, []byte(".topic a\n")))
	assert.Error(t, s.Set(3, core.Topic{ID: "x"}, nil))

	assert.Equal(t, ".topic a\n\n.topic c\n", string(s.Help()))
	assert.Equal(t, []core.Topic{{ID: "a"}, {ID: "c"}}, s.Topics())

	s.AddProcedure("b")
	s.AddProcedure("a")
	assert.Equal(t, []string{"a", "b"}, s.Procedures())
	assert.Contains(t, s.IndexTopic("procedureIndex").Body, "li@p[a]@")
}
