package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTopic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "html")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.WriteTopic("procedure_Foo", []byte("<p>x</p>"), ".html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "procedure_Foo.html"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", string(got))

	for _, bad := range []string{"", "..", "a/b", `a\b`} {
		_, err := w.WriteTopic(bad, nil, ".html")
		assert.Error(t, err, bad)
	}
}

func TestCopy(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "img", "icons"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "img", "icons", "a.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "font.woff"), []byte("woff"), 0o644))
	style := filepath.Join(t.TempDir(), "style.css")
	require.NoError(t, os.WriteFile(style, []byte("body{}"), 0o644))

	w, err := New(t.TempDir())
	require.NoError(t, err)

	n, err := w.CopyDir(src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.FileExists(t, filepath.Join(w.OutputDir, "img", "icons", "a.png"))
	assert.FileExists(t, filepath.Join(w.OutputDir, "font.woff"))

	path, err := w.CopyFile(style)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(got))

	_, err = w.CopyDir(filepath.Join(src, "missing"))
	assert.Error(t, err)
}
