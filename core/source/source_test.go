package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/helpdoc/core"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "b.txt"), "")
	write(t, filepath.Join(dir, "a.txt"), "")
	write(t, filepath.Join(dir, ".hidden.txt"), "")
	write(t, filepath.Join(dir, "sub", "c.txt"), "")

	paths, err := ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}, paths)

	_, err = ListFiles(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadTopic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basicReference.txt")
	write(t, path, "h1[Ref]")

	topic, err := ReadTopic(path)
	require.NoError(t, err)
	assert.Equal(t, core.Topic{ID: "basicReference", Body: "h1[Ref]"}, topic)
}

func TestDiagrams(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "box.txt"), "┌┐\n└┘\n\n")
	write(t, filepath.Join(dir, "notes.md"), "ignored")

	d := NewDiagrams(dir)
	text, err := d.Diagram("box")
	require.NoError(t, err)
	assert.Equal(t, "┌┐\n└┘", text)

	// Served from the cache once read.
	require.NoError(t, os.Remove(filepath.Join(dir, "box.txt")))
	text, err = d.Diagram("box")
	require.NoError(t, err)
	assert.Equal(t, "┌┐\n└┘", text)

	_, err = d.Diagram("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = d.Diagram("../box")
	assert.Error(t, err)

	write(t, filepath.Join(dir, "arrow.txt"), "->")
	list, err := d.List()
	require.NoError(t, err)
	assert.Equal(t, []core.Diagram{{Name: "arrow", Text: "->"}}, list)

	list, err = NewDiagrams(filepath.Join(dir, "none")).List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDiagramsConcurrent(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "box.txt"), "[]")
	d := NewDiagrams(dir)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := d.Diagram("box")
			assert.NoError(t, err)
			assert.Equal(t, "[]", text)
		}()
	}
	wg.Wait()
}
