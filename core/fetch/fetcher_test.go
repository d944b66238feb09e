package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.html"), []byte("<p>hi</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "images.html"), 0o755))

	f := New(dir)
	res, err := f.Fetch(context.Background(), "doc")
	require.NoError(t, err)
	assert.Equal(t, "doc", res.ID)
	assert.Equal(t, filepath.Join(dir, "doc.html"), res.Path)
	assert.Equal(t, "<p>hi</p>", res.HTML)

	_, err = f.Fetch(context.Background(), "missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = f.Fetch(context.Background(), "../doc")
	assert.ErrorIs(t, err, os.ErrNotExist)

	pages, err := f.Pages()
	require.NoError(t, err)
	assert.Equal(t, []string{"doc"}, pages)
}
