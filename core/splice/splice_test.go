package splice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/helpdoc/core/encode"
)

func TestReplace(t *testing.T) {
	help := []byte(".topic a\nBefore\ndia[box]\nBetween dia[box] and dia[boxes]\n")
	diagram := []byte("+{+\n|x|\n+-+")

	got := NewInline().Replace(help, "box", diagram)
	assert.Equal(t,
		".topic a\nBefore\n+{{+\n  |x|\n  +-+\nBetween +{{+\n  |x|\n  +-+ and dia[boxes]\n",
		string(got))
}

func TestReplaceNoPlaceholder(t *testing.T) {
	help := []byte("nothing here")
	assert.Equal(t, help, NewInline().Replace(help, "box", []byte("x")))
}

func TestInlineSplice(t *testing.T) {
	dir := t.TempDir()
	diagramPath := filepath.Join(dir, "box.cp437")
	helpPath := filepath.Join(dir, "help.txt")
	require.NoError(t, os.WriteFile(diagramPath, []byte{0xDA, 0xBF, '\n', 0xC0, 0xD9}, 0o644))
	require.NoError(t, os.WriteFile(helpPath, []byte("dia[box]\n"), 0o644))

	require.NoError(t, NewInline().Splice(context.Background(), "box", diagramPath, helpPath))

	got, err := os.ReadFile(helpPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDA, 0xBF, '\n', ' ', ' ', 0xC0, 0xD9, '\n'}, got)

	err = NewInline().Splice(context.Background(), "box", filepath.Join(dir, "missing"), helpPath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCommandSplice(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()

	ok := filepath.Join(dir, "ok.sh")
	require.NoError(t, os.WriteFile(ok, []byte("#!/bin/sh\n[ \"$1\" = box ] || exit 9\necho \"$2\" > \"$3\"\n"), 0o755))
	helpPath := filepath.Join(dir, "help.txt")

	require.NoError(t, NewCommand(ok, time.Minute).Splice(context.Background(), "box", "diagram.txt", helpPath))
	got, err := os.ReadFile(helpPath)
	require.NoError(t, err)
	assert.Equal(t, "diagram.txt\n", string(got))

	err = NewCommand(ok, time.Minute).Splice(context.Background(), "other", "diagram.txt", helpPath)
	var terr *encode.ExternalToolError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 9, terr.ExitCode)
}
