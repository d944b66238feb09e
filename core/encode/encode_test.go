package encode

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
)

func TestCP437Bytes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []byte
	}{
		{"ascii", "abc {x}\n", []byte("abc {x}\n")},
		{"box drawing", "┌─┐\n└─┘", []byte{0xDA, 0xC4, 0xBF, '\n', 0xC0, 0xC4, 0xD9}},
		{"latin", "é", []byte{0x82}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := CP437{}.Bytes([]byte(c.in))
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCP437Unmappable(t *testing.T) {
	_, err := CP437{}.Bytes([]byte("snow ☃"))
	assert.Error(t, err)

	_, err = CP437{}.Bytes([]byte{0xff, 0xfe})
	assert.Error(t, err)
}

func TestCP437Encode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "box.txt")
	dst := filepath.Join(dir, "box.cp437")
	require.NoError(t, os.WriteFile(src, []byte("─"), 0o644))

	require.NoError(t, NewCP437().Encode(context.Background(), src, dst))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC4}, got)

	err = NewCP437().Encode(context.Background(), filepath.Join(dir, "missing.txt"), dst)
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewCP437().Encode(ctx, src, dst), context.Canceled)
}

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestCommandEncode(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	dst := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(src, []byte("copy me"), 0o644))

	c := NewCommand([]string{"cp", SrcArg, DstArg}, time.Minute)
	require.NoError(t, c.Encode(context.Background(), src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "copy me", string(got))

	assert.Equal(t, DefaultCommand, NewCommand(nil, 0).Args)
}

func TestRun(t *testing.T) {
	skipWithoutShell(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, time.Minute, "sh", "-c", "exit 0"))

	err := Run(ctx, time.Minute, "sh", "-c", "echo broken >&2; exit 3")
	var terr *ExternalToolError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 3, terr.ExitCode)
	assert.Equal(t, "sh", terr.Tool)
	assert.Contains(t, err.Error(), "exit status 3: broken")

	err = Run(ctx, 50*time.Millisecond, "sleep", "5")
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, -1, terr.ExitCode)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = Run(ctx, 0, filepath.Join(t.TempDir(), "no-such-tool"))
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, -1, terr.ExitCode)
}
