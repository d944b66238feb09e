// Package encode converts diagram files from UTF-8 to the help viewer's
// code page 437.
package encode

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CP437 converts files in-process with the x/text code page 437 table.
// Runes without a code page 437 byte are an error.
type CP437 struct{}

// NewCP437 creates an in-process encoder.
func NewCP437() *CP437 {
	return &CP437{}
}

// Bytes converts UTF-8 data to code page 437.
func (CP437) Bytes(data []byte) ([]byte, error) {
	enc := encoding.Encoder{
		Transformer: transform.Chain(encoding.UTF8Validator, charmap.CodePage437.NewEncoder()),
	}
	out, err := enc.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("encoding to code page 437: %w", err)
	}
	return out, nil
}

// Encode converts srcPath and writes the result to dstPath.
func (c CP437) Encode(ctx context.Context, srcPath, dstPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}
	out, err := c.Bytes(data)
	if err != nil {
		return fmt.Errorf("%s: %w", srcPath, err)
	}
	if err := os.WriteFile(dstPath, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dstPath, err)
	}
	return nil
}

// Placeholders substituted in Command arguments.
const (
	SrcArg = "{src}"
	DstArg = "{dst}"
)

// DefaultCommand is the iconv invocation used when none is configured.
var DefaultCommand = []string{"iconv", "-f", "utf8", "-t", "cp437", "-o", DstArg, SrcArg}

// Command converts files by running an external tool.
type Command struct {
	Args    []string
	Timeout time.Duration
}

// NewCommand creates an external encoder. args defaults to DefaultCommand.
func NewCommand(args []string, timeout time.Duration) *Command {
	if len(args) == 0 {
		args = DefaultCommand
	}
	return &Command{Args: args, Timeout: timeout}
}

// Encode runs the tool with {src} and {dst} replaced by the paths.
func (c *Command) Encode(ctx context.Context, srcPath, dstPath string) error {
	r := strings.NewReplacer(SrcArg, srcPath, DstArg, dstPath)
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = r.Replace(a)
	}
	return Run(ctx, c.Timeout, args[0], args[1:]...)
}
