// Package splice replaces diagram placeholders in the aggregate help file
// with the re-encoded diagram content.
package splice

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gaurav-prasanna/helpdoc/core/encode"
	"github.com/gaurav-prasanna/helpdoc/core/markup"
)

// Inline splices in-process.
type Inline struct{}

// NewInline creates an in-process splicer.
func NewInline() *Inline {
	return &Inline{}
}

// Replace returns help with every placeholder for name replaced by the
// diagram. Diagram lines after the first are indented by two spaces and
// literal braces are doubled for the viewer.
func (Inline) Replace(help []byte, name string, diagram []byte) []byte {
	diagram = bytes.ReplaceAll(diagram, []byte("\n"), []byte("\n  "))
	diagram = bytes.ReplaceAll(diagram, []byte("{"), []byte("{{"))
	return bytes.ReplaceAll(help, []byte(markup.DiagramPlaceholder(name)), diagram)
}

// Splice rewrites helpPath in place.
func (s Inline) Splice(ctx context.Context, name, diagramPath, helpPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	diagram, err := os.ReadFile(diagramPath)
	if err != nil {
		return fmt.Errorf("reading diagram %s: %w", diagramPath, err)
	}
	help, err := os.ReadFile(helpPath)
	if err != nil {
		return fmt.Errorf("reading help file: %w", err)
	}
	if err := os.WriteFile(helpPath, s.Replace(help, name, diagram), 0644); err != nil {
		return fmt.Errorf("writing help file: %w", err)
	}
	return nil
}

// Command splices by running an external helper invoked as
// "helper name diagramPath helpPath". The helper must produce the same
// output as Inline.Replace, including the doubled braces.
type Command struct {
	Path    string
	Timeout time.Duration
}

// NewCommand creates a splicer that runs the helper at path.
func NewCommand(path string, timeout time.Duration) *Command {
	return &Command{Path: path, Timeout: timeout}
}

// Splice runs the helper. Only exit status 0 is success.
func (c *Command) Splice(ctx context.Context, name, diagramPath, helpPath string) error {
	return encode.Run(ctx, c.Timeout, c.Path, name, diagramPath, helpPath)
}
