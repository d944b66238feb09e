// Package output handles file naming and writing for helpdoc outputs.
// Topic files are named <id><ext> inside one flat output directory.
package output

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteTopic writes one topic's output as <id><ext>.
func (w *Writer) WriteTopic(id string, data []byte, ext string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid topic id %q", id)
	}
	return w.WriteFile(id+ext, data)
}

// WriteFile writes data to name inside the output directory.
func (w *Writer) WriteFile(name string, data []byte) (string, error) {
	path := filepath.Join(w.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// CopyFile copies src into the output directory under its base name.
func (w *Writer) CopyFile(src string) (string, error) {
	dst := filepath.Join(w.OutputDir, filepath.Base(src))
	if err := copyFile(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// CopyDir copies the contents of srcDir into the output directory,
// keeping relative paths. It returns the number of files copied.
func (w *Writer) CopyDir(srcDir string) (int, error) {
	n := 0
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(w.OutputDir, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0755)
		}
		n++
		return copyFile(path, dst)
	})
	if err != nil {
		return n, fmt.Errorf("copying %s: %w", srcDir, err)
	}
	return n, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
