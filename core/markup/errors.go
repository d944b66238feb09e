package markup

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminated indicates a tag whose closing delimiter never appears.
	ErrUnterminated = errors.New("unterminated")
	// ErrNested indicates a tag opened where the grammar does not allow one.
	ErrNested = errors.New("nested tag not allowed")
	// ErrEmptyTag indicates a tag with no content.
	ErrEmptyTag = errors.New("empty tag")
	// ErrNoTitle indicates a page without a level-1 heading.
	ErrNoTitle = errors.New("no title found")
	// ErrUnknownDiagram indicates a dia[...] reference that cannot be resolved.
	ErrUnknownDiagram = errors.New("unknown diagram")
)

const snippetLen = 40

// Error is a markup failure with the offending position and a snippet of the
// surrounding source for diagnosis.
type Error struct {
	Tag     string
	Pos     int
	Snippet string
	Err     error
}

func (e *Error) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("markup: %v %s at offset %d near %q", e.Err, e.Tag, e.Pos, e.Snippet)
	}
	return fmt.Sprintf("markup: %v at offset %d near %q", e.Err, e.Pos, e.Snippet)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(src string, pos int, tag string, err error) *Error {
	return &Error{Tag: tag, Pos: pos, Snippet: snippet(src, pos), Err: err}
}

func snippet(src string, pos int) string {
	if pos > len(src) {
		pos = len(src)
	}
	end := pos + snippetLen
	if end > len(src) {
		end = len(src)
	}
	return src[pos:end]
}
