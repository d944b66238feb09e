package procedure

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate indicates a field that may appear once was given twice.
	ErrDuplicate = errors.New("duplicate")
	// ErrUnexpectedLine indicates a non-blank line outside any block.
	ErrUnexpectedLine = errors.New("unexpected line")
	// ErrOutOfContext indicates a directive whose parent entity is missing,
	// such as .parameter before any .overload.
	ErrOutOfContext = errors.New("directive out of context")
	// ErrPayload indicates a directive payload that cannot be parsed.
	ErrPayload = errors.New("invalid payload")
	// ErrMissingProcedure indicates a file without a .procedure directive.
	ErrMissingProcedure = errors.New("missing .procedure directive")
	// ErrIncompleteExample indicates an example without code or output.
	ErrIncompleteExample = errors.New("incomplete example")
)

// ParseError locates a failure inside a procedure definition file.
type ParseError struct {
	File   string
	Line   int
	Err    error
	Detail string
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
