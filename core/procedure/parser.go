// Package procedure reads procedure definition files and formats them as
// help markup.
//
// A definition file is a sequence of directive lines, which start with a dot,
// each optionally followed by a block of free text:
//
//	.procedure hasValue
//	.overload
//	.description
//	Returns true if the optional has a value.
//	.parameter input: Optional T
//	The optional to inspect.
//	.return Boolean
//	True if a value is present.
//	.example
//	.example-code
//	print hasValue(none)
//	.example-output
//	false
package procedure

import (
	"fmt"
	"os"
	"strings"

	"github.com/gaurav-prasanna/helpdoc/core"
)

type state int

const (
	stateStart state = iota
	stateProcedure
	stateOverload
	stateExample
)

const (
	verbProcedure     = ".procedure"
	verbOverload      = ".overload"
	verbDescription   = ".description"
	verbParameter     = ".parameter"
	verbReturn        = ".return"
	verbExample       = ".example"
	verbExampleCode   = ".example-code"
	verbExampleOutput = ".example-output"
)

// ParseFile reads and parses one definition file.
func ParseFile(path string) (*core.Procedure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading procedure file: %w", err)
	}
	return Parse(path, string(data))
}

// Parse parses a definition. file is only used in error messages.
func Parse(file, src string) (*core.Procedure, error) {
	p := &parser{file: file, lines: splitLines(src)}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.proc, nil
}

type parser struct {
	file  string
	lines []string
	i     int // index of the current line

	state   state
	proc    *core.Procedure
	hasDesc bool // procedure-level description seen
}

func (p *parser) fail(err error, detail string) error {
	return &ParseError{File: p.file, Line: p.i + 1, Err: err, Detail: detail}
}

func (p *parser) run() error {
	for ; p.i < len(p.lines); p.i++ {
		line := p.lines[p.i]
		if !isDirective(line) {
			if strings.TrimSpace(line) != "" {
				return p.fail(ErrUnexpectedLine, line)
			}
			continue
		}
		verb, payload := splitDirective(line)
		if err := p.directive(verb, payload); err != nil {
			return err
		}
	}
	if p.proc == nil {
		return &ParseError{File: p.file, Err: ErrMissingProcedure}
	}
	return nil
}

func (p *parser) directive(verb, payload string) error {
	switch verb {
	case verbProcedure:
		if p.proc != nil {
			return p.fail(ErrDuplicate, "second .procedure")
		}
		name, err := procedurePayload(payload)
		if err != nil {
			return p.fail(ErrPayload, err.Error())
		}
		p.proc = &core.Procedure{Name: name}
		p.state = stateProcedure

	case verbOverload:
		if p.state == stateStart {
			return p.fail(ErrOutOfContext, ".overload before .procedure")
		}
		p.proc.Overloads = append(p.proc.Overloads, core.Overload{})
		p.state = stateOverload

	case verbDescription:
		switch p.state {
		case stateStart:
			return p.fail(ErrOutOfContext, ".description before .procedure")
		case stateProcedure:
			if p.hasDesc {
				return p.fail(ErrDuplicate, "description in procedure "+p.proc.Name)
			}
			p.hasDesc = true
			p.proc.Description = p.block()
		default:
			o := p.overload()
			if o.HasDescription {
				return p.fail(ErrDuplicate, "description in overload of "+p.proc.Name)
			}
			o.HasDescription = true
			o.Description = p.block()
		}

	case verbParameter:
		if p.state < stateOverload {
			return p.fail(ErrOutOfContext, ".parameter before .overload")
		}
		name, typ, err := parameterPayload(payload)
		if err != nil {
			return p.fail(ErrPayload, err.Error())
		}
		o := p.overload()
		o.Parameters = append(o.Parameters, core.Parameter{Name: name, Type: typ, Description: p.block()})

	case verbReturn:
		if p.state < stateOverload {
			return p.fail(ErrOutOfContext, ".return before .overload")
		}
		typ, err := returnPayload(payload)
		if err != nil {
			return p.fail(ErrPayload, err.Error())
		}
		o := p.overload()
		if o.Return != nil {
			return p.fail(ErrDuplicate, "return in overload of "+p.proc.Name)
		}
		o.Return = &core.Return{Type: typ, Description: p.block()}

	case verbExample:
		if p.state < stateOverload {
			return p.fail(ErrOutOfContext, ".example before .overload")
		}
		o := p.overload()
		o.Examples = append(o.Examples, core.Example{Description: p.block()})
		p.state = stateExample

	case verbExampleCode, verbExampleOutput:
		if p.state != stateExample {
			return p.fail(ErrOutOfContext, verb+" before .example")
		}
		o := p.overload()
		ex := &o.Examples[len(o.Examples)-1]
		if verb == verbExampleCode {
			if ex.HasCode {
				return p.fail(ErrDuplicate, "example-code in procedure "+p.proc.Name)
			}
			ex.HasCode = true
			ex.Code = p.block()
		} else {
			if ex.HasOutput {
				return p.fail(ErrDuplicate, "example-output in procedure "+p.proc.Name)
			}
			ex.HasOutput = true
			ex.Output = p.block()
		}

	default:
		// Unknown directives are a no-op. Lines after them are still
		// checked like any other line.
	}
	return nil
}

// splitDirective separates the verb from its payload at the first space
// or tab.
func splitDirective(line string) (verb, payload string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

func (p *parser) overload() *core.Overload {
	return &p.proc.Overloads[len(p.proc.Overloads)-1]
}

// block consumes the lines following the current directive up to the next
// directive and returns them without leading or trailing blank lines.
func (p *parser) block() string {
	start := p.i + 1
	end := start
	for end < len(p.lines) && !isDirective(p.lines[end]) {
		end++
	}
	p.i = end - 1

	lines := p.lines[start:end]
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func isDirective(line string) bool {
	return strings.HasPrefix(line, ".")
}

func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil
	}
	return strings.Split(src, "\n")
}
