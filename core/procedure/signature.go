package procedure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/helpdoc/core"
)

// ErrSignature indicates a declaration line that cannot be read back.
var ErrSignature = errors.New("malformed signature")

// Signature is a declaration line read back into its parts.
type Signature struct {
	Name       string
	Function   bool
	Parameters []core.Parameter // Name and Type only
	Return     string
}

// Overload returns an overload with the signature's parameters and return
// type and no descriptions.
func (s Signature) Overload() core.Overload {
	o := core.Overload{Parameters: s.Parameters}
	if s.Function {
		o.Return = &core.Return{Type: s.Return}
	}
	return o
}

// ParseSignature parses a line produced by core.Overload.Signature.
func ParseSignature(line string) (Signature, error) {
	var sig Signature
	rest, ok := strings.CutPrefix(line, "function ")
	if ok {
		sig.Function = true
	} else if rest, ok = strings.CutPrefix(line, "sub "); !ok {
		return Signature{}, fmt.Errorf("%w: %q does not start with function or sub", ErrSignature, line)
	}

	open := strings.IndexByte(rest, '(')
	end := strings.LastIndexByte(rest, ')')
	if open <= 0 || end < open {
		return Signature{}, fmt.Errorf("%w: %q has no parameter list", ErrSignature, line)
	}
	sig.Name = rest[:open]

	if params := rest[open+1 : end]; params != "" {
		for _, param := range strings.Split(params, ", ") {
			name, typ, ok := strings.Cut(param, " as ")
			if !ok || name == "" || typ == "" {
				return Signature{}, fmt.Errorf("%w: parameter %q", ErrSignature, param)
			}
			sig.Parameters = append(sig.Parameters, core.Parameter{Name: name, Type: typ})
		}
	}

	tail := rest[end+1:]
	switch {
	case sig.Function:
		typ, ok := strings.CutPrefix(tail, " as ")
		if !ok || typ == "" {
			return Signature{}, fmt.Errorf("%w: function %s has no return type", ErrSignature, sig.Name)
		}
		sig.Return = typ
	case tail != "":
		return Signature{}, fmt.Errorf("%w: unexpected %q after sub %s", ErrSignature, tail, sig.Name)
	}
	return sig, nil
}
