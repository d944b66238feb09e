// Package xref maps type and procedure references to canonical topic ids.
//
// Resolution is purely lexical. Nothing here checks that the target topic
// exists; dead references show up as broken links in the built output and
// are reported by the link checker, never at compile time.
package xref

import "strings"

// Kind selects the namespace a reference points into.
type Kind int

const (
	// Type references come from t[...] tags and parameter/return types.
	Type Kind = iota
	// Procedure references come from p[...] tags and the procedure index.
	Procedure
)

const (
	typePrefix      = "type_"
	procedurePrefix = "procedure_"
)

// String returns the tag letter used in markup for this kind.
func (k Kind) String() string {
	switch k {
	case Type:
		return "t"
	case Procedure:
		return "p"
	default:
		return "?"
	}
}

// Reference is an unresolved (kind, name) pair.
type Reference struct {
	Kind Kind
	Name string
}

// ID resolves the reference to its canonical topic id.
func (r Reference) ID() string {
	return Resolve(r.Kind, r.Name)
}

// Resolve returns the canonical topic id for a reference. Type specs resolve
// to their head word ("List of Integer" -> "type_List"); procedure names are
// used verbatim and case-sensitively.
func Resolve(kind Kind, raw string) string {
	switch kind {
	case Type:
		return typePrefix + TypeName(raw)
	default:
		return procedurePrefix + raw
	}
}

// TypeName returns the first whitespace-delimited token of a type spec.
func TypeName(spec string) string {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Href returns the relative HTML link for a topic id.
func Href(id string) string {
	return id + ".html"
}
