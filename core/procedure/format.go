package procedure

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/xref"
)

const breadcrumb = "nav@{<TITLE_HOME>:<TOPIC_HOME>} <TRIANGLE_RIGHT> " +
	"{<TITLE_BASIC_REFERENCE>:<TOPIC_BASIC_REFERENCE>} <TRIANGLE_RIGHT> " +
	"{<TITLE_PROCEDURE_INDEX>:<TOPIC_PROCEDURE_INDEX>}@"

// genericType is the placeholder type of generic procedures. It has no
// topic of its own and is never linked.
const genericType = "T"

// Format renders a procedure as help markup.
func Format(p *core.Procedure) (string, error) {
	var b strings.Builder
	b.WriteString(breadcrumb + "\n\n")
	b.WriteString("h1[`" + p.Name + "` Procedure]\n\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}

	for i, o := range p.Overloads {
		if err := formatOverload(&b, p.Name, o); err != nil {
			return "", fmt.Errorf("formatting procedure %s: overload %d: %w", p.Name, i+1, err)
		}
	}
	return b.String(), nil
}

func formatOverload(b *strings.Builder, name string, o core.Overload) error {
	b.WriteString("h2[" + heading(name, o) + "]\n\n")
	if o.Description != "" {
		b.WriteString(o.Description + "\n\n")
	}

	if len(o.Parameters) > 0 {
		b.WriteString("h3[Parameters]\n\nul@")
		for _, p := range o.Parameters {
			b.WriteString("li@i[" + p.Name + "] as " + typeRef(p.Type))
			if p.Description != "" {
				b.WriteString(": " + p.Description)
			}
			b.WriteString("@")
		}
		b.WriteString("@\n\n")
	}

	if o.IsFunction() {
		b.WriteString("h3[Return value]\n\n")
		if o.Return.Description != "" {
			b.WriteString(o.Return.Description + "\n\n")
		}
	}

	for i, ex := range o.Examples {
		switch {
		case !ex.HasCode:
			return fmt.Errorf("example %d: %w: missing .example-code", i+1, ErrIncompleteExample)
		case !ex.HasOutput:
			return fmt.Errorf("example %d: %w: missing .example-output", i+1, ErrIncompleteExample)
		}
		b.WriteString("h3[Example]\n\n")
		if strings.TrimSpace(ex.Description) != "" {
			b.WriteString(ex.Description + "\n\n")
		}
		b.WriteString("bar[Code]\ncode@" + codeBody(ex.Code) + "@\n\n")
		b.WriteString("bar[Output]\ncode@" + codeBody(ex.Output) + "@\n\n")
	}

	b.WriteString("-----\n\n")
	return nil
}

// heading is the declaration line with its types linked.
func heading(name string, o core.Overload) string {
	linked := core.Overload{Return: o.Return}
	for _, p := range o.Parameters {
		linked.Parameters = append(linked.Parameters, core.Parameter{Name: p.Name, Type: typeRef(p.Type)})
	}
	if o.IsFunction() {
		linked.Return = &core.Return{Type: typeRef(o.Return.Type)}
	}
	return linked.Signature(name)
}

// codeBody keeps an empty block well formed.
func codeBody(s string) string {
	if s == "" {
		return "\n"
	}
	return s
}

func typeRef(typ string) string {
	if xref.TypeName(typ) == genericType {
		return typ
	}
	return "t[" + typ + "]"
}
