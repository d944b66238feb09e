package procedure

import (
	"fmt"
	"strings"
)

// field is one key=value pair of a directive payload.
type field struct {
	key   string
	value string
}

// parsePayload splits a directive payload into key=value pairs. Pairs are
// separated by spaces or commas; a value may be double-quoted, in which case
// \" and \\ are the only escapes.
func parsePayload(s string) ([]field, error) {
	var (
		fields []field
		i      int
	)
	skipSep := func() {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == ',') {
			i++
		}
	}

	for skipSep(); i < len(s); skipSep() {
		start := i
		for i < len(s) && s[i] != '=' && s[i] != ' ' && s[i] != ',' {
			i++
		}
		key := s[start:i]
		if key == "" || i == len(s) || s[i] != '=' {
			return nil, fmt.Errorf("expected key=value at %q", s[start:])
		}
		i++

		var value string
		if i < len(s) && s[i] == '"' {
			v, n, err := unquote(s[i:])
			if err != nil {
				return nil, err
			}
			value = v
			i += n
			if i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != ',' {
				return nil, fmt.Errorf("unexpected %q after quoted value of %s", s[i], key)
			}
		} else {
			from := i
			for i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != ',' {
				i++
			}
			value = s[from:i]
		}

		for _, f := range fields {
			if f.key == key {
				return nil, fmt.Errorf("key %s given twice", key)
			}
		}
		fields = append(fields, field{key: key, value: value})
	}
	return fields, nil
}

// unquote reads a double-quoted string at the start of s and returns its
// value and the number of bytes consumed.
func unquote(s string) (string, int, error) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '"':
			return b.String(), i + 1, nil
		case '\\':
			if i+1 == len(s) || (s[i+1] != '"' && s[i+1] != '\\') {
				return "", 0, fmt.Errorf("invalid escape in %s", s)
			}
			i++
			b.WriteByte(s[i])
		default:
			b.WriteByte(s[i])
		}
	}
	return "", 0, fmt.Errorf("unterminated quote in %s", s)
}

// bind assigns payload fields to the named targets. Keys not listed are
// rejected.
func bind(fields []field, targets map[string]*string) error {
	for _, f := range fields {
		dst, ok := targets[f.key]
		if !ok {
			return fmt.Errorf("unknown key %q", f.key)
		}
		*dst = f.value
	}
	return nil
}

func isKeyValue(payload string) bool {
	key, _, ok := strings.Cut(payload, "=")
	return ok && key != "" && !strings.ContainsAny(key, " \t:")
}

// procedurePayload accepts "name=Foo" or the shorthand "Foo".
func procedurePayload(payload string) (string, error) {
	var name string
	if isKeyValue(payload) {
		fields, err := parsePayload(payload)
		if err != nil {
			return "", err
		}
		if err := bind(fields, map[string]*string{"name": &name}); err != nil {
			return "", err
		}
	} else {
		name = payload
	}
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", fmt.Errorf("procedure name %q", name)
	}
	return name, nil
}

// parameterPayload accepts `name=x type="List of Integer"` or the shorthand
// "x: List of Integer".
func parameterPayload(payload string) (name, typ string, err error) {
	if isKeyValue(payload) {
		fields, err := parsePayload(payload)
		if err != nil {
			return "", "", err
		}
		if err := bind(fields, map[string]*string{"name": &name, "type": &typ}); err != nil {
			return "", "", err
		}
	} else {
		n, t, ok := strings.Cut(payload, ":")
		if !ok {
			return "", "", fmt.Errorf("expected name: type, got %q", payload)
		}
		name, typ = strings.TrimSpace(n), strings.TrimSpace(t)
	}
	if name == "" || typ == "" {
		return "", "", fmt.Errorf("parameter needs a name and a type, got %q", payload)
	}
	return name, typ, nil
}

// returnPayload accepts `type="List of Integer"` or the shorthand
// "List of Integer".
func returnPayload(payload string) (string, error) {
	var typ string
	if isKeyValue(payload) {
		fields, err := parsePayload(payload)
		if err != nil {
			return "", err
		}
		if err := bind(fields, map[string]*string{"type": &typ}); err != nil {
			return "", err
		}
	} else {
		typ = payload
	}
	if typ == "" {
		return "", fmt.Errorf("return needs a type")
	}
	return typ, nil
}
