// Package template expands brace-delimited field placeholders in macro
// body text.
//
// A field is written {name} and replaced with the bound value. Doubled
// braces ({{ and }}) always collapse to a single literal brace, whether
// or not any binding is consulted. A field may carry a repeat-fill format
// specifier, {name:count}, which repeats the value count times; the count
// is either an integer literal or a {field} reference to a numeric
// binding, so {fill:{count}} with fill=" " and count=4 yields "    ".
//
// Substitution is a single pass: values containing further placeholders
// are emitted as-is. Re-substitution happens only because the expander
// re-invokes this package on newly produced text.
package template

import (
	"fmt"
	"strconv"
	"strings"
)

// Bindings maps field names to values for one expansion.
type Bindings map[string]any

// Substitute expands field placeholders in each line, returning the
// expanded lines. The input is never modified.
func Substitute(lines []string, bindings Bindings) ([]string, error) {
	out := make([]string, len(lines))
	for i, line := range lines {
		expanded, err := SubstituteLine(line, bindings)
		if err != nil {
			return nil, &SubstituteError{Line: i + 1, Err: err}
		}
		out[i] = expanded
	}
	return out, nil
}

// SubstituteLine expands field placeholders in a single line.
func SubstituteLine(line string, bindings Bindings) (string, error) {
	var b strings.Builder
	b.Grow(len(line))

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				b.WriteRune('{')
				i++
				continue
			}
			end, err := matchField(runes, i)
			if err != nil {
				return "", err
			}
			value, err := expandField(string(runes[i+1:end]), bindings)
			if err != nil {
				return "", err
			}
			b.WriteString(value)
			i = end

		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				b.WriteRune('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w at column %d", ErrStrayBrace, i+1)

		default:
			b.WriteRune(runes[i])
		}
	}

	return b.String(), nil
}

// matchField finds the closing brace for the field opened at open,
// tracking nesting so format specifiers may themselves be fields.
func matchField(runes []rune, open int) (int, error) {
	depth := 0
	for i := open; i < len(runes); i++ {
		switch runes[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w at column %d", ErrUnterminatedField, open+1)
}

// expandField evaluates the interior of one field placeholder: a field
// name optionally followed by ":" and a repeat-count specifier.
func expandField(field string, bindings Bindings) (string, error) {
	name, spec, hasSpec := cutSpec(field)

	value, ok := bindings[name]
	if !ok {
		return "", &UnboundFieldError{Field: name}
	}
	text := valueString(value)

	if !hasSpec {
		return text, nil
	}

	count, err := resolveCount(spec, bindings)
	if err != nil {
		return "", err
	}
	return strings.Repeat(text, count), nil
}

// cutSpec splits a field interior at the first top-level colon.
func cutSpec(field string) (name, spec string, hasSpec bool) {
	depth := 0
	for i, r := range field {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ':':
			if depth == 0 {
				return field[:i], field[i+1:], true
			}
		}
	}
	return field, "", false
}

// resolveCount evaluates a repeat-count specifier: a non-negative integer
// literal or a {field} reference to a numeric binding.
func resolveCount(spec string, bindings Bindings) (int, error) {
	if strings.HasPrefix(spec, "{") && strings.HasSuffix(spec, "}") {
		name := spec[1 : len(spec)-1]
		value, ok := bindings[name]
		if !ok {
			return 0, &UnboundFieldError{Field: name}
		}
		n, err := valueInt(value)
		if err != nil {
			return 0, fmt.Errorf("%w: count field %q: %v", ErrBadFormatSpec, name, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("%w: negative count %d from field %q", ErrBadFormatSpec, n, name)
		}
		return n, nil
	}

	n, err := strconv.Atoi(spec)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadFormatSpec, spec)
	}
	return n, nil
}

// valueString formats a binding value for output.
func valueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// valueInt coerces a binding value to an integer count.
func valueInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(t))
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
}
