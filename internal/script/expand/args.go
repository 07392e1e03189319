package expand

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/stormscript/internal/script/template"
)

// parseArgs evaluates raw invocation argument text into a bindings map.
//
// The grammar is deliberately small: quoted strings, numeric literals,
// bare words, and brace field-format expressions using the same syntax as
// template bodies. Values are evaluated eagerly, in order, against the
// bindings accumulated so far in the same argument list and nothing else.
// Positional arguments bind to the names "1", "2", ...; keyword arguments
// bind by name and override positional-derived names.
func parseArgs(raw string) (template.Bindings, error) {
	bindings := template.Bindings{}
	if strings.TrimSpace(raw) == "" {
		return bindings, nil
	}

	items, err := splitArgs(raw)
	if err != nil {
		return nil, err
	}

	positional := 0
	sawKeyword := false
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, ErrEmptyArgument
		}

		if key, valueText, ok := cutKeyword(item); ok {
			sawKeyword = true
			value, err := evalValue(valueText, bindings)
			if err != nil {
				return nil, fmt.Errorf("argument %s: %w", key, err)
			}
			bindings[key] = value
			continue
		}

		if sawKeyword {
			return nil, fmt.Errorf("%w: %q", ErrPositionalAfterKeyword, item)
		}
		value, err := evalValue(item, bindings)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", positional+1, err)
		}
		positional++
		bindings[strconv.Itoa(positional)] = value
	}

	return bindings, nil
}

// splitArgs splits raw argument text at top-level commas, honoring
// quoted strings and brace nesting.
func splitArgs(raw string) ([]string, error) {
	var (
		items []string
		start int
		depth int
		quote rune
	)

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if quote != 0 {
			switch r {
			case '\\':
				i++ // skip escaped rune
			case quote:
				quote = 0
			}
			continue
		}

		switch r {
		case '\'', '"':
			quote = r
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				items = append(items, string(runes[start:i]))
				start = i + 1
			}
		}
	}

	if quote != 0 {
		return nil, ErrUnterminatedString
	}
	items = append(items, string(runes[start:]))
	return items, nil
}

// cutKeyword splits "key=value" when the item is a keyword argument.
// The key must be an identifier or an all-digit name; anything else is
// a positional value, so "=" in quoted strings or field expressions is
// never misread as a keyword. All-digit keys let a keyword argument
// override a positional-derived binding ("1", "2", ...).
func cutKeyword(item string) (key, value string, ok bool) {
	idx := strings.IndexRune(item, '=')
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(item[:idx])
	if !isKeywordName(key) {
		return "", "", false
	}
	return key, strings.TrimSpace(item[idx+1:]), true
}

func isKeywordName(s string) bool {
	if s == "" {
		return false
	}
	if isDigits(s) {
		return true
	}
	for i, r := range s {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// evalValue evaluates one argument value against the bindings
// accumulated so far.
func evalValue(text string, bindings template.Bindings) (any, error) {
	if text == "" {
		return "", nil
	}

	// Quoted string literal.
	if text[0] == '\'' || text[0] == '"' {
		return unquote(text)
	}

	// Numeric literal.
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, nil
	}

	// Field-format expression, evaluated against the other arguments.
	if strings.ContainsAny(text, "{}") {
		return template.SubstituteLine(text, bindings)
	}

	// Bare word.
	return text, nil
}

// unquote decodes a quoted string literal with the escapes \\, \', \",
// \n, and \t.
func unquote(text string) (string, error) {
	runes := []rune(text)
	if len(runes) < 2 || runes[len(runes)-1] != runes[0] {
		return "", fmt.Errorf("%w: %s", ErrUnterminatedString, text)
	}

	var b strings.Builder
	inner := runes[1 : len(runes)-1]
	for i := 0; i < len(inner); i++ {
		if inner[i] != '\\' {
			b.WriteRune(inner[i])
			continue
		}
		i++
		if i >= len(inner) {
			return "", fmt.Errorf("%w: %s", ErrUnterminatedString, text)
		}
		switch inner[i] {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		default:
			b.WriteRune(inner[i])
		}
	}
	return b.String(), nil
}
