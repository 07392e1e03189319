package token

import (
	"strings"
)

// Tokenize splits raw script lines into a directive stream.
//
// The unit of tokenization is either a whole script or one expanded macro
// body; line numbers in the result (and in errors) are 1-based within the
// unit. Macro open/close pairs must balance within the unit. Blank lines
// are insignificant and produce no directive.
func Tokenize(lines []string) ([]Directive, error) {
	directives := make([]Directive, 0, len(lines))

	var (
		depth    int
		openLine int
		body     []string
	)

	for i, line := range lines {
		num := i + 1
		trimmed := strings.TrimSpace(line)

		if depth > 0 {
			// Raw capture: body lines are stored verbatim and
			// interpreted only after substitution at invocation time.
			// Nested open/close pairs stay inside the captured body.
			switch {
			case trimmed == "@endmacro":
				depth--
				if depth == 0 {
					directives = append(directives, Directive{
						Kind: KindMacroClose,
						Line: num,
						Body: body,
					})
					body = nil
				} else {
					body = append(body, line)
				}
			case isDirectiveWord(trimmed, "macro"):
				depth++
				body = append(body, line)
			default:
				body = append(body, line)
			}
			continue
		}

		switch {
		case trimmed == "":
			// Blank lines separate blocks and carry no behavior.

		case strings.HasPrefix(trimmed, "@"):
			d, err := parseStructural(trimmed, num)
			if err != nil {
				return nil, err
			}
			if d.Kind == KindMacroOpen {
				depth = 1
				openLine = num
				body = nil
			}
			directives = append(directives, d)

		case strings.HasPrefix(trimmed, ">"):
			directives = append(directives, Directive{
				Kind: KindKeystroke,
				Line: num,
				Text: strings.TrimPrefix(strings.TrimPrefix(trimmed, ">"), " "),
			})

		case strings.HasPrefix(trimmed, ":"):
			directives = append(directives, Directive{
				Kind: KindCommand,
				Line: num,
				Text: strings.TrimPrefix(trimmed, ":"),
			})

		default:
			directives = append(directives, Directive{
				Kind: KindPlainText,
				Line: num,
				Text: line,
			})
		}
	}

	if depth > 0 {
		return nil, parseErrorf(len(lines), ErrUnterminatedDefinition,
			"definition opened at line %d", openLine)
	}

	return directives, nil
}

// parseStructural parses a line known to begin with "@".
func parseStructural(trimmed string, num int) (Directive, error) {
	switch {
	case trimmed == "@clear":
		return Directive{Kind: KindClear, Line: num}, nil

	case trimmed == "@end":
		return Directive{Kind: KindEnd, Line: num}, nil

	case trimmed == "@endmacro":
		return Directive{}, parseErrorf(num, ErrUnexpectedClose, "%s", trimmed)

	case isDirectiveWord(trimmed, "macro"):
		inner, err := parenBody(trimmed, "@macro", num)
		if err != nil {
			return Directive{}, err
		}
		name := strings.TrimSpace(inner)
		if name == "" {
			return Directive{}, parseErrorf(num, ErrMalformedDirective, "@macro requires a name")
		}
		return Directive{Kind: KindMacroOpen, Line: num, Text: name}, nil

	case isDirectiveWord(trimmed, "do"):
		inner, err := parenBody(trimmed, "@do", num)
		if err != nil {
			return Directive{}, err
		}
		name, args := splitInvocation(inner)
		if name == "" {
			return Directive{}, parseErrorf(num, ErrMalformedDirective, "@do requires a macro name")
		}
		return Directive{Kind: KindMacroInvoke, Line: num, Text: name, Args: args}, nil

	default:
		return Directive{}, parseErrorf(num, ErrMalformedDirective, "%s", trimmed)
	}
}

// isDirectiveWord reports whether trimmed begins with "@"+word followed by
// end of line, whitespace, or an opening parenthesis. This keeps "@macro"
// from matching a hypothetical "@macros".
func isDirectiveWord(trimmed, word string) bool {
	keyword := "@" + word
	if !strings.HasPrefix(trimmed, keyword) {
		return false
	}
	rest := trimmed[len(keyword):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '('
}

// parenBody extracts the text between the parentheses of a structural
// directive such as "@macro (Name)".
func parenBody(trimmed, keyword string, num int) (string, error) {
	rest := strings.TrimSpace(trimmed[len(keyword):])
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return "", parseErrorf(num, ErrMalformedDirective,
			"%s requires a parenthesized argument list", keyword)
	}
	return rest[1 : len(rest)-1], nil
}

// splitInvocation splits "Name, args..." at the first comma. The name may
// contain spaces; everything after the first comma is the raw argument
// text, left unevaluated until invocation time.
func splitInvocation(inner string) (name, args string) {
	if idx := strings.Index(inner, ","); idx >= 0 {
		return strings.TrimSpace(inner[:idx]), strings.TrimSpace(inner[idx+1:])
	}
	return strings.TrimSpace(inner), ""
}
