// Package key parses keystroke specifications used by "> keys" lines.
//
// A specification is a run of literal runes interleaved with Vim-style
// <...> tokens for special keys, e.g. "iHello<CR>World<Esc>".
package key

import (
	"errors"
	"fmt"
	"strings"
)

// Spec parse errors.
var (
	ErrUnmatchedBracket = errors.New("key: unmatched '<' in keystroke specification")
	ErrUnknownKey       = errors.New("key: unknown special key")
)

// Special identifies a non-character key.
type Special int

const (
	// SpecialNone marks a literal rune stroke.
	SpecialNone Special = iota
	// SpecialEnter is the Enter/Return key.
	SpecialEnter
	// SpecialEscape is the Escape key.
	SpecialEscape
	// SpecialTab is the Tab key.
	SpecialTab
	// SpecialBackspace is the Backspace key.
	SpecialBackspace
	// SpecialDelete is the Delete key.
	SpecialDelete
	// SpecialUp, SpecialDown, SpecialLeft, SpecialRight are the arrows.
	SpecialUp
	SpecialDown
	SpecialLeft
	SpecialRight
	// SpecialHome and SpecialEnd move to line boundaries.
	SpecialHome
	SpecialEnd
)

// String returns the Vim-style name of the special key.
func (s Special) String() string {
	switch s {
	case SpecialEnter:
		return "CR"
	case SpecialEscape:
		return "Esc"
	case SpecialTab:
		return "Tab"
	case SpecialBackspace:
		return "BS"
	case SpecialDelete:
		return "Del"
	case SpecialUp:
		return "Up"
	case SpecialDown:
		return "Down"
	case SpecialLeft:
		return "Left"
	case SpecialRight:
		return "Right"
	case SpecialHome:
		return "Home"
	case SpecialEnd:
		return "End"
	default:
		return "None"
	}
}

// Stroke is one decoded keystroke: either a literal rune or a special
// key, never both.
type Stroke struct {
	Rune    rune
	Special Special
}

// IsRune reports whether the stroke is a literal character.
func (s Stroke) IsRune() bool {
	return s.Special == SpecialNone
}

// String returns a canonical representation that parses back to the
// same stroke.
func (s Stroke) String() string {
	if s.IsRune() {
		if s.Rune == '<' {
			return "<lt>"
		}
		return string(s.Rune)
	}
	return "<" + s.Special.String() + ">"
}

// specialNames maps lowercased <...> token names to special keys.
// Common Vim aliases are included.
var specialNames = map[string]Special{
	"cr":        SpecialEnter,
	"return":    SpecialEnter,
	"enter":     SpecialEnter,
	"esc":       SpecialEscape,
	"escape":    SpecialEscape,
	"tab":       SpecialTab,
	"bs":        SpecialBackspace,
	"backspace": SpecialBackspace,
	"del":       SpecialDelete,
	"delete":    SpecialDelete,
	"up":        SpecialUp,
	"down":      SpecialDown,
	"left":      SpecialLeft,
	"right":     SpecialRight,
	"home":      SpecialHome,
	"end":       SpecialEnd,
}

// Split decodes a keystroke specification into individual strokes.
//
// "<lt>" and "<gt>" produce literal '<' and '>'; "<Space>" produces a
// literal space. An unclosed "<" or an unrecognized token name is an
// error rather than a silent literal, since a typo in a special key
// would otherwise type garbage into the editor under test.
func Split(spec string) ([]Stroke, error) {
	strokes := make([]Stroke, 0, len(spec))

	runes := []rune(spec)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '<' {
			strokes = append(strokes, Stroke{Rune: runes[i]})
			continue
		}

		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == '>' {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
		}

		name := strings.ToLower(string(runes[i+1 : end]))
		switch name {
		case "lt":
			strokes = append(strokes, Stroke{Rune: '<'})
		case "gt":
			strokes = append(strokes, Stroke{Rune: '>'})
		case "space":
			strokes = append(strokes, Stroke{Rune: ' '})
		default:
			special, ok := specialNames[name]
			if !ok {
				return nil, fmt.Errorf("%w: <%s>", ErrUnknownKey, name)
			}
			strokes = append(strokes, Stroke{Special: special})
		}
		i = end
	}

	return strokes, nil
}

// Join renders strokes back into a specification string.
func Join(strokes []Stroke) string {
	var b strings.Builder
	for _, s := range strokes {
		b.WriteString(s.String())
	}
	return b.String()
}
