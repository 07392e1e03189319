package token

import "fmt"

// Kind identifies the type of a directive.
type Kind int

const (
	// KindPlainText is a bare text line. Depending on its position in the
	// flattened stream it either seeds the buffer or asserts against it.
	KindPlainText Kind = iota
	// KindKeystroke sends keystrokes to the editor ("> keys").
	KindKeystroke
	// KindCommand runs an editor command (":cmd").
	KindCommand
	// KindAssertion compares a line of expected text against the buffer.
	// The tokenizer never emits this kind directly; the expander
	// reclassifies plain text that follows input within a block.
	KindAssertion
	// KindMacroOpen opens a macro definition ("@macro (Name)").
	KindMacroOpen
	// KindMacroClose closes a macro definition ("@endmacro") and carries
	// the captured raw body lines.
	KindMacroClose
	// KindMacroInvoke invokes a macro ("@do (Name, args...)").
	KindMacroInvoke
	// KindClear resets buffer and output state ("@clear").
	KindClear
	// KindEnd closes the current verification block ("@end").
	KindEnd
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "text"
	case KindKeystroke:
		return "keystroke"
	case KindCommand:
		return "command"
	case KindAssertion:
		return "assertion"
	case KindMacroOpen:
		return "macro-open"
	case KindMacroClose:
		return "macro-close"
	case KindMacroInvoke:
		return "macro-invoke"
	case KindClear:
		return "clear"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Directive is one parsed unit of script behavior. Directives are
// immutable once tokenized.
type Directive struct {
	// Kind is the directive type.
	Kind Kind

	// Line is the 1-based line number within the tokenized unit
	// (script file or expanded macro body).
	Line int

	// Text holds the payload: line text for plain/keystroke/command/
	// assertion directives, the macro name for MacroOpen and MacroInvoke.
	Text string

	// Args holds the raw, unevaluated invocation argument text for
	// MacroInvoke (everything after the name inside the parentheses).
	Args string

	// Body holds the captured raw definition lines for MacroClose.
	Body []string
}

// String returns a short human-readable form for diagnostics.
func (d Directive) String() string {
	switch d.Kind {
	case KindMacroOpen, KindMacroInvoke:
		return fmt.Sprintf("%s(%s) @%d", d.Kind, d.Text, d.Line)
	case KindMacroClose:
		return fmt.Sprintf("%s[%d lines] @%d", d.Kind, len(d.Body), d.Line)
	case KindClear, KindEnd:
		return fmt.Sprintf("%s @%d", d.Kind, d.Line)
	default:
		return fmt.Sprintf("%s(%q) @%d", d.Kind, d.Text, d.Line)
	}
}
