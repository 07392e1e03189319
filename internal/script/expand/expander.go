// Package expand interprets the tokenized directive stream, expanding
// macro invocations recursively.
//
// The expander is a small state machine. Scanning forwards ordinary
// directives to the execution context; a macro open/close pair defines
// the captured body in the registry; an invocation looks up the raw body
// current at that point in the flattened stream, evaluates the argument
// list into bindings, substitutes them into the body, re-tokenizes the
// result, and recurses over it with the same machinery. There is no
// special-casing for invocations found inside expanded bodies.
//
// Without a depth limit a self-referential macro never terminates; that
// is a property of the input, not something the expander detects.
// Configure a depth limit to turn runaway expansion into a
// RecursionLimitError instead.
package expand

import (
	"errors"

	"github.com/dshills/stormscript/internal/log"
	"github.com/dshills/stormscript/internal/script/execctx"
	"github.com/dshills/stormscript/internal/script/macro"
	"github.com/dshills/stormscript/internal/script/template"
	"github.com/dshills/stormscript/internal/script/token"
)

// Options configures an Expander.
type Options struct {
	// MaxDepth limits nested macro expansion. Zero means unlimited,
	// preserving the original divergence hazard for self-referential
	// macros.
	MaxDepth int

	// Logger receives expansion traces. Defaults to log.Null.
	Logger *log.Logger
}

// Expander drives one script run: it owns the invocation stack and the
// position state that decides whether bare text seeds output or asserts
// against the buffer. One expander serves exactly one run.
type Expander struct {
	registry *macro.Registry
	ctx      *execctx.Context
	logger   *log.Logger
	maxDepth int

	// stack is the chain of macro names currently being expanded,
	// outermost first.
	stack []string

	// inputSeen reports whether a keystroke or command has executed in
	// the current verification block. Bare text after input is an
	// assertion; before input it is plain output text.
	inputSeen bool
}

// New creates an expander over the given registry and execution context.
func New(registry *macro.Registry, ctx *execctx.Context, opts Options) *Expander {
	logger := opts.Logger
	if logger == nil {
		logger = log.Null
	}
	return &Expander{
		registry: registry,
		ctx:      ctx,
		logger:   logger.WithComponent("expand"),
		maxDepth: opts.MaxDepth,
	}
}

// Run tokenizes and interprets a complete script.
func (e *Expander) Run(lines []string) error {
	directives, err := token.Tokenize(lines)
	if err != nil {
		return err
	}
	return e.run(directives)
}

// run interprets one tokenized unit: the top-level script or one
// expanded macro body.
func (e *Expander) run(directives []token.Directive) error {
	pendingName := ""

	for _, d := range directives {
		switch d.Kind {
		case token.KindMacroOpen:
			pendingName = d.Text

		case token.KindMacroClose:
			// The definition becomes visible here, in flattened order:
			// invocations before this point see any previous definition,
			// invocations after it see this one.
			e.registry.Define(pendingName, d.Body)
			e.logger.Debug("defined macro %q (%d lines)", pendingName, len(d.Body))
			pendingName = ""

		case token.KindMacroInvoke:
			if err := e.invoke(d); err != nil {
				return err
			}

		case token.KindKeystroke, token.KindCommand:
			e.inputSeen = true
			if err := e.ctx.Apply(d); err != nil {
				return e.wrap(d.Line, err)
			}

		case token.KindPlainText:
			if e.inputSeen {
				d.Kind = token.KindAssertion
			}
			if err := e.ctx.Apply(d); err != nil {
				return e.wrap(d.Line, err)
			}

		case token.KindClear, token.KindEnd:
			e.inputSeen = false
			if err := e.ctx.Apply(d); err != nil {
				return e.wrap(d.Line, err)
			}

		default:
			if err := e.ctx.Apply(d); err != nil {
				return e.wrap(d.Line, err)
			}
		}
	}

	return nil
}

// invoke expands one macro invocation and interprets the result.
func (e *Expander) invoke(d token.Directive) error {
	name := d.Text

	if e.maxDepth > 0 && len(e.stack) >= e.maxDepth {
		return &Error{Line: d.Line, Macro: name, Stack: e.stackCopy(), Err: &RecursionLimitError{
			Limit: e.maxDepth,
			Stack: append(e.stackCopy(), name),
		}}
	}

	def, err := e.registry.Lookup(name)
	if err != nil {
		return &Error{Line: d.Line, Macro: name, Stack: e.stackCopy(), Err: err}
	}

	bindings, err := parseArgs(d.Args)
	if err != nil {
		return &Error{Line: d.Line, Macro: name, Stack: e.stackCopy(), Err: err}
	}

	expanded, err := template.Substitute(def.Body, bindings)
	if err != nil {
		var unbound *template.UnboundFieldError
		if errors.As(err, &unbound) && unbound.Macro == "" {
			unbound.Macro = name
		}
		return &Error{Line: d.Line, Macro: name, Stack: e.stackCopy(), Err: err}
	}

	directives, err := token.Tokenize(expanded)
	if err != nil {
		return &Error{Line: d.Line, Macro: name, Stack: e.stackCopy(), Err: err}
	}

	e.logger.Debug("expanding %q into %d directives", name, len(directives))

	e.stack = append(e.stack, name)
	err = e.run(directives)
	e.stack = e.stack[:len(e.stack)-1]
	if err != nil {
		// Nested failures already carry their own chain; only wrap
		// errors that surfaced without one.
		var ee *Error
		if !errors.As(err, &ee) {
			return &Error{Line: d.Line, Macro: name, Stack: e.stackCopy(), Err: err}
		}
		return err
	}
	return nil
}

// wrap attaches invocation context to a directive-execution failure that
// occurred inside a macro expansion. Top-level failures pass through.
func (e *Expander) wrap(line int, err error) error {
	if len(e.stack) == 0 {
		return err
	}
	stack := e.stackCopy()
	return &Error{
		Line:  line,
		Macro: stack[len(stack)-1],
		Stack: stack[:len(stack)-1],
		Err:   err,
	}
}

func (e *Expander) stackCopy() []string {
	stack := make([]string, len(e.stack))
	copy(stack, e.stack)
	return stack
}
