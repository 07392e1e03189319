// Package execctx owns the per-run execution state: the accumulated
// output lines, the assertion log, and the boundary to the editor driver
// collaborator. It holds no global state; each script run constructs one
// context whose lifecycle is exactly the run's duration.
package execctx

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dshills/stormscript/internal/script/token"
)

// AssertionResult records one buffer comparison.
type AssertionResult struct {
	// Line is the script line the assertion came from.
	Line int
	// Expected is the asserted text.
	Expected string
	// Actual is the buffer line that was compared.
	Actual string
	// Passed reports whether the comparison matched.
	Passed bool
	// Diff holds a unified diff for failed comparisons.
	Diff string
}

// Context is the execution state for one script run. It is mutated in
// place by directive execution and must not be shared across runs.
type Context struct {
	driver Driver

	output  []string
	results []AssertionResult

	// cursor is the buffer line index the next assertion in the current
	// verification block compares against.
	cursor int
}

// New creates an execution context bound to the given driver.
func New(driver Driver) *Context {
	return &Context{driver: driver}
}

// Apply executes one non-structural directive. Macro open/close/invoke
// directives are consumed by the expander and must not reach here.
func (c *Context) Apply(d token.Directive) error {
	switch d.Kind {
	case token.KindPlainText:
		c.output = append(c.output, d.Text)
		return nil

	case token.KindKeystroke:
		if err := c.driver.SendKeys(d.Text); err != nil {
			return &DriverError{Op: "keys", Line: d.Line, Err: err}
		}
		return nil

	case token.KindCommand:
		if err := c.driver.RunCommand(d.Text); err != nil {
			return &DriverError{Op: "command", Line: d.Line, Err: err}
		}
		return nil

	case token.KindAssertion:
		return c.assert(d)

	case token.KindClear:
		c.output = nil
		c.cursor = 0
		if err := c.driver.Clear(); err != nil {
			return &DriverError{Op: "clear", Line: d.Line, Err: err}
		}
		return nil

	case token.KindEnd:
		return c.endBlock(d)

	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedDirective, d)
	}
}

// assert compares the expected text against the next buffer line in the
// current verification block. Mismatches are recorded, not fatal.
func (c *Context) assert(d token.Directive) error {
	lines, err := c.driver.BufferLines()
	if err != nil {
		return &DriverError{Op: "buffer", Line: d.Line, Err: err}
	}

	actual := ""
	if c.cursor < len(lines) {
		actual = lines[c.cursor]
	}
	c.cursor++

	result := AssertionResult{
		Line:     d.Line,
		Expected: d.Text,
		Actual:   actual,
		Passed:   actual == d.Text,
	}
	if !result.Passed {
		result.Diff = unifiedDiff(d.Text, actual)
	}
	c.results = append(c.results, result)
	return nil
}

// endBlock completes the current verification block. If the block made
// assertions, any buffer lines beyond the last one checked are recorded
// as a trailing-content failure.
func (c *Context) endBlock(d token.Directive) error {
	if c.cursor > 0 {
		lines, err := c.driver.BufferLines()
		if err != nil {
			return &DriverError{Op: "buffer", Line: d.Line, Err: err}
		}
		// Trailing blank lines are editor artifacts (a final Enter), not
		// unchecked content.
		for len(lines) > c.cursor && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, extra := range lines[min(c.cursor, len(lines)):] {
			c.results = append(c.results, AssertionResult{
				Line:     d.Line,
				Expected: "",
				Actual:   extra,
				Passed:   false,
				Diff:     unifiedDiff("", extra),
			})
		}
	}
	c.cursor = 0
	c.output = nil
	return nil
}

// Output returns the accumulated plain-text output lines of the current
// block.
func (c *Context) Output() []string {
	return c.output
}

// Results returns all assertion results recorded so far, in execution
// order.
func (c *Context) Results() []AssertionResult {
	return c.results
}

// FailureCount returns the number of failed assertions.
func (c *Context) FailureCount() int {
	failed := 0
	for _, r := range c.results {
		if !r.Passed {
			failed++
		}
	}
	return failed
}

// unifiedDiff renders a unified diff between expected and actual text.
func unifiedDiff(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  1,
	})
	if err != nil {
		return fmt.Sprintf("- %s\n+ %s\n", expected, actual)
	}
	return diff
}
