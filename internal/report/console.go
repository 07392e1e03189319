package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"
)

// Console prints a human-readable summary of a JSON report document.
type Console struct {
	out   io.Writer
	pass  *color.Color
	fail  *color.Color
	fatal *color.Color
	dim   *color.Color
}

// NewConsole creates a console printer. When useColor is false all
// output is plain.
func NewConsole(out io.Writer, useColor bool) *Console {
	c := &Console{
		out:   out,
		pass:  color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
		fatal: color.New(color.FgRed, color.Bold),
		dim:   color.New(color.Faint),
	}
	if !useColor {
		for _, cl := range []*color.Color{c.pass, c.fail, c.fatal, c.dim} {
			cl.DisableColor()
		}
	}
	return c
}

// Print renders the report document.
func (c *Console) Print(doc string) {
	for _, run := range gjson.Get(doc, "runs").Array() {
		c.printRun(run)
	}

	totals := gjson.Get(doc, "totals")
	fmt.Fprintf(c.out, "\n%d run(s): ", totals.Get("runs").Int())
	c.pass.Fprintf(c.out, "%d passed", totals.Get("passed").Int())
	if n := totals.Get("failed").Int(); n > 0 {
		fmt.Fprint(c.out, ", ")
		c.fail.Fprintf(c.out, "%d failed", n)
	}
	if n := totals.Get("fatals").Int(); n > 0 {
		fmt.Fprint(c.out, ", ")
		c.fatal.Fprintf(c.out, "%d fatal", n)
	}
	fmt.Fprintln(c.out)
}

// printRun renders one run's line plus detail for failures.
func (c *Console) printRun(run gjson.Result) {
	script := run.Get("script").String()
	failed := run.Get("failed").Int()
	fatal := run.Get("fatal")

	switch {
	case fatal.Exists():
		c.fatal.Fprint(c.out, "FATAL ")
		fmt.Fprintf(c.out, "%s: %s\n", script, fatal.String())
	case failed > 0:
		c.fail.Fprint(c.out, "FAIL  ")
		fmt.Fprintf(c.out, "%s (%d passed, %d failed)\n",
			script, run.Get("passed").Int(), failed)
	default:
		c.pass.Fprint(c.out, "PASS  ")
		fmt.Fprintf(c.out, "%s (%d passed)\n", script, run.Get("passed").Int())
	}

	for _, a := range run.Get("assertions").Array() {
		if a.Get("passed").Bool() {
			continue
		}
		fmt.Fprintf(c.out, "  line %d: expected %q, got %q\n",
			a.Get("line").Int(), a.Get("expected").String(), a.Get("actual").String())
		if diff := a.Get("diff").String(); diff != "" {
			for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
				c.dim.Fprintf(c.out, "    %s\n", line)
			}
		}
	}
}

// Failed reports whether the document records any failed assertion or
// fatal run.
func Failed(doc string) bool {
	return gjson.Get(doc, "totals.failed").Int() > 0 ||
		gjson.Get(doc, "totals.fatals").Int() > 0
}
