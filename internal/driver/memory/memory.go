// Package memory implements the editor driver boundary with a minimal
// in-process line editor.
//
// It exists so the macro engine can be exercised without a real editor
// attached: scripts type into it, run a small set of commands against
// it, and assert on its buffer. It deliberately implements only enough
// editing behavior to make test scripts meaningful.
package memory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/stormscript/internal/script/key"
)

// Driver errors.
var (
	// ErrUnknownCommand indicates a command the driver does not implement.
	ErrUnknownCommand = errors.New("memory: unknown command")
)

// Driver is an in-memory line editor implementing execctx.Driver.
// It is not safe for concurrent use; each script run owns its own
// instance.
type Driver struct {
	lines []string
	row   int
	col   int
}

// New creates an empty driver.
func New() *Driver {
	return &Driver{}
}

// SendKeys decodes and applies a keystroke specification.
func (d *Driver) SendKeys(spec string) error {
	strokes, err := key.Split(spec)
	if err != nil {
		return err
	}
	for _, s := range strokes {
		d.applyStroke(s)
	}
	return nil
}

// applyStroke applies one keystroke to the buffer.
func (d *Driver) applyStroke(s key.Stroke) {
	if s.IsRune() {
		d.insertRune(s.Rune)
		return
	}

	switch s.Special {
	case key.SpecialEnter:
		d.splitLine()
	case key.SpecialTab:
		d.insertRune('\t')
	case key.SpecialBackspace:
		d.backspace()
	case key.SpecialDelete:
		d.deleteForward()
	case key.SpecialEscape:
		// Separator only; the driver is modeless.
	case key.SpecialUp:
		d.moveRow(-1)
	case key.SpecialDown:
		d.moveRow(1)
	case key.SpecialLeft:
		if d.col > 0 {
			d.col--
		}
	case key.SpecialRight:
		if d.col < len(d.currentLine()) {
			d.col++
		}
	case key.SpecialHome:
		d.col = 0
	case key.SpecialEnd:
		d.col = len(d.currentLine())
	}
}

// RunCommand executes one of the driver's built-in commands:
//
//	append <text>   append text as a new last line
//	deleteline      delete the line under the cursor
//	clear           empty the buffer
//
// Anything else fails with ErrUnknownCommand.
func (d *Driver) RunCommand(cmd string) error {
	name, arg, _ := strings.Cut(strings.TrimSpace(cmd), " ")

	switch name {
	case "append":
		d.lines = append(d.lines, arg)
		d.row = len(d.lines) - 1
		d.col = len([]rune(arg))
		return nil

	case "deleteline":
		if len(d.lines) == 0 {
			return nil
		}
		d.lines = append(d.lines[:d.row], d.lines[d.row+1:]...)
		if d.row >= len(d.lines) && d.row > 0 {
			d.row--
		}
		d.col = 0
		return nil

	case "clear":
		return d.Clear()

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

// BufferLines returns a copy of the buffer contents.
func (d *Driver) BufferLines() ([]string, error) {
	lines := make([]string, len(d.lines))
	copy(lines, d.lines)
	return lines, nil
}

// Clear empties the buffer and resets the cursor.
func (d *Driver) Clear() error {
	d.lines = nil
	d.row = 0
	d.col = 0
	return nil
}

// currentLine returns the runes of the line under the cursor.
func (d *Driver) currentLine() []rune {
	if d.row >= len(d.lines) {
		return nil
	}
	return []rune(d.lines[d.row])
}

// insertRune inserts r at the cursor, creating the first line if the
// buffer is empty.
func (d *Driver) insertRune(r rune) {
	if len(d.lines) == 0 {
		d.lines = []string{""}
		d.row = 0
		d.col = 0
	}
	line := d.currentLine()
	if d.col > len(line) {
		d.col = len(line)
	}
	updated := make([]rune, 0, len(line)+1)
	updated = append(updated, line[:d.col]...)
	updated = append(updated, r)
	updated = append(updated, line[d.col:]...)
	d.lines[d.row] = string(updated)
	d.col++
}

// splitLine breaks the current line at the cursor.
func (d *Driver) splitLine() {
	if len(d.lines) == 0 {
		d.lines = []string{"", ""}
		d.row = 1
		d.col = 0
		return
	}
	line := d.currentLine()
	if d.col > len(line) {
		d.col = len(line)
	}
	head, tail := string(line[:d.col]), string(line[d.col:])
	d.lines[d.row] = head
	d.lines = append(d.lines[:d.row+1], append([]string{tail}, d.lines[d.row+1:]...)...)
	d.row++
	d.col = 0
}

// backspace deletes the rune before the cursor, joining lines at column
// zero.
func (d *Driver) backspace() {
	if len(d.lines) == 0 {
		return
	}
	if d.col > 0 {
		line := d.currentLine()
		d.lines[d.row] = string(append(line[:d.col-1:d.col-1], line[d.col:]...))
		d.col--
		return
	}
	if d.row == 0 {
		return
	}
	prev := []rune(d.lines[d.row-1])
	d.col = len(prev)
	d.lines[d.row-1] = string(prev) + d.lines[d.row]
	d.lines = append(d.lines[:d.row], d.lines[d.row+1:]...)
	d.row--
}

// deleteForward deletes the rune under the cursor.
func (d *Driver) deleteForward() {
	line := d.currentLine()
	if d.col >= len(line) {
		return
	}
	d.lines[d.row] = string(append(line[:d.col:d.col], line[d.col+1:]...))
}

// moveRow moves the cursor vertically, clamping to the buffer and to
// the target line's length.
func (d *Driver) moveRow(delta int) {
	if len(d.lines) == 0 {
		return
	}
	d.row += delta
	if d.row < 0 {
		d.row = 0
	}
	if d.row >= len(d.lines) {
		d.row = len(d.lines) - 1
	}
	if d.col > len(d.currentLine()) {
		d.col = len(d.currentLine())
	}
}
