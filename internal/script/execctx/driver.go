package execctx

// Driver abstracts the editor under test. The engine calls out through
// this interface for every keystroke, command, and buffer query, and
// waits for each call to complete before processing the next directive.
// Implementations live outside the engine; the in-memory driver under
// internal/driver/memory is the default collaborator for local runs and
// tests.
type Driver interface {
	// SendKeys delivers a keystroke specification (literal runes plus
	// <...> special-key tokens) to the editor.
	SendKeys(spec string) error

	// RunCommand executes an editor command (the text after the ":"
	// sigil).
	RunCommand(cmd string) error

	// BufferLines returns the current buffer contents as lines.
	BufferLines() ([]string, error)

	// Clear resets the editor buffer to empty.
	Clear() error
}
