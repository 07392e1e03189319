// Package token splits raw script text into typed directives.
//
// A script is an ordered sequence of text lines. Lines beginning with a
// sigil are interpreted:
//
//   - "> keys" sends keystrokes to the editor under test
//   - ":cmd" runs an editor command
//   - "@macro (Name)" opens a macro definition, closed by "@endmacro"
//   - "@do (Name, args...)" invokes a macro
//   - "@clear" resets buffer state, "@end" closes a verification block
//
// Any other line is bare text; whether bare text is output or an
// assertion against the buffer depends on its position in the flattened directive
// stream, which only the expander knows, so the tokenizer always emits
// KindPlainText and leaves reclassification to the caller.
//
// Lines between "@macro (Name)" and "@endmacro" are captured verbatim and
// never interpreted here. A macro body may contain syntax that is only
// valid after argument substitution, so interpretation is deferred until
// the expander re-tokenizes the substituted body at invocation time.
package token
