package template

import (
	"errors"
	"testing"
)

// ==================== Escaping Tests ====================

func TestEscapingWithEmptyBindings(t *testing.T) {
	// Doubled braces are purely syntactic; they collapse even when no
	// binding is ever consulted.
	got, err := SubstituteLine("{{", Bindings{})
	if err != nil {
		t.Fatalf("SubstituteLine error: %v", err)
	}
	if got != "{" {
		t.Errorf("got %q, want %q", got, "{")
	}
}

func TestEscapingIdempotence(t *testing.T) {
	line := "a {{literal}} b"
	want := "a {literal} b"

	empty, err := SubstituteLine(line, Bindings{})
	if err != nil {
		t.Fatalf("empty bindings: %v", err)
	}
	unrelated, err := SubstituteLine(line, Bindings{"other": "x", "count": 3})
	if err != nil {
		t.Fatalf("unrelated bindings: %v", err)
	}

	if empty != want || unrelated != want {
		t.Errorf("empty=%q unrelated=%q, want %q", empty, unrelated, want)
	}
}

func TestEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{{", "{"},
		{"}}", "}"},
		{"{{}}", "{}"},
		{"{{{name}}}", "{value}"},
		{"no braces", "no braces"},
	}

	bindings := Bindings{"name": "value"}
	for _, tt := range tests {
		got, err := SubstituteLine(tt.in, bindings)
		if err != nil {
			t.Errorf("SubstituteLine(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SubstituteLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ==================== Field Tests ====================

func TestFieldSubstitution(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		bindings Bindings
		want     string
	}{
		{"simple", "hello {subject}", Bindings{"subject": "world"}, "hello world"},
		{"two fields", "{a}{b}", Bindings{"a": "x", "b": "y"}, "xy"},
		{"numeric value", "n={n}", Bindings{"n": 42}, "n=42"},
		{"positional name", "{1} and {2}", Bindings{"1": "a", "2": "b"}, "a and b"},
		{"repeat literal count", "{dash:3}", Bindings{"dash": "-"}, "---"},
		{"repeat zero", "[{dash:0}]", Bindings{"dash": "-"}, "[]"},
		{"repeat by field", "{fill:{count}}", Bindings{"fill": " ", "count": 4}, "    "},
		{"repeat by string field", "{fill:{count}}", Bindings{"fill": "ab", "count": "2"}, "abab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubstituteLine(tt.in, tt.bindings)
			if err != nil {
				t.Fatalf("SubstituteLine error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSinglePassSubstitution(t *testing.T) {
	// A value containing a placeholder is emitted as-is; re-substitution
	// is the expander's job, not this package's.
	got, err := SubstituteLine("{a}", Bindings{"a": "{b}", "b": "ignored"})
	if err != nil {
		t.Fatalf("SubstituteLine error: %v", err)
	}
	if got != "{b}" {
		t.Errorf("got %q, want %q", got, "{b}")
	}
}

func TestUnboundField(t *testing.T) {
	_, err := SubstituteLine("hello {missing}", Bindings{"subject": "world"})
	var unbound *UnboundFieldError
	if !errors.As(err, &unbound) {
		t.Fatalf("error %v, want *UnboundFieldError", err)
	}
	if unbound.Field != "missing" {
		t.Errorf("field = %q, want %q", unbound.Field, "missing")
	}
}

func TestMalformedTemplates(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		sentinel error
	}{
		{"unterminated field", "hello {name", ErrUnterminatedField},
		{"stray close", "oops } here", ErrStrayBrace},
		{"bad literal count", "{x:abc}", ErrBadFormatSpec},
		{"negative count", "{x:-1}", ErrBadFormatSpec},
		{"non-numeric count field", "{x:{y}}", ErrBadFormatSpec},
	}

	bindings := Bindings{"x": "-", "y": "not a number"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SubstituteLine(tt.in, bindings)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestUnboundCountField(t *testing.T) {
	_, err := SubstituteLine("{x:{missing}}", Bindings{"x": "-"})
	var unbound *UnboundFieldError
	if !errors.As(err, &unbound) {
		t.Fatalf("error %v, want *UnboundFieldError", err)
	}
	if unbound.Field != "missing" {
		t.Errorf("field = %q, want %q", unbound.Field, "missing")
	}
}

// ==================== Multi-line Tests ====================

func TestSubstituteLines(t *testing.T) {
	lines := []string{"hello {subject}", "{{literal}}", "plain"}
	got, err := Substitute(lines, Bindings{"subject": "world"})
	if err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	want := []string{"hello world", "{literal}", "plain"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSubstituteReportsLine(t *testing.T) {
	_, err := Substitute([]string{"fine", "{missing}"}, Bindings{})
	var se *SubstituteError
	if !errors.As(err, &se) {
		t.Fatalf("error %T, want *SubstituteError", err)
	}
	if se.Line != 2 {
		t.Errorf("line = %d, want 2", se.Line)
	}
}

func TestSubstituteDoesNotMutateInput(t *testing.T) {
	lines := []string{"hello {subject}"}
	if _, err := Substitute(lines, Bindings{"subject": "world"}); err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	if lines[0] != "hello {subject}" {
		t.Errorf("input mutated: %q", lines[0])
	}
}
