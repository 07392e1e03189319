package expand

import (
	"errors"
	"testing"
)

// ==================== Argument Grammar Tests ====================

func TestParseArgsPositional(t *testing.T) {
	bindings, err := parseArgs("'hello', 42, bare")
	if err != nil {
		t.Fatalf("parseArgs error: %v", err)
	}

	if bindings["1"] != "hello" {
		t.Errorf("1 = %v, want hello", bindings["1"])
	}
	if bindings["2"] != 42 {
		t.Errorf("2 = %v, want 42", bindings["2"])
	}
	if bindings["3"] != "bare" {
		t.Errorf("3 = %v, want bare", bindings["3"])
	}
}

func TestParseArgsKeyword(t *testing.T) {
	bindings, err := parseArgs("subject='world', count=4, ratio=1.5")
	if err != nil {
		t.Fatalf("parseArgs error: %v", err)
	}

	if bindings["subject"] != "world" {
		t.Errorf("subject = %v", bindings["subject"])
	}
	if bindings["count"] != 4 {
		t.Errorf("count = %v", bindings["count"])
	}
	if bindings["ratio"] != 1.5 {
		t.Errorf("ratio = %v", bindings["ratio"])
	}
}

func TestParseArgsKeywordOverridesPositional(t *testing.T) {
	// Keyword arguments override positional-derived names.
	bindings, err := parseArgs("'positional', 1='override'")
	if err != nil {
		t.Fatalf("parseArgs error: %v", err)
	}
	if bindings["1"] != "override" {
		t.Errorf("1 = %v, want override", bindings["1"])
	}
}

func TestParseArgsKeywordOverride(t *testing.T) {
	bindings, err := parseArgs("x='a', x='b'")
	if err != nil {
		t.Fatalf("parseArgs error: %v", err)
	}
	if bindings["x"] != "b" {
		t.Errorf("x = %v, want the last assignment", bindings["x"])
	}
}

func TestParseArgsFieldExpression(t *testing.T) {
	// A keyword value may reference arguments bound earlier in the same
	// list, using the same brace syntax as template bodies.
	bindings, err := parseArgs("fill=' ', count=4, indent={fill:{count}}")
	if err != nil {
		t.Fatalf("parseArgs error: %v", err)
	}
	if bindings["indent"] != "    " {
		t.Errorf("indent = %q, want four spaces", bindings["indent"])
	}
}

func TestParseArgsPositionalVisibleToLaterValues(t *testing.T) {
	bindings, err := parseArgs("'abc', repeated={1:3}")
	if err != nil {
		t.Fatalf("parseArgs error: %v", err)
	}
	if bindings["repeated"] != "abcabcabc" {
		t.Errorf("repeated = %q", bindings["repeated"])
	}
}

func TestParseArgsQuoting(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`msg='it\'s'`, "it's"},
		{`msg='a, b'`, "a, b"},
		{`msg="say \"hi\""`, `say "hi"`},
		{`msg='line\nbreak'`, "line\nbreak"},
		{`msg='tab\there'`, "tab\there"},
		{`msg='back\\slash'`, `back\slash`},
	}

	for _, tt := range tests {
		bindings, err := parseArgs(tt.raw)
		if err != nil {
			t.Errorf("parseArgs(%q) error: %v", tt.raw, err)
			continue
		}
		if bindings["msg"] != tt.want {
			t.Errorf("parseArgs(%q) msg = %q, want %q", tt.raw, bindings["msg"], tt.want)
		}
	}
}

func TestParseArgsEmpty(t *testing.T) {
	bindings, err := parseArgs("")
	if err != nil {
		t.Fatalf("parseArgs error: %v", err)
	}
	if len(bindings) != 0 {
		t.Errorf("bindings = %v, want empty", bindings)
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		sentinel error
	}{
		{"positional after keyword", "key='v', 'positional'", ErrPositionalAfterKeyword},
		{"unterminated single quote", "msg='oops", ErrUnterminatedString},
		{"unterminated double quote", `msg="oops`, ErrUnterminatedString},
		{"empty item", "a, , b", ErrEmptyArgument},
		{"trailing comma", "a,", ErrEmptyArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.raw)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestCutKeyword(t *testing.T) {
	tests := []struct {
		item    string
		wantKey string
		wantOK  bool
	}{
		{"key=value", "key", true},
		{"key_2='x'", "key_2", true},
		{"_private=1", "_private", true},
		{"1='y'", "1", true},
		{"'str=inside'", "", false},
		{"{a}=x", "", false},
		{"2x=1", "", false},
		{"=value", "", false},
		{"plain", "", false},
	}

	for _, tt := range tests {
		key, _, ok := cutKeyword(tt.item)
		if ok != tt.wantOK || key != tt.wantKey {
			t.Errorf("cutKeyword(%q) = (%q, %v), want (%q, %v)",
				tt.item, key, ok, tt.wantKey, tt.wantOK)
		}
	}
}
