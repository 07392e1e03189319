package macro

import (
	"errors"
	"testing"
)

func TestDefineAndLookup(t *testing.T) {
	r := NewRegistry()
	r.Define("greet", []string{"hello {subject}"})

	def, err := r.Lookup("greet")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if def.Name != "greet" {
		t.Errorf("name = %q, want %q", def.Name, "greet")
	}
	if len(def.Body) != 1 || def.Body[0] != "hello {subject}" {
		t.Errorf("body = %v", def.Body)
	}
}

func TestLookupUndefined(t *testing.T) {
	r := NewRegistry()

	_, err := r.Lookup("never defined")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error %v, want *NotFoundError", err)
	}
	if nf.Name != "never defined" {
		t.Errorf("name = %q, want %q", nf.Name, "never defined")
	}
}

func TestRedefinitionOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Define("m", []string{"first"})
	r.Define("m", []string{"second"})

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	def, err := r.Lookup("m")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if def.Body[0] != "second" {
		t.Errorf("body = %v, want the latest definition", def.Body)
	}
}

func TestExists(t *testing.T) {
	r := NewRegistry()
	if r.Exists("m") {
		t.Error("Exists = true before Define")
	}
	r.Define("m", nil)
	if !r.Exists("m") {
		t.Error("Exists = false after Define")
	}
}

func TestNamesWithSpaces(t *testing.T) {
	r := NewRegistry()
	r.Define("type a line", []string{"> i{text}"})

	if !r.Exists("type a line") {
		t.Error("exact name with spaces not found")
	}
	// Lookup is exact string equality, not token matching.
	if r.Exists("type a line ") || r.Exists("type  a line") {
		t.Error("lookup must be exact string equality")
	}
}

func TestBodyIsolatedFromCaller(t *testing.T) {
	r := NewRegistry()
	body := []string{"original"}
	r.Define("m", body)
	body[0] = "mutated"

	def, err := r.Lookup("m")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if def.Body[0] != "original" {
		t.Errorf("stored body follows caller mutation: %v", def.Body)
	}
}

func TestNames(t *testing.T) {
	r := NewRegistry()
	r.Define("a", nil)
	r.Define("b", nil)
	r.Define("a", nil)

	names := r.Names()
	if len(names) != 2 {
		t.Errorf("Names = %v, want 2 entries", names)
	}
}
