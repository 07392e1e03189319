// Package report renders run outcomes: a JSON report document and a
// colored console summary.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/sjson"

	"github.com/dshills/stormscript/internal/harness"
)

// Build renders results as a JSON report document.
func Build(results []*harness.Result) (string, error) {
	doc := "{}"

	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("version", 1)
	set("generated", time.Now().UTC().Format(time.RFC3339))

	passed, failed, fatals := 0, 0, 0
	for i, r := range results {
		prefix := fmt.Sprintf("runs.%d", i)
		set(prefix+".script", r.Script)
		set(prefix+".duration_ms", r.Duration.Milliseconds())
		set(prefix+".passed", r.Passed())
		set(prefix+".failed", r.Failed())
		passed += r.Passed()
		failed += r.Failed()

		if r.Fatal != nil {
			set(prefix+".fatal", r.Fatal.Error())
			fatals++
		}

		for j, a := range r.Assertions {
			ap := fmt.Sprintf("%s.assertions.%d", prefix, j)
			set(ap+".line", a.Line)
			set(ap+".expected", a.Expected)
			set(ap+".actual", a.Actual)
			set(ap+".passed", a.Passed)
			if a.Diff != "" {
				set(ap+".diff", a.Diff)
			}
		}
	}

	set("totals.runs", len(results))
	set("totals.passed", passed)
	set("totals.failed", failed)
	set("totals.fatals", fatals)

	if err != nil {
		return "", fmt.Errorf("building report: %w", err)
	}
	return doc, nil
}

// WriteFile writes a report document to path.
func WriteFile(path, doc string) error {
	if err := os.WriteFile(path, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
