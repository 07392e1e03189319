// Package harness orchestrates script runs: it reads a script, wires a
// fresh registry, execution context, and driver together, runs the
// expander, and collects results.
//
// Every run owns independent state. Callers that run scripts in
// parallel must use one Harness call per goroutine-owned run; nothing
// here is shared across runs except the configuration and logger.
package harness

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dshills/stormscript/internal/config"
	"github.com/dshills/stormscript/internal/driver/memory"
	"github.com/dshills/stormscript/internal/log"
	"github.com/dshills/stormscript/internal/script/execctx"
	"github.com/dshills/stormscript/internal/script/expand"
	"github.com/dshills/stormscript/internal/script/macro"
)

// DriverFactory constructs the editor driver for one run.
type DriverFactory func() execctx.Driver

// Result is the outcome of one script run.
type Result struct {
	// Script names the script (file path or caller-supplied label).
	Script string

	// Assertions holds every buffer comparison made, in order.
	Assertions []execctx.AssertionResult

	// Fatal is the error that aborted the run, or nil. Assertion
	// failures are not fatal; they accumulate in Assertions.
	Fatal error

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Passed returns the number of passing assertions.
func (r *Result) Passed() int {
	n := 0
	for _, a := range r.Assertions {
		if a.Passed {
			n++
		}
	}
	return n
}

// Failed returns the number of failing assertions.
func (r *Result) Failed() int {
	return len(r.Assertions) - r.Passed()
}

// OK reports whether the run completed without a fatal error and with
// no failed assertions.
func (r *Result) OK() bool {
	return r.Fatal == nil && r.Failed() == 0
}

// Harness runs scripts under one configuration.
type Harness struct {
	cfg     config.Config
	logger  *log.Logger
	drivers DriverFactory
}

// Option customizes a Harness.
type Option func(*Harness)

// WithDriverFactory replaces the default in-memory driver.
func WithDriverFactory(f DriverFactory) Option {
	return func(h *Harness) {
		h.drivers = f
	}
}

// New creates a harness. A nil logger disables logging.
func New(cfg config.Config, logger *log.Logger, opts ...Option) *Harness {
	if logger == nil {
		logger = log.Null
	}
	h := &Harness{
		cfg:    cfg,
		logger: logger,
		drivers: func() execctx.Driver {
			return memory.New()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RunFile reads and runs a script file.
func (h *Harness) RunFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	return h.Run(path, lines), nil
}

// Run executes script lines under a fresh registry, context, and
// driver. The returned Result always carries whatever assertions
// completed before any fatal error.
func (h *Harness) Run(name string, lines []string) *Result {
	start := time.Now()
	logger := h.logger.WithField("script", name)
	logger.Debug("run starting (%d lines)", len(lines))

	registry := macro.NewRegistry()
	ctx := execctx.New(h.drivers())
	expander := expand.New(registry, ctx, expand.Options{
		MaxDepth: h.cfg.MaxDepth,
		Logger:   h.logger,
	})

	err := expander.Run(lines)

	result := &Result{
		Script:     name,
		Assertions: ctx.Results(),
		Fatal:      err,
		Duration:   time.Since(start),
	}

	switch {
	case err != nil:
		logger.Error("run aborted: %v", err)
	case result.Failed() > 0:
		logger.Warn("run finished: %d passed, %d failed", result.Passed(), result.Failed())
	default:
		logger.Info("run finished: %d passed", result.Passed())
	}

	return result
}
