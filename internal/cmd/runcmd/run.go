// Package runcmd implements the "run" subcommand.
package runcmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dshills/stormscript/internal/config"
	"github.com/dshills/stormscript/internal/harness"
	"github.com/dshills/stormscript/internal/log"
	"github.com/dshills/stormscript/internal/report"
)

// ErrRunFailed is returned when any script fails or aborts, so the
// process exits nonzero without an extra error message per script.
var ErrRunFailed = errors.New("one or more scripts failed")

// NewCmdRun creates the run command.
func NewCmdRun() *cobra.Command {
	var (
		reportPath string
		maxDepth   int
	)

	cmd := &cobra.Command{
		Use:   "run <script>...",
		Short: "Run one or more test scripts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("report") {
				cfg.ReportPath = reportPath
			}
			if cmd.Flags().Changed("max-depth") {
				cfg.MaxDepth = maxDepth
			}
			return run(cmd, cfg, args)
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "write a JSON report to this path")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "macro expansion depth limit (0 = unlimited)")

	return cmd
}

// loadConfig resolves configuration from file, environment, and global
// flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return config.Config{}, err
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Color = false
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

// run executes the named scripts and reports the outcome.
func run(cmd *cobra.Command, cfg config.Config, paths []string) error {
	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Output: cmd.ErrOrStderr(),
		Prefix: "stormscript",
	})

	h := harness.New(cfg, logger)

	results := make([]*harness.Result, 0, len(paths))
	for _, path := range paths {
		result, err := h.RunFile(path)
		if err != nil {
			// The script could not even be read; surface immediately.
			return err
		}
		results = append(results, result)
	}

	doc, err := report.Build(results)
	if err != nil {
		return err
	}

	report.NewConsole(cmd.OutOrStdout(), cfg.Color).Print(doc)

	if cfg.ReportPath != "" {
		if err := report.WriteFile(cfg.ReportPath, doc); err != nil {
			return err
		}
	}

	if report.Failed(doc) {
		return ErrRunFailed
	}
	return nil
}
