// Package root provides the root command for the stormscript CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/dshills/stormscript/internal/cmd/runcmd"
	"github.com/dshills/stormscript/internal/version"
)

// NewCmdRoot creates the root command for stormscript.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stormscript",
		Short: "A macro-expanding test-script runner for editors",
		Long: `stormscript runs editor test scripts: plain lines seed and assert
buffer contents, "> keys" sends keystrokes, ":cmd" runs commands, and
repeated patterns are factored into parameterized macros defined with
@macro/@endmacro and expanded recursively with @do.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/stormscript/config.toml)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	cmd.SetVersionTemplate("stormscript version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	cmd.AddCommand(runcmd.NewCmdRun())

	return cmd
}
