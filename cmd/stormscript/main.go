// Package main is the entry point for the stormscript test runner.
package main

import (
	"os"

	"github.com/dshills/stormscript/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
