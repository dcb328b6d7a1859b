// Package main is the entry point for the preconfig CLI application.
package main

import (
	"os"

	"github.com/nkazin/preconfig/cmd"
)

// Version information, injected at build time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(cmd.PrintError(os.Stderr, err))
	}
}
