// Package main is the entry point for the eqboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

// newRootCommand is replaced in tests.
var newRootCommand = cli.NewRootCommand

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	container, err := app.New(cwd)
	if err != nil {
		return runWithoutContainer(fmt.Errorf("failed to initialize: %w", err))
	}
	defer func() { _ = container.Close() }()

	return newRootCommand(container, version).Execute()
}

// runWithoutContainer handles a broken configuration. Help, version, the
// config template and the dev server still work; everything else returns
// initErr.
func runWithoutContainer(initErr error) error {
	if canRunWithoutContainer(os.Args[1:]) {
		return newRootCommand(nil, version).Execute()
	}
	return initErr
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help", "dev-server", "completion":
		return true
	case "config":
		return len(args) > 1 && args[1] == "template"
	}
	for _, arg := range args {
		if arg == "--version" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
