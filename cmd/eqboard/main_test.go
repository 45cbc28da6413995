package main

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/cli"
)

func TestCanRunWithoutContainer(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no args", args: nil, want: false},
		{name: "help flag", args: []string{"--help"}, want: true},
		{name: "help shorthand on subcommand", args: []string{"task", "new", "-h"}, want: true},
		{name: "version flag", args: []string{"--version"}, want: true},
		{name: "help subcommand", args: []string{"help", "task"}, want: true},
		{name: "dev server", args: []string{"dev-server", "--addr", ":9000"}, want: true},
		{name: "config template", args: []string{"config", "template"}, want: true},
		{name: "config show", args: []string{"config", "show"}, want: false},
		{name: "board command", args: []string{"board", "show"}, want: false},
		{name: "task command", args: []string{"task", "new", "--title", "test"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canRunWithoutContainer(tt.args))
		})
	}
}

func TestRunWithoutContainer(t *testing.T) {
	originalArgs := os.Args
	originalRoot := newRootCommand
	t.Cleanup(func() {
		os.Args = originalArgs
		newRootCommand = originalRoot
	})

	var out bytes.Buffer
	newRootCommand = func(c *app.Container, version string) *cobra.Command {
		cmd := cli.NewRootCommand(c, version)
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		return cmd
	}
	initErr := errors.New("parse .eqboard.toml: bad value")

	t.Run("allowed command runs", func(t *testing.T) {
		out.Reset()
		os.Args = []string{"eqboard", "config", "template"}

		require.NoError(t, runWithoutContainer(initErr))
		assert.Contains(t, out.String(), "[api]")
	})

	t.Run("other commands report the init error", func(t *testing.T) {
		os.Args = []string{"eqboard", "board", "show"}

		assert.ErrorIs(t, runWithoutContainer(initErr), initErr)
	})
}
