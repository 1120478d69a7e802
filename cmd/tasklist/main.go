// Package main implements the tasklist command.
//
// One binary serves every front end over the same storage slot: a web UI,
// a terminal UI, an MCP stdio server, and one-shot commands for scripting.
//
// Exit codes:
//   - 0: Success
//   - 1: Error (bad arguments, configuration, storage, or a task that does not exist)
//
// Configuration comes from TASKLIST_* environment variables, ./.env and an
// optional YAML file; see internal/config.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// run builds the command tree, executes args and returns an exit code.
//
// Accepts explicit streams so tests never touch process globals.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "tasklist",
		Short:         "A small task list with web, terminal and MCP front ends",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	s := &streams{in: stdin, out: stdout, err: stderr}
	root.AddCommand(
		serveCmd(s),
		tuiCmd(s),
		mcpCmd(s),
		listCmd(s),
		addCmd(s),
		toggleCmd(s),
		editCmd(s),
		deleteCmd(s),
		clearCompletedCmd(s),
		resetCmd(s),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
