package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/JamesPrial/tasklist/internal/mcpserver"
	"github.com/JamesPrial/tasklist/internal/render"
	"github.com/JamesPrial/tasklist/internal/tasklist"
	"github.com/JamesPrial/tasklist/internal/tui"
	"github.com/JamesPrial/tasklist/internal/web"
)

func serveCmd(s *streams) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container := render.NewHTMLContainer()
			a, err := openApp(s, "tasklist-web", tasklist.WithRenderer(container))
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}
			return web.NewServer(a.ctrl, container, a.log).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from TASKLIST_HTTP_ADDR)")
	return cmd
}

func tuiCmd(s *streams) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(s, "tasklist-tui")
			if err != nil {
				return err
			}
			defer a.Close()
			return tui.Run(a.ctrl, tea.WithInput(s.in), tea.WithOutput(s.out), tea.WithContext(cmd.Context()))
		},
	}
}

func mcpCmd(s *streams) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(s, "tasklist-mcp")
			if err != nil {
				return err
			}
			defer a.Close()

			srv, err := mcpserver.NewServer(a.ctrl, a.log)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			errWriter := a.log.WriterLevel(logrus.ErrorLevel)
			defer func() { _ = errWriter.Close() }()

			stdio := server.NewStdioServer(srv)
			stdio.SetErrorLogger(log.New(errWriter, "", 0))
			if err := stdio.Listen(cmd.Context(), s.in, s.out); err != nil && !errors.Is(err, cmd.Context().Err()) {
				return fmt.Errorf("mcp server failed: %w", err)
			}
			return nil
		},
	}
}

func listCmd(s *streams) *cobra.Command {
	var (
		filter string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := tasklist.ParseFilter(filter)
			if err != nil {
				return err
			}
			a, err := openApp(s, "tasklist")
			if err != nil {
				return err
			}
			defer a.Close()

			view := a.ctrl.ViewWith(f)
			if asJSON {
				enc := json.NewEncoder(s.out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			_, err = fmt.Fprint(s.out, render.Text(view))
			return err
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(tasklist.FilterAll), "Filter: all, active or completed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view as JSON")
	return cmd
}

func addCmd(s *streams) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(s, "tasklist")
			if err != nil {
				return err
			}
			defer a.Close()

			task, ok := a.ctrl.Add(strings.Join(args, " "))
			if !ok {
				return errors.New("title must not be blank")
			}
			fmt.Fprintf(s.out, "Added task %d: %s\n", task.ID, task.Title)
			return nil
		},
	}
}

func toggleCmd(s *streams) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task completed, or active again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(s, "tasklist")
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.ctrl.Toggle(id) {
				return notFound(id)
			}
			task, _ := a.ctrl.Task(id)
			fmt.Fprintln(s.out, render.TaskLine(task))
			return nil
		},
	}
}

func editCmd(s *streams) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> [title...]",
		Short: "Rename a task; prompts on stdin when no title is given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(s, "tasklist")
			if err != nil {
				return err
			}
			defer a.Close()

			if _, ok := a.ctrl.Task(id); !ok {
				return notFound(id)
			}

			var prompter tasklist.Prompter = newLinePrompter(s.in, s.out)
			if len(args) > 1 {
				prompter = tasklist.Answer(strings.Join(args[1:], " "))
			}
			if !a.ctrl.Edit(id, prompter) {
				fmt.Fprintf(s.out, "Task %d unchanged\n", id)
				return nil
			}
			task, _ := a.ctrl.Task(id)
			fmt.Fprintln(s.out, render.TaskLine(task))
			return nil
		},
	}
}

func deleteCmd(s *streams) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(s, "tasklist")
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.ctrl.Delete(id) {
				return notFound(id)
			}
			fmt.Fprintf(s.out, "Deleted task %d\n", id)
			return nil
		},
	}
}

func clearCompletedCmd(s *streams) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(s, "tasklist")
			if err != nil {
				return err
			}
			defer a.Close()

			var confirmer tasklist.Confirmer = newLinePrompter(s.in, s.out)
			if yes {
				confirmer = tasklist.Accept
			}
			removed, ok := a.ctrl.ClearCompleted(confirmer)
			if !ok {
				fmt.Fprintln(s.out, "Cancelled")
				return nil
			}
			fmt.Fprintf(s.out, "Removed %d completed task(s)\n", removed)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

func resetCmd(s *streams) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task and remove the stored list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(s, "tasklist")
			if err != nil {
				return err
			}
			defer a.Close()

			var confirmer tasklist.Confirmer = newLinePrompter(s.in, s.out)
			if yes {
				confirmer = tasklist.Accept
			}
			removed, ok := a.ctrl.Reset(confirmer)
			if !ok {
				fmt.Fprintln(s.out, "Cancelled")
				return nil
			}
			fmt.Fprintf(s.out, "Removed %d task(s)\n", removed)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id: %q", raw)
	}
	return id, nil
}

func notFound(id int) error {
	return fmt.Errorf("task %d not found", id)
}
