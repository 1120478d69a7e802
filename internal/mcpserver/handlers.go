package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/JamesPrial/tasklist/internal/tasklist"
)

// Handlers runs MCP tool calls against one controller.
type Handlers struct {
	ctrl *tasklist.Controller
	log  logrus.FieldLogger
}

// NewHandlers returns tool handlers bound to ctrl.
func NewHandlers(ctrl *tasklist.Controller, log logrus.FieldLogger) *Handlers {
	return &Handlers{ctrl: ctrl, log: log.WithField("component", "mcp")}
}

// HandleListTasks returns the view for the requested filter as JSON.
// Parameters:
//   - filter (string, optional): all, active or completed
func (h *Handlers) HandleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	view := h.ctrl.View()
	if raw, ok := args["filter"].(string); ok && raw != "" {
		f, err := tasklist.ParseFilter(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		view = h.ctrl.ViewWith(f)
	}
	return jsonResult(view)
}

// HandleSetFilter changes the controller's filter and returns the new view.
// Parameters:
//   - filter (string, required)
func (h *Handlers) HandleSetFilter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := request.GetArguments()["filter"].(string)
	if !ok {
		return mcp.NewToolResultError("Missing required parameter: filter"), nil
	}
	h.ctrl.SetFilter(tasklist.Filter(strings.TrimSpace(raw)))
	return jsonResult(h.ctrl.View())
}

// HandleAddTask appends a task.
// Parameters:
//   - title (string, required)
func (h *Handlers) HandleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, ok := request.GetArguments()["title"].(string)
	if !ok {
		return mcp.NewToolResultError("Missing required parameter: title"), nil
	}

	task, added := h.ctrl.Add(title)
	if !added {
		return mcp.NewToolResultError("Title must not be blank"), nil
	}
	h.log.WithField("id", task.ID).Debug("task added")
	return jsonResult(task)
}

// HandleToggleTask flips a task's completed flag.
// Parameters:
//   - id (number, required)
func (h *Handlers) HandleToggleTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(request)
	if errResult != nil {
		return errResult, nil
	}
	if !h.ctrl.Toggle(id) {
		return notFound(id), nil
	}
	task, _ := h.ctrl.Task(id)
	return jsonResult(task)
}

// HandleEditTask replaces a task's title. A missing title is a cancelled
// prompt.
// Parameters:
//   - id (number, required)
//   - title (string, optional)
func (h *Handlers) HandleEditTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(request)
	if errResult != nil {
		return errResult, nil
	}
	if _, found := h.ctrl.Task(id); !found {
		return notFound(id), nil
	}

	prompter := tasklist.Cancelled
	if title, ok := request.GetArguments()["title"].(string); ok {
		prompter = tasklist.Answer(title)
	}

	changed := h.ctrl.Edit(id, prompter)
	task, _ := h.ctrl.Task(id)
	if !changed {
		return mcp.NewToolResultText(fmt.Sprintf("Task %d unchanged (title: %q)", id, task.Title)), nil
	}
	return jsonResult(task)
}

// HandleDeleteTask removes a task.
// Parameters:
//   - id (number, required)
func (h *Handlers) HandleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(request)
	if errResult != nil {
		return errResult, nil
	}
	if !h.ctrl.Delete(id) {
		return notFound(id), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted task %d", id)), nil
}

// HandleClearCompleted removes completed tasks when confirm is true.
// Parameters:
//   - confirm (boolean, required)
func (h *Handlers) HandleClearCompleted(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	confirm, _ := request.GetArguments()["confirm"].(bool)

	confirmer := tasklist.Decline
	if confirm {
		confirmer = tasklist.Accept
	}
	removed, ok := h.ctrl.ClearCompleted(confirmer)
	if !ok {
		return mcp.NewToolResultText("Cancelled; no tasks removed"), nil
	}
	h.log.WithField("removed", removed).Info("cleared completed tasks")
	return mcp.NewToolResultText(fmt.Sprintf("Removed %d completed task(s)", removed)), nil
}

// requireID reads the id argument. JSON numbers arrive as float64; integral
// strings are accepted too.
func requireID(request mcp.CallToolRequest) (int, *mcp.CallToolResult) {
	raw, ok := request.GetArguments()["id"]
	if !ok {
		return 0, mcp.NewToolResultError("Missing required parameter: id")
	}

	var id int
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || v < 1 || v > math.MaxInt32 {
			return 0, mcp.NewToolResultError(fmt.Sprintf("Invalid id: %v", v))
		}
		id = int(v)
	case int:
		id = v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, mcp.NewToolResultError(fmt.Sprintf("Invalid id: %q", v))
		}
		id = n
	default:
		return 0, mcp.NewToolResultError(fmt.Sprintf("Invalid id: %v", v))
	}

	if id < 1 {
		return 0, mcp.NewToolResultError(fmt.Sprintf("Invalid id: %d", id))
	}
	return id, nil
}

func notFound(id int) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Task %d not found", id))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
