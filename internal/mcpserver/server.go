package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/JamesPrial/tasklist/internal/tasklist"
)

// NewServer creates an MCP server with every task tool registered against ctrl.
func NewServer(ctrl *tasklist.Controller, log logrus.FieldLogger) (*server.MCPServer, error) {
	h := NewHandlers(ctrl, log)

	s := server.NewMCPServer(
		"tasklist",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Reading
	s.AddTool(listTasksTool(), h.HandleListTasks)
	s.AddTool(setFilterTool(), h.HandleSetFilter)

	// Mutations
	s.AddTool(addTaskTool(), h.HandleAddTask)
	s.AddTool(toggleTaskTool(), h.HandleToggleTask)
	s.AddTool(editTaskTool(), h.HandleEditTask)
	s.AddTool(deleteTaskTool(), h.HandleDeleteTask)
	s.AddTool(clearCompletedTool(), h.HandleClearCompleted)

	return s, nil
}
