// Package mcpserver exposes the task list as MCP tools.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// listTasksTool returns a tool definition for reading the list.
func listTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks with their counts. Without a filter the current filter is used; a filter argument does not change it."),
		mcp.WithString("filter",
			mcp.Enum("all", "active", "completed"),
			mcp.Description("Which tasks to list: all, active or completed")),
	)
}

// addTaskTool returns a tool definition for adding a task.
func addTaskTool() mcp.Tool {
	return mcp.NewTool("add_task",
		mcp.WithDescription("Add a new active task. The title is trimmed; a blank title is rejected."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title")),
	)
}

// toggleTaskTool returns a tool definition for flipping completion.
func toggleTaskTool() mcp.Tool {
	return mcp.NewTool("toggle_task",
		mcp.WithDescription("Flip a task between active and completed."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task id")),
	)
}

// editTaskTool returns a tool definition for renaming a task.
func editTaskTool() mcp.Tool {
	return mcp.NewTool("edit_task",
		mcp.WithDescription("Replace a task's title. Omitting the title cancels the edit; a blank title leaves the task unchanged."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task id")),
		mcp.WithString("title",
			mcp.Description("New title")),
	)
}

// deleteTaskTool returns a tool definition for removing a task.
func deleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task id")),
	)
}

// clearCompletedTool returns a tool definition for removing completed tasks.
func clearCompletedTool() mcp.Tool {
	return mcp.NewTool("clear_completed",
		mcp.WithDescription("Delete every completed task. Requires confirm=true; anything else is treated as the user declining."),
		mcp.WithBoolean("confirm",
			mcp.Required(),
			mcp.Description("Answer to: Are you sure you want to delete all completed todos?")),
	)
}

// setFilterTool returns a tool definition for changing the current filter.
func setFilterTool() mcp.Tool {
	return mcp.NewTool("set_filter",
		mcp.WithDescription("Change the current filter. Unknown values fall back to all. The filter is not persisted."),
		mcp.WithString("filter",
			mcp.Required(),
			mcp.Enum("all", "active", "completed"),
			mcp.Description("all, active or completed")),
	)
}
