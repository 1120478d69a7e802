// Package tasklist implements the task list controller: an ordered list of
// tasks, mirrored into a key-value storage slot after every change and
// re-rendered into its container.
package tasklist

import (
	"encoding/json"
	"fmt"
	"time"
)

// StorageKey is the storage slot holding the serialized task list.
const StorageKey = "todos"

// TimestampLayout is the ISO 8601 UTC format used for createdAt, with
// millisecond precision and a Z suffix (e.g., "2025-11-14T10:30:45.123Z").
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Task is one to-do item.
type Task struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// taskJSON is the wire form of Task: createdAt travels as an ISO string.
type taskJSON struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// MarshalJSON writes createdAt in TimestampLayout.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.UTC().Format(TimestampLayout),
	})
}

// UnmarshalJSON revives createdAt from its ISO string.
//
// Any RFC 3339 timestamp is accepted. A createdAt that is missing, not a
// string, or unparseable leaves the zero time; the task itself is kept.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        int             `json:"id"`
		Title     string          `json:"title"`
		Completed bool            `json:"completed"`
		CreatedAt json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Task{
		ID:        raw.ID,
		Title:     raw.Title,
		Completed: raw.Completed,
		CreatedAt: parseCreatedAt(raw.CreatedAt),
	}
	return nil
}

func parseCreatedAt(raw json.RawMessage) time.Time {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// decodeTasks parses a persisted task list.
//
// JSON null decodes to an empty list. Anything that is not an array of
// tasks is an error.
func decodeTasks(data string) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = make([]Task, 0)
	}
	return tasks, nil
}

// encodeTasks serializes the full task list for storage.
func encodeTasks(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = make([]Task, 0)
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Filter selects which tasks a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter converts s into a Filter.
//
// Returns an error for anything other than "all", "active" or "completed".
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q. Expected all, active or completed", s)
	}
}

// Label is the human-readable filter name used on filter buttons.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Match reports whether task belongs in a view with this filter.
func (f Filter) Match(task Task) bool {
	switch f {
	case FilterActive:
		return !task.Completed
	case FilterCompleted:
		return task.Completed
	default:
		return true
	}
}

// EmptyMessage is shown in place of the list when the filter matches nothing.
func (f Filter) EmptyMessage() string {
	switch f {
	case FilterActive:
		return "You're all caught up! No active tasks."
	case FilterCompleted:
		return "No completed tasks yet. Keep working!"
	default:
		return "No tasks yet. Add one to get started!"
	}
}
