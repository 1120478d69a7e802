package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JamesPrial/tasklist/internal/tasklist"
)

// Terminal styles shared with the TUI.
var (
	HeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	SubtitleStyle  = lipgloss.NewStyle().Faint(true)
	ActiveTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("63"))
	TabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	DoneStyle      = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	EmptyStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	StatsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// FilterBar renders the three filters with their live counts, marking the
// current one.
func FilterBar(v tasklist.View) string {
	counts := map[tasklist.Filter]int{
		tasklist.FilterAll:       v.Counts.Total,
		tasklist.FilterActive:    v.Counts.Active,
		tasklist.FilterCompleted: v.Counts.Completed,
	}
	tabs := make([]string, 0, len(tasklist.Filters))
	for _, f := range tasklist.Filters {
		label := fmt.Sprintf("%s (%d)", f.Label(), counts[f])
		if f == v.Filter {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

// TaskLine renders a single task as "[x] #id title".
func TaskLine(t tasklist.Task) string {
	box := "[ ]"
	title := t.Title
	if t.Completed {
		box = "[x]"
		title = DoneStyle.Render(title)
	}
	return fmt.Sprintf("%s #%d %s", box, t.ID, title)
}

// Stats renders the total/active/completed summary.
func Stats(c tasklist.Counts) string {
	return StatsStyle.Render(fmt.Sprintf("Total Tasks: %d   To Do: %d   Completed: %d", c.Total, c.Active, c.Completed))
}

// Text renders v for a terminal.
func Text(v tasklist.View) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("My Tasks"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Stay productive and organized"))
	b.WriteString("\n\n")
	b.WriteString(FilterBar(v))
	b.WriteString("\n\n")

	if len(v.Tasks) == 0 {
		b.WriteString(EmptyStyle.Render(v.EmptyMessage))
		b.WriteString("\n")
	}
	for _, t := range v.Tasks {
		b.WriteString(TaskLine(t))
		b.WriteString("\n")
	}

	if v.Counts.Completed > 0 {
		b.WriteString("\n")
		b.WriteString(ClearLabel(v.Counts.Completed))
		b.WriteString(" with clear-completed\n")
	}

	b.WriteString("\n")
	b.WriteString(Stats(v.Counts))
	b.WriteString("\n")
	return b.String()
}
