// Package render turns task list views into markup and terminal text.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/JamesPrial/tasklist/internal/tasklist"
)

//go:embed templates/tasklist.html
var templatesFS embed.FS

var tasklistTmpl = template.Must(template.ParseFS(templatesFS, "templates/tasklist.html"))

// filterButton is one entry of the filter bar.
type filterButton struct {
	Value  tasklist.Filter
	Label  string
	Count  int
	Active bool
}

// markupData is what the tasklist template executes against.
type markupData struct {
	tasklist.View
	Filters    []filterButton
	ClearLabel string
}

// ClearLabel is the text of the clear-completed control.
func ClearLabel(completed int) string {
	noun := "tasks"
	if completed == 1 {
		noun = "task"
	}
	return fmt.Sprintf("Clear %d completed %s", completed, noun)
}

func newMarkupData(v tasklist.View) markupData {
	counts := map[tasklist.Filter]int{
		tasklist.FilterAll:       v.Counts.Total,
		tasklist.FilterActive:    v.Counts.Active,
		tasklist.FilterCompleted: v.Counts.Completed,
	}
	buttons := make([]filterButton, 0, len(tasklist.Filters))
	for _, f := range tasklist.Filters {
		buttons = append(buttons, filterButton{
			Value:  f,
			Label:  f.Label(),
			Count:  counts[f],
			Active: f == v.Filter,
		})
	}
	return markupData{
		View:       v,
		Filters:    buttons,
		ClearLabel: ClearLabel(v.Counts.Completed),
	}
}

// Markup renders v as the task list HTML fragment.
//
// Titles are emitted as escaped text: markup characters in a title show up
// literally and are never interpreted.
func Markup(v tasklist.View) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tasklistTmpl.ExecuteTemplate(&buf, "tasklist", newMarkupData(v)); err != nil {
		return "", fmt.Errorf("failed to render task list: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// HTMLContainer is the root element a controller renders into.
//
// Every Render replaces the previous markup entirely.
type HTMLContainer struct {
	mu     sync.RWMutex
	markup template.HTML
}

// NewHTMLContainer returns an empty container.
func NewHTMLContainer() *HTMLContainer {
	return &HTMLContainer{}
}

// Render regenerates the container markup from v.
func (c *HTMLContainer) Render(v tasklist.View) error {
	markup, err := Markup(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.markup = markup
	c.mu.Unlock()
	return nil
}

// InnerHTML returns the current markup.
func (c *HTMLContainer) InnerHTML() template.HTML {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.markup
}
