package tasklist

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JamesPrial/tasklist/internal/storage"
)

// Renderer receives a fresh View after every state change.
//
// A renderer replaces whatever it displayed before; it never patches.
type Renderer interface {
	Render(view View) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(view View) error

// Render calls f.
func (f RendererFunc) Render(view View) error { return f(view) }

// Counts summarizes the full, unfiltered list.
//
// Active + Completed == Total always holds.
type Counts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// View is a snapshot of everything a renderer needs.
type View struct {
	Filter Filter `json:"filter"`

	// Tasks are the tasks matching Filter, in insertion order.
	Tasks []Task `json:"tasks"`

	Counts Counts `json:"counts"`

	// EmptyMessage is set when Tasks is empty.
	EmptyMessage string `json:"emptyMessage,omitempty"`

	// Draft is the text the new-task input should hold. A rejected add
	// keeps what the user typed; a successful add clears it.
	Draft string `json:"draft,omitempty"`

	// FocusInput asks the renderer to focus the new-task input.
	FocusInput bool `json:"focusInput,omitempty"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithRenderer sets the renderer called after every state change.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithLogger sets the logger for storage and render failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = log }
}

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns one task list bound to one storage slot and one renderer.
//
// Every exported method is one atomic step: it mutates the in-memory list,
// persists it, and re-renders before returning. Methods are safe for
// concurrent use; calls are serialized.
type Controller struct {
	mu sync.Mutex

	store    storage.StorageBackend
	renderer Renderer
	log      logrus.FieldLogger
	now      func() time.Time

	tasks  []Task
	nextID int
	filter Filter

	draft string
	focus bool
}

// New creates a controller over store, loads the persisted list and
// renders it once.
func New(store storage.StorageBackend, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		now:    time.Now,
		tasks:  make([]Task, 0),
		nextID: 1,
		filter: FilterAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		c.log = quiet
	}
	c.log = c.log.WithField("component", "tasklist")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	c.render()
	return c
}

// Load re-reads the list from storage and re-renders.
//
// Unreadable or corrupt data yields an empty list. The id counter never
// moves backwards, so ids handed out earlier are not reused.
func (c *Controller) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	c.render()
}

func (c *Controller) load() {
	c.tasks = make([]Task, 0)

	raw, ok, err := c.store.GetItem(StorageKey)
	switch {
	case err != nil:
		c.log.WithError(err).Warn("failed to read task list, starting empty")
	case !ok:
		c.log.Debug("no stored task list")
	default:
		tasks, err := decodeTasks(raw)
		if err != nil {
			c.log.WithError(err).Debug("discarding unreadable task list")
			break
		}
		c.tasks = tasks
	}

	next := 1
	for _, t := range c.tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	if next > c.nextID {
		c.nextID = next
	}
}

// persist writes the full list to the storage slot. Write failures are
// logged and otherwise ignored.
func (c *Controller) persist() {
	data, err := encodeTasks(c.tasks)
	if err != nil {
		c.log.WithError(err).Warn("failed to encode task list")
		return
	}
	if err := c.store.SetItem(StorageKey, data); err != nil {
		c.log.WithError(err).Warn("failed to persist task list")
	}
}

func (c *Controller) render() {
	if c.renderer == nil {
		return
	}
	if err := c.renderer.Render(c.view()); err != nil {
		c.log.WithError(err).Warn("failed to render task list")
	}
}

// resetInput drops any kept draft; the next render shows an empty,
// unfocused input.
func (c *Controller) resetInput() {
	c.draft = ""
	c.focus = false
}

// commit persists and re-renders after a mutation.
func (c *Controller) commit() {
	c.persist()
	c.render()
}

func (c *Controller) indexOf(id int) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a new active task titled with the trimmed title.
//
// A blank title changes nothing in the list: the input keeps its text and
// is focused again. Returns the new task and true on success.
func (c *Controller) Add(title string) (Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		c.draft = title
		c.focus = true
		c.render()
		return Task{}, false
	}

	task := Task{
		ID:        c.nextID,
		Title:     trimmed,
		Completed: false,
		CreatedAt: c.now(),
	}
	c.nextID++
	c.tasks = append(c.tasks, task)

	c.draft = ""
	c.focus = true
	c.commit()
	return task, true
}

// Toggle flips the completed flag of task id.
//
// Returns false, without persisting, if no task has that id.
func (c *Controller) Toggle(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.tasks[i].Completed = !c.tasks[i].Completed
	c.resetInput()
	c.commit()
	return true
}

// Delete removes task id. Deleting an unknown id still persists and
// re-renders; it returns false.
func (c *Controller) Delete(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i >= 0 {
		c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	}
	c.resetInput()
	c.commit()
	return i >= 0
}

// Edit asks prompter for a replacement title for task id.
//
// The prompt starts from the current title. A cancelled prompt or a reply
// that is blank after trimming leaves the task unchanged. prompter must not
// call back into the controller.
func (c *Controller) Edit(id int, prompter Prompter) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}

	value, ok := prompter.Prompt(EditPrompt, c.tasks[i].Title)
	if !ok {
		return false
	}
	title := strings.TrimSpace(value)
	if title == "" {
		return false
	}

	c.tasks[i].Title = title
	c.resetInput()
	c.commit()
	return true
}

// ClearCompleted removes every completed task once confirmer agrees.
//
// Returns how many tasks were removed and whether the user confirmed.
// Declining changes nothing.
func (c *Controller) ClearCompleted(confirmer Confirmer) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !confirmer.Confirm(ClearCompletedQuery) {
		return 0, false
	}

	kept := make([]Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(c.tasks) - len(kept)
	c.tasks = kept

	c.resetInput()
	c.commit()
	return removed, true
}

// SetFilter changes the visible subset and re-renders. The filter is view
// state only and is never persisted. Unknown filters behave as FilterAll.
func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := ParseFilter(string(f)); err != nil {
		f = FilterAll
	}
	c.filter = f
	c.resetInput()
	c.render()
}

// Reset removes the storage slot and empties the list once confirmer
// agrees. The id counter is kept, so ids are still not reused while the
// controller lives. Returns how many tasks were dropped and whether the
// user confirmed.
func (c *Controller) Reset(confirmer Confirmer) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !confirmer.Confirm(ResetQuery) {
		return 0, false
	}

	removed := len(c.tasks)
	c.tasks = make([]Task, 0)
	if err := c.store.RemoveItem(StorageKey); err != nil {
		c.log.WithError(err).Warn("failed to remove task list")
	}
	c.resetInput()
	c.render()
	return removed, true
}

// Filter returns the current filter.
func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Tasks returns a copy of the full list in insertion order.
func (c *Controller) Tasks() []Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Task returns the task with the given id.
func (c *Controller) Task(id int) (Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		return c.tasks[i], true
	}
	return Task{}, false
}

// View returns the current snapshot without rendering.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

// ViewWith returns a snapshot as if f were the current filter. The
// controller's own filter is left alone.
func (c *Controller) ViewWith(f Filter) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := ParseFilter(string(f)); err != nil {
		f = FilterAll
	}
	saved := c.filter
	c.filter = f
	v := c.view()
	c.filter = saved
	return v
}

// Render pushes the current snapshot to the renderer.
func (c *Controller) Render() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render()
}

func (c *Controller) view() View {
	v := View{
		Filter:     c.filter,
		Tasks:      make([]Task, 0, len(c.tasks)),
		Draft:      c.draft,
		FocusInput: c.focus,
	}
	for _, t := range c.tasks {
		if t.Completed {
			v.Counts.Completed++
		}
		if c.filter.Match(t) {
			v.Tasks = append(v.Tasks, t)
		}
	}
	v.Counts.Total = len(c.tasks)
	v.Counts.Active = v.Counts.Total - v.Counts.Completed
	if len(v.Tasks) == 0 {
		v.EmptyMessage = c.filter.EmptyMessage()
	}
	return v
}
