package tasklist_test

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JamesPrial/tasklist/internal/storage"
	"github.com/JamesPrial/tasklist/internal/tasklist"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2025, 1, 18, 9, 30, 0, 123_000_000, time.UTC)

// recorder is a Renderer that keeps every view it receives.
type recorder struct {
	views []tasklist.View
}

func (r *recorder) Render(v tasklist.View) error {
	r.views = append(r.views, v)
	return nil
}

func (r *recorder) last(t *testing.T) tasklist.View {
	t.Helper()
	if len(r.views) == 0 {
		t.Fatal("renderer was never called")
	}
	return r.views[len(r.views)-1]
}

// failingStore fails every call.
type failingStore struct{}

func (failingStore) GetItem(string) (string, bool, error) { return "", false, errors.New("boom") }
func (failingStore) SetItem(string, string) error         { return errors.New("boom") }
func (failingStore) RemoveItem(string) error              { return errors.New("boom") }

// countingStore wraps MemoryBackend and counts writes.
type countingStore struct {
	*storage.MemoryBackend
	writes int
}

func (s *countingStore) SetItem(key, value string) error {
	s.writes++
	return s.MemoryBackend.SetItem(key, value)
}

func newController(t *testing.T, store storage.StorageBackend) (*tasklist.Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c := tasklist.New(store,
		tasklist.WithRenderer(rec),
		tasklist.WithClock(func() time.Time { return fixedNow }),
	)
	return c, rec
}

func mustAdd(t *testing.T, c *tasklist.Controller, title string) tasklist.Task {
	t.Helper()
	task, ok := c.Add(title)
	if !ok {
		t.Fatalf("Add(%q) rejected", title)
	}
	return task
}

func titles(tasks []tasklist.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func assertCountsConsistent(t *testing.T, v tasklist.View) {
	t.Helper()
	if v.Counts.Active+v.Counts.Completed != v.Counts.Total {
		t.Errorf("counts inconsistent: active %d + completed %d != total %d",
			v.Counts.Active, v.Counts.Completed, v.Counts.Total)
	}
}

// ---------------------------------------------------------------------------
// New / Load
// ---------------------------------------------------------------------------

func Test_New_EmptyStorageRendersEmptyState(t *testing.T) {
	t.Parallel()

	_, rec := newController(t, storage.NewMemoryBackend())
	v := rec.last(t)

	if len(v.Tasks) != 0 {
		t.Errorf("len(Tasks) = %d, want 0", len(v.Tasks))
	}
	if v.Filter != tasklist.FilterAll {
		t.Errorf("Filter = %q, want all", v.Filter)
	}
	if v.EmptyMessage != "No tasks yet. Add one to get started!" {
		t.Errorf("EmptyMessage = %q", v.EmptyMessage)
	}
}

func Test_Load_CorruptValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "not json", value: "{not json"},
		{name: "json object", value: `{"id":1}`},
		{name: "json null", value: "null"},
		{name: "array of strings", value: `["a","b"]`},
		{name: "empty string", value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := storage.NewMemoryBackend()
			_ = store.SetItem(tasklist.StorageKey, tt.value)

			c, _ := newController(t, store)
			if got := c.Tasks(); len(got) != 0 {
				t.Fatalf("Tasks() = %v, want empty", got)
			}
			if task := mustAdd(t, c, "first"); task.ID != 1 {
				t.Errorf("first id after corrupt load = %d, want 1", task.ID)
			}
		})
	}
}

func Test_Load_UnreadableCreatedAtKeepsTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		createdAt string
	}{
		{name: "not a date", createdAt: `"yesterday"`},
		{name: "number", createdAt: `1737192600000`},
		{name: "null", createdAt: `null`},
		{name: "object", createdAt: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := storage.NewMemoryBackend()
			_ = store.SetItem(tasklist.StorageKey,
				`[{"id":1,"title":"keep me","completed":true,"createdAt":"2025-01-18T09:30:00.000Z"},`+
					`{"id":2,"title":"odd date","completed":false,"createdAt":`+tt.createdAt+`}]`)

			c, _ := newController(t, store)
			tasks := c.Tasks()
			if len(tasks) != 2 {
				t.Fatalf("Tasks() = %+v, want both tasks kept", tasks)
			}
			if tasks[0].Title != "keep me" || !tasks[0].Completed || tasks[0].CreatedAt.IsZero() {
				t.Errorf("tasks[0] = %+v", tasks[0])
			}
			if tasks[1].ID != 2 || tasks[1].Title != "odd date" || !tasks[1].CreatedAt.IsZero() {
				t.Errorf("tasks[1] = %+v, want id 2 with zero createdAt", tasks[1])
			}

			// The next write keeps the earlier tasks.
			if task := mustAdd(t, c, "new"); task.ID != 3 {
				t.Errorf("new id = %d, want 3", task.ID)
			}
			raw, _, _ := store.GetItem(tasklist.StorageKey)
			for _, want := range []string{`"keep me"`, `"odd date"`, `"new"`} {
				if !strings.Contains(raw, want) {
					t.Errorf("slot missing %s: %s", want, raw)
				}
			}
		})
	}
}

func Test_Load_StorageErrorStartsEmpty(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, failingStore{})
	if len(c.Tasks()) != 0 {
		t.Fatal("expected empty list when storage read fails")
	}

	// Writes fail too, but the in-memory list still changes.
	mustAdd(t, c, "still works")
	if got := len(c.Tasks()); got != 1 {
		t.Errorf("len(Tasks) = %d, want 1", got)
	}
}

func Test_Load_NextIDFollowsMaxID(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryBackend()
	_ = store.SetItem(tasklist.StorageKey,
		`[{"id":7,"title":"a","completed":false,"createdAt":"2024-01-18T00:00:00.000Z"},
		  {"id":3,"title":"b","completed":true,"createdAt":"2024-01-18T00:00:00.000Z"}]`)

	c, _ := newController(t, store)
	if task := mustAdd(t, c, "c"); task.ID != 8 {
		t.Errorf("new id = %d, want 8", task.ID)
	}
}

func Test_Load_ReloadNeverReusesIDs(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryBackend()
	c, _ := newController(t, store)
	mustAdd(t, c, "one")
	two := mustAdd(t, c, "two")
	c.Delete(two.ID)

	c.Load()
	if task := mustAdd(t, c, "three"); task.ID <= two.ID {
		t.Errorf("id after reload = %d, want > %d", task.ID, two.ID)
	}
}

func Test_PersistLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryBackend()
	c, _ := newController(t, store)
	a := mustAdd(t, c, "write tests")
	b := mustAdd(t, c, "ship it")
	c.Toggle(a.ID)

	fresh, _ := newController(t, store)
	got := fresh.Tasks()
	if len(got) != 2 {
		t.Fatalf("reloaded %d tasks, want 2", len(got))
	}
	want := []tasklist.Task{
		{ID: a.ID, Title: "write tests", Completed: true, CreatedAt: fixedNow},
		{ID: b.ID, Title: "ship it", Completed: false, CreatedAt: fixedNow},
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Title != want[i].Title || got[i].Completed != want[i].Completed {
			t.Errorf("task %d = %+v, want %+v", i, got[i], want[i])
		}
		if !got[i].CreatedAt.Equal(want[i].CreatedAt) {
			t.Errorf("task %d CreatedAt = %v, want %v", i, got[i].CreatedAt, want[i].CreatedAt)
		}
	}
}

func Test_Persist_WireFormat(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryBackend()
	c, _ := newController(t, store)
	mustAdd(t, c, "  padded  ")

	raw, ok, _ := store.GetItem(tasklist.StorageKey)
	if !ok {
		t.Fatal("nothing persisted under todos")
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("stored value is not a JSON array: %v\n%s", err, raw)
	}
	if len(decoded) != 1 {
		t.Fatalf("stored %d items, want 1", len(decoded))
	}
	item := decoded[0]
	if item["title"] != "padded" {
		t.Errorf("title = %v, want trimmed", item["title"])
	}
	if item["createdAt"] != "2025-01-18T09:30:00.123Z" {
		t.Errorf("createdAt = %v, want ISO string with millis", item["createdAt"])
	}
	if item["id"] != float64(1) || item["completed"] != false {
		t.Errorf("unexpected item %v", item)
	}
}

// ---------------------------------------------------------------------------
// Add
// ---------------------------------------------------------------------------

func Test_Add_IDsStrictlyIncrease(t *testing.T) {
	t.Parallel()

	c, rec := newController(t, storage.NewMemoryBackend())
	last := 0
	for i, title := range []string{"a", "b", "c", "d", "e"} {
		task := mustAdd(t, c, title)
		if task.ID <= last {
			t.Errorf("add %d: id %d not greater than %d", i, task.ID, last)
		}
		last = task.ID
		if got := rec.last(t).Counts.Total; got != i+1 {
			t.Errorf("after %d adds Total = %d", i+1, got)
		}
	}
}

func Test_Add_WhitespaceIsNoOp(t *testing.T) {
	t.Parallel()

	store := &countingStore{MemoryBackend: storage.NewMemoryBackend()}
	c, rec := newController(t, store)
	mustAdd(t, c, "existing")
	writes := store.writes

	if _, ok := c.Add("   "); ok {
		t.Fatal("Add of whitespace title accepted")
	}
	if got := len(c.Tasks()); got != 1 {
		t.Errorf("len(Tasks) = %d, want 1", got)
	}
	if store.writes != writes {
		t.Errorf("whitespace add persisted (%d writes, want %d)", store.writes, writes)
	}
	v := rec.last(t)
	if v.Draft != "   " {
		t.Errorf("Draft = %q, want input kept", v.Draft)
	}
	if !v.FocusInput {
		t.Error("FocusInput = false, want input refocused")
	}
}

func Test_Add_SuccessClearsDraft(t *testing.T) {
	t.Parallel()

	c, rec := newController(t, storage.NewMemoryBackend())
	c.Add("")
	mustAdd(t, c, "real")

	if v := rec.last(t); v.Draft != "" {
		t.Errorf("Draft = %q, want cleared", v.Draft)
	}
}

func Test_RejectedDraft_ClearedByNextChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		action func(c *tasklist.Controller)
	}{
		{name: "toggle", action: func(c *tasklist.Controller) { c.Toggle(1) }},
		{name: "delete", action: func(c *tasklist.Controller) { c.Delete(1) }},
		{name: "edit", action: func(c *tasklist.Controller) { c.Edit(1, tasklist.Answer("b")) }},
		{name: "clear completed", action: func(c *tasklist.Controller) { c.ClearCompleted(tasklist.Accept) }},
		{name: "set filter", action: func(c *tasklist.Controller) { c.SetFilter(tasklist.FilterActive) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, rec := newController(t, storage.NewMemoryBackend())
			mustAdd(t, c, "a")
			c.Add("   ")
			if v := rec.last(t); v.Draft != "   " {
				t.Fatalf("Draft = %q, want kept after rejected add", v.Draft)
			}

			tt.action(c)
			v := rec.last(t)
			if v.Draft != "" || v.FocusInput {
				t.Errorf("after %s Draft = %q FocusInput = %v, want cleared", tt.name, v.Draft, v.FocusInput)
			}
			if c.View().Draft != "" {
				t.Errorf("View().Draft = %q, want cleared", c.View().Draft)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Toggle / Delete
// ---------------------------------------------------------------------------

func Test_Toggle_TwiceRestoresAndCountsStayConsistent(t *testing.T) {
	t.Parallel()

	c, rec := newController(t, storage.NewMemoryBackend())
	a := mustAdd(t, c, "a")
	mustAdd(t, c, "b")

	for step := 0; step < 2; step++ {
		if !c.Toggle(a.ID) {
			t.Fatalf("Toggle(%d) = false", a.ID)
		}
		assertCountsConsistent(t, rec.last(t))
	}

	got, _ := c.Task(a.ID)
	if got.Completed {
		t.Error("task completed after two toggles, want original state")
	}
}

func Test_Toggle_UnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	store := &countingStore{MemoryBackend: storage.NewMemoryBackend()}
	c, _ := newController(t, store)
	mustAdd(t, c, "a")
	writes := store.writes

	if c.Toggle(999) {
		t.Error("Toggle(999) = true, want false")
	}
	if store.writes != writes {
		t.Error("Toggle of unknown id persisted")
	}
}

func Test_Delete_UnknownIDDoesNotPanic(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, storage.NewMemoryBackend())
	mustAdd(t, c, "a")
	if c.Delete(42) {
		t.Error("Delete(42) = true, want false")
	}
	if got := len(c.Tasks()); got != 1 {
		t.Errorf("len(Tasks) = %d, want 1", got)
	}
}

func Test_Delete_LastCompletedShowsEmptyState(t *testing.T) {
	t.Parallel()

	c, rec := newController(t, storage.NewMemoryBackend())
	done := mustAdd(t, c, "done")
	mustAdd(t, c, "open")
	c.Toggle(done.ID)
	c.SetFilter(tasklist.FilterCompleted)

	c.Delete(done.ID)

	v := rec.last(t)
	if len(v.Tasks) != 0 {
		t.Fatalf("completed view has %d tasks, want 0", len(v.Tasks))
	}
	if v.EmptyMessage != "No completed tasks yet. Keep working!" {
		t.Errorf("EmptyMessage = %q", v.EmptyMessage)
	}
}

// ---------------------------------------------------------------------------
// Edit
// ---------------------------------------------------------------------------

func Test_Edit_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		prompter  tasklist.Prompter
		wantOK    bool
		wantTitle string
	}{
		{name: "cancelled", prompter: tasklist.Cancelled, wantOK: false, wantTitle: "original"},
		{name: "blank", prompter: tasklist.Answer("   "), wantOK: false, wantTitle: "original"},
		{name: "empty", prompter: tasklist.Answer(""), wantOK: false, wantTitle: "original"},
		{name: "replaced and trimmed", prompter: tasklist.Answer("  renamed "), wantOK: true, wantTitle: "renamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newController(t, storage.NewMemoryBackend())
			task := mustAdd(t, c, "original")

			if got := c.Edit(task.ID, tt.prompter); got != tt.wantOK {
				t.Errorf("Edit() = %v, want %v", got, tt.wantOK)
			}
			got, _ := c.Task(task.ID)
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func Test_Edit_PromptSeededWithCurrentTitle(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, storage.NewMemoryBackend())
	task := mustAdd(t, c, "seed me")

	var gotMessage, gotInitial string
	c.Edit(task.ID, tasklist.PromptFunc(func(message, initial string) (string, bool) {
		gotMessage, gotInitial = message, initial
		return "", false
	}))

	if gotMessage != tasklist.EditPrompt || gotInitial != "seed me" {
		t.Errorf("prompt(%q, %q), want (%q, %q)", gotMessage, gotInitial, tasklist.EditPrompt, "seed me")
	}
}

func Test_Edit_UnknownIDNeverPrompts(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, storage.NewMemoryBackend())
	prompted := false
	c.Edit(5, tasklist.PromptFunc(func(string, string) (string, bool) {
		prompted = true
		return "x", true
	}))
	if prompted {
		t.Error("Edit of unknown id prompted the user")
	}
}

// ---------------------------------------------------------------------------
// ClearCompleted
// ---------------------------------------------------------------------------

func Test_ClearCompleted_Declined(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, storage.NewMemoryBackend())
	a := mustAdd(t, c, "a")
	mustAdd(t, c, "b")
	c.Toggle(a.ID)

	removed, confirmed := c.ClearCompleted(tasklist.Decline)
	if confirmed || removed != 0 {
		t.Errorf("ClearCompleted(Decline) = (%d, %v), want (0, false)", removed, confirmed)
	}
	if got := titles(c.Tasks()); strings.Join(got, ",") != "a,b" {
		t.Errorf("tasks = %v, want [a b]", got)
	}
}

func Test_ClearCompleted_AcceptedKeepsOrder(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryBackend()
	c, _ := newController(t, store)
	var ids []int
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		ids = append(ids, mustAdd(t, c, title).ID)
	}
	c.Toggle(ids[1])
	c.Toggle(ids[3])

	var asked string
	removed, confirmed := c.ClearCompleted(tasklist.ConfirmFunc(func(msg string) bool {
		asked = msg
		return true
	}))
	if !confirmed || removed != 2 {
		t.Errorf("ClearCompleted = (%d, %v), want (2, true)", removed, confirmed)
	}
	if asked != tasklist.ClearCompletedQuery {
		t.Errorf("confirmation text = %q", asked)
	}
	if got := strings.Join(titles(c.Tasks()), ","); got != "a,c,e" {
		t.Errorf("remaining = %s, want a,c,e", got)
	}

	fresh, _ := newController(t, store)
	if got := strings.Join(titles(fresh.Tasks()), ","); got != "a,c,e" {
		t.Errorf("persisted remaining = %s, want a,c,e", got)
	}
}

// ---------------------------------------------------------------------------
// SetFilter / View
// ---------------------------------------------------------------------------

func Test_SetFilter_Views(t *testing.T) {
	t.Parallel()

	c, rec := newController(t, storage.NewMemoryBackend())
	done := mustAdd(t, c, "done")
	mustAdd(t, c, "open")
	c.Toggle(done.ID)

	tests := []struct {
		filter tasklist.Filter
		want   string
	}{
		{filter: tasklist.FilterActive, want: "open"},
		{filter: tasklist.FilterCompleted, want: "done"},
		{filter: tasklist.FilterAll, want: "done,open"},
	}

	for _, tt := range tests {
		c.SetFilter(tt.filter)
		v := rec.last(t)
		if got := strings.Join(titles(v.Tasks), ","); got != tt.want {
			t.Errorf("filter %s shows %q, want %q", tt.filter, got, tt.want)
		}
		if v.Counts != (tasklist.Counts{Total: 2, Active: 1, Completed: 1}) {
			t.Errorf("filter %s counts = %+v", tt.filter, v.Counts)
		}
	}
}

func Test_SetFilter_DoesNotPersist(t *testing.T) {
	t.Parallel()

	store := &countingStore{MemoryBackend: storage.NewMemoryBackend()}
	c, _ := newController(t, store)
	mustAdd(t, c, "a")
	writes := store.writes

	c.SetFilter(tasklist.FilterCompleted)
	c.SetFilter(tasklist.FilterActive)

	if store.writes != writes {
		t.Errorf("SetFilter persisted %d times", store.writes-writes)
	}

	fresh, _ := newController(t, store)
	if fresh.Filter() != tasklist.FilterAll {
		t.Errorf("reloaded filter = %q, want all", fresh.Filter())
	}
}

func Test_SetFilter_UnknownFallsBackToAll(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, storage.NewMemoryBackend())
	c.SetFilter(tasklist.Filter("bogus"))
	if c.Filter() != tasklist.FilterAll {
		t.Errorf("Filter() = %q, want all", c.Filter())
	}
}

func Test_View_EmptyMessagePerFilter(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, storage.NewMemoryBackend())
	want := map[tasklist.Filter]string{
		tasklist.FilterAll:       "No tasks yet. Add one to get started!",
		tasklist.FilterActive:    "You're all caught up! No active tasks.",
		tasklist.FilterCompleted: "No completed tasks yet. Keep working!",
	}
	for f, msg := range want {
		c.SetFilter(f)
		if got := c.View().EmptyMessage; got != msg {
			t.Errorf("filter %s EmptyMessage = %q, want %q", f, got, msg)
		}
	}
}

func Test_Title_KeepsMarkupCharacters(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryBackend()
	c, _ := newController(t, store)
	mustAdd(t, c, "<script>alert(1)</script>")

	fresh, _ := newController(t, store)
	if got := fresh.Tasks()[0].Title; got != "<script>alert(1)</script>" {
		t.Errorf("stored title = %q, want raw markup characters", got)
	}
}

// ---------------------------------------------------------------------------
// ViewWith
// ---------------------------------------------------------------------------

func Test_ViewWith_LeavesFilterAlone(t *testing.T) {
	t.Parallel()

	store := &countingStore{MemoryBackend: storage.NewMemoryBackend()}
	c, rec := newController(t, store)
	mustAdd(t, c, "open")
	done := mustAdd(t, c, "done")
	c.Toggle(done.ID)
	renders, writes := len(rec.views), store.writes

	v := c.ViewWith(tasklist.FilterCompleted)
	if v.Filter != tasklist.FilterCompleted || len(v.Tasks) != 1 || v.Tasks[0].ID != done.ID {
		t.Errorf("ViewWith(completed) = %+v", v)
	}
	assertCountsConsistent(t, v)

	if c.Filter() != tasklist.FilterAll {
		t.Errorf("Filter() = %q after ViewWith, want all", c.Filter())
	}
	if len(rec.views) != renders || store.writes != writes {
		t.Error("ViewWith rendered or persisted")
	}

	if got := c.ViewWith("bogus"); got.Filter != tasklist.FilterAll || len(got.Tasks) != 2 {
		t.Errorf("ViewWith(bogus) = %+v, want the all view", got)
	}
}

// ---------------------------------------------------------------------------
// Concurrency
// ---------------------------------------------------------------------------

func Test_Controller_ConcurrentAddsGetDistinctIDs(t *testing.T) {
	t.Parallel()

	c := tasklist.New(storage.NewMemoryBackend())

	const n = 50
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, ok := c.Add("task")
			if ok {
				ids <- task.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d handed out twice", id)
		}
		seen[id] = true
	}
	if len(seen) != n || len(c.Tasks()) != n {
		t.Errorf("got %d ids and %d tasks, want %d", len(seen), len(c.Tasks()), n)
	}
}

// ---------------------------------------------------------------------------
// Reset
// ---------------------------------------------------------------------------

func Test_Reset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		confirmer tasklist.Confirmer
		wantTasks int
		wantSlot  bool
	}{
		{name: "accepted", confirmer: tasklist.Accept, wantTasks: 0, wantSlot: false},
		{name: "declined", confirmer: tasklist.Decline, wantTasks: 2, wantSlot: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := storage.NewMemoryBackend()
			c, rec := newController(t, store)
			mustAdd(t, c, "a")
			mustAdd(t, c, "b")

			var asked string
			removed, ok := c.Reset(tasklist.ConfirmFunc(func(msg string) bool {
				asked = msg
				return tt.confirmer.Confirm(msg)
			}))
			if asked != tasklist.ResetQuery {
				t.Errorf("asked %q, want %q", asked, tasklist.ResetQuery)
			}
			if got := len(c.Tasks()); got != tt.wantTasks {
				t.Errorf("len(Tasks) = %d, want %d", got, tt.wantTasks)
			}
			if _, found, _ := store.GetItem(tasklist.StorageKey); found != tt.wantSlot {
				t.Errorf("slot present = %v, want %v", found, tt.wantSlot)
			}
			if ok && (removed != 2 || rec.last(t).EmptyMessage != "No tasks yet. Add one to get started!") {
				t.Errorf("Reset() = %d, last view %+v", removed, rec.last(t))
			}
		})
	}
}

func Test_Reset_KeepsIDCounter(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, storage.NewMemoryBackend())
	mustAdd(t, c, "a")
	mustAdd(t, c, "b")
	c.Reset(tasklist.Accept)

	if task := mustAdd(t, c, "c"); task.ID != 3 {
		t.Errorf("id after reset = %d, want 3", task.ID)
	}
}

func Test_Reset_StorageErrorStillEmptiesList(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, failingStore{})
	mustAdd(t, c, "a")
	if _, ok := c.Reset(tasklist.Accept); !ok || len(c.Tasks()) != 0 {
		t.Errorf("Reset over failing store: ok=%v tasks=%v", ok, c.Tasks())
	}
}
