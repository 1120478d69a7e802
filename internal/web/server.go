// Package web serves the task list as a server-rendered HTML page.
//
// One Server owns one controller bound to one render.HTMLContainer. Every
// mutating route runs a single controller step and redirects back to the
// page, so the markup the browser sees is always the container's latest
// render.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/JamesPrial/tasklist/internal/render"
	"github.com/JamesPrial/tasklist/internal/tasklist"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// shutdownTimeout bounds graceful shutdown once the serve context ends.
const shutdownTimeout = 5 * time.Second

type indexData struct {
	Title     string
	Container template.HTML
}

type editData struct {
	Title   string
	ID      int
	Message string
	Value   string
}

type confirmData struct {
	Title   string
	Message string
}

// Server routes HTTP requests to a task list controller.
type Server struct {
	ctrl      *tasklist.Controller
	container *render.HTMLContainer
	log       logrus.FieldLogger
	router    *mux.Router
}

// NewServer builds the router for ctrl. container must be the renderer ctrl
// was created with; GET / serves its current markup.
func NewServer(ctrl *tasklist.Controller, container *render.HTMLContainer, log logrus.FieldLogger) *Server {
	s := &Server{
		ctrl:      ctrl,
		container: container,
		log:       log.WithField("component", "web"),
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.requestLogger)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/tasks", s.handleAdd).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/toggle", s.handleToggle).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/delete", s.handleDelete).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/edit", s.handleEditPrompt).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}/edit", s.handleEdit).Methods(http.MethodPost)
	r.HandleFunc("/clear-completed", s.handleClearPrompt).Methods(http.MethodGet)
	r.HandleFunc("/clear-completed", s.handleClear).Methods(http.MethodPost)
	r.HandleFunc("/filter", s.handleFilter).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks", s.handleAPITasks).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "index", indexData{
		Title:     "My Tasks",
		Container: s.container.InnerHTML(),
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.ctrl.Add(r.FormValue("title"))
	redirectHome(w, r)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	s.ctrl.Toggle(id)
	redirectHome(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	s.ctrl.Delete(id)
	redirectHome(w, r)
}

func (s *Server) handleEditPrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	task, found := s.ctrl.Task(id)
	if !found {
		redirectHome(w, r)
		return
	}
	s.renderPage(w, r, "edit", editData{
		Title:   "Edit todo",
		ID:      id,
		Message: tasklist.EditPrompt,
		Value:   task.Title,
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	prompter := tasklist.Cancelled
	if r.FormValue("action") == "save" {
		prompter = tasklist.Answer(r.FormValue("title"))
	}
	s.ctrl.Edit(id, prompter)
	redirectHome(w, r)
}

func (s *Server) handleClearPrompt(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "confirm", confirmData{
		Title:   "Clear completed",
		Message: tasklist.ClearCompletedQuery,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	confirmer := tasklist.Decline
	if r.FormValue("confirm") == "yes" {
		confirmer = tasklist.Accept
	}
	if removed, ok := s.ctrl.ClearCompleted(confirmer); ok {
		logger(r, s.log).WithField("removed", removed).Info("cleared completed tasks")
	}
	redirectHome(w, r)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.ctrl.SetFilter(tasklist.Filter(r.FormValue("filter")))
	redirectHome(w, r)
}

func (s *Server) handleAPITasks(w http.ResponseWriter, r *http.Request) {
	view := s.ctrl.View()
	if raw := r.URL.Query().Get("filter"); raw != "" {
		f, err := tasklist.ParseFilter(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		view = s.ctrl.ViewWith(f)
	}
	writeJSON(w, r, s.log, view)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.log, map[string]string{"status": "ok"})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.ExecuteTemplate(w, name, data); err != nil {
		logger(r, s.log).WithError(err).WithField("template", name).Error("failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// taskID parses the {id} route variable. Writes 400 and returns false when
// it is not a positive integer.
func taskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(mux.Vars(r)["id"])
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		http.Error(w, fmt.Sprintf("invalid task id: %q", raw), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger(r, log).WithError(err).Warn("failed to write response")
	}
}
