// Package server is a local stand-in for the remote task API. It serves the
// same four routes the board uses, backed by sqlite.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Joseda-hg/lazyboard/internal/db"
	"github.com/Joseda-hg/lazyboard/internal/model"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const maxTitleLen = 200

type Options struct {
	// Token, when set, must be presented as a bearer token on /tasks routes.
	Token  string
	Logger *zap.Logger
}

type Server struct {
	store    *db.Store
	token    string
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errResponse struct {
	Error   string       `json:"error"`
	Details []fieldError `json:"details,omitempty"`
}

func New(store *db.Store, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	registry := prometheus.NewRegistry()
	return &Server{
		store:    store,
		token:    strings.TrimSpace(opts.Token),
		log:      log,
		registry: registry,
		metrics:  newMetrics(registry),
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(requestLogger(s.log))
	r.Use(s.metrics.middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(bearerAuth(s.token))
		r.Get("/tasks", s.listTasks)
		r.Post("/tasks", s.createTask)
		r.Put("/tasks/{id}", s.updateTask)
		r.Delete("/tasks/{id}", s.deleteTask)
	})

	return r
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(r.Context())
	if err != nil {
		s.internalError(w, r, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var task model.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid_json"})
		return
	}
	if errs := validateTask(task); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errResponse{Error: "validation_error", Details: errs})
		return
	}

	created, err := s.store.CreateTask(r.Context(), task)
	if err != nil {
		s.internalError(w, r, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid_id"})
		return
	}

	var task model.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid_json"})
		return
	}
	if task.ID != "" && task.ID != id {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "id_mismatch"})
		return
	}
	task.ID = id
	if errs := validateTask(task); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errResponse{Error: "validation_error", Details: errs})
		return
	}

	updated, err := s.store.UpdateTask(r.Context(), task)
	if errors.Is(err, db.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errResponse{Error: "not_found"})
		return
	}
	if err != nil {
		s.internalError(w, r, "update task", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid_id"})
		return
	}

	err = s.store.DeleteTask(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errResponse{Error: "not_found"})
		return
	}
	if err != nil {
		s.internalError(w, r, "delete task", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.Error(op,
		zap.String("req_id", chimw.GetReqID(r.Context())),
		zap.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
}

func taskID(r *http.Request) (string, error) {
	value, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("missing id")
	}
	return value, nil
}

func validateTask(task model.Task) []fieldError {
	var errs []fieldError
	if strings.TrimSpace(task.Title) == "" {
		errs = append(errs, fieldError{Field: "title", Message: "title is required"})
	}
	if l := len(task.Title); l > maxTitleLen {
		errs = append(errs, fieldError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", maxTitleLen)})
	}
	if strings.TrimSpace(task.Description) == "" {
		errs = append(errs, fieldError{Field: "description", Message: "description is required"})
	}
	if strings.TrimSpace(string(task.Timestamp)) == "" {
		errs = append(errs, fieldError{Field: "timestamp", Message: "timestamp is required"})
	}
	if !task.Category.Valid() {
		errs = append(errs, fieldError{Field: "category", Message: "category must be To-Do, In Progress or Done"})
	}
	return errs
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
