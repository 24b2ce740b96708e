// Package http exposes condition documents and the edit pipeline over a
// JSON API, so a browser-based authoring frontend can drive the same
// intents the terminal editor uses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espalier/internal/editor"
	"github.com/aretw0/espalier/pkg/condition"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Server serves condition documents from a DocumentStore and applies
// edit intents against them.
type Server struct {
	store   ports.DocumentStore
	vars    []domain.VariableDefinition
	scripts []domain.ScriptDefinition
	logger  *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithDefinitions supplies the variable and script sets used for
// integrity checks and leaf validation.
func WithDefinitions(vars []domain.VariableDefinition, scripts []domain.ScriptDefinition) Option {
	return func(s *Server) {
		s.vars = vars
		s.scripts = scripts
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the condition API.
func NewHandler(store ports.DocumentStore, opts ...Option) http.Handler {
	server := &Server{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/conditions", server.List)
	r.Get("/conditions/{id}", server.Get)
	r.Put("/conditions/{id}", server.Put)
	r.Delete("/conditions/{id}", server.Delete)
	r.Post("/conditions/{id}/intents", server.ApplyIntent)
	r.Get("/conditions/{id}/warnings", server.Warnings)
	r.Handle("/metrics", promhttp.Handler())

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DocumentResponse is the JSON shape of a stored condition.
type DocumentResponse struct {
	ID        string                      `json:"id"`
	Condition *domain.ConditionExpression `json:"condition"`
}

// IntentRequest is one edit to apply against a stored condition.
// Confirm resolves the guarded-delete prompt in the same request.
type IntentRequest struct {
	Intent  string         `json:"intent"`
	Args    map[string]any `json:"args"`
	Confirm bool           `json:"confirm,omitempty"`
}

// IntentResponse reports the condition after the edit. Pending is set
// when a guarded delete still awaits confirmation; in that case the
// stored document is unchanged.
type IntentResponse struct {
	Condition *domain.ConditionExpression `json:"condition"`
	Pending   *PendingResponse            `json:"pending,omitempty"`
}

// PendingResponse describes a guarded delete awaiting confirmation.
type PendingResponse struct {
	Path  []int `json:"path"`
	Count int   `json:"count"`
}

// WarningsResponse is the integrity report for a stored condition.
type WarningsResponse struct {
	ID       string                 `json:"id"`
	Warnings []condition.RefWarning `json:"warnings"`
}

// List handles GET /conditions.
func (s *Server) List(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("List failed", "error", err)
		return
	}
	s.respond(w, map[string][]string{"ids": ids})
}

// Get handles GET /conditions/{id}.
func (s *Server) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	expr, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			http.Error(w, "Condition not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Load failed", "id", id, "error", err)
		return
	}
	s.respond(w, DocumentResponse{ID: id, Condition: expr})
}

// Put handles PUT /conditions/{id}, replacing the whole tree. A null
// body stores "always true".
func (s *Server) Put(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var expr *domain.ConditionExpression
	if err := json.NewDecoder(r.Body).Decode(&expr); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Put: Invalid request body", "id", id, "error", err)
		return
	}

	if err := s.store.Save(r.Context(), id, expr); err != nil {
		http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Save failed", "id", id, "error", err)
		return
	}
	documentsSaved.Inc()
	s.respond(w, DocumentResponse{ID: id, Condition: expr})
}

// Delete handles DELETE /conditions/{id}.
func (s *Server) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Delete failed", "id", id, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyIntent handles POST /conditions/{id}/intents. The request names
// an intent and its arguments; the edit runs through the same session
// pipeline the terminal editor uses, and the result is persisted only
// when a commit actually happened.
func (s *Server) ApplyIntent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("ApplyIntent: Invalid request body", "id", id, "error", err)
		return
	}

	intent, err := editor.DecodeIntent(body.Intent, body.Args)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid intent: %v", err), http.StatusBadRequest)
		s.logger.Warn("ApplyIntent: Invalid intent", "id", id, "intent", body.Intent, "error", err)
		intentsTotal.WithLabelValues(body.Intent, "invalid").Inc()
		return
	}

	expr, err := s.store.Load(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrDocumentNotFound) {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ApplyIntent: Load failed", "id", id, "error", err)
		return
	}

	changed := false
	session := editor.NewSession(expr,
		editor.WithVariables(s.vars),
		editor.WithScripts(s.scripts),
		editor.WithLogger(s.logger),
		editor.WithOnChange(func(root *domain.ConditionExpression) {
			expr = root
			changed = true
		}),
	)

	if err := session.Apply(intent); err != nil {
		http.Error(w, fmt.Sprintf("Intent rejected: %v", err), http.StatusUnprocessableEntity)
		intentsTotal.WithLabelValues(body.Intent, "rejected").Inc()
		return
	}

	// Guarded deletes: resolve in-request when confirmed, otherwise
	// report the pending state without touching the store.
	if pending := session.Pending(); pending != nil {
		if !body.Confirm {
			intentsTotal.WithLabelValues(body.Intent, "pending").Inc()
			s.respond(w, IntentResponse{
				Condition: session.Root(),
				Pending:   &PendingResponse{Path: pending.Path, Count: pending.Count},
			})
			return
		}
		if err := session.Confirm(); err != nil {
			http.Error(w, fmt.Sprintf("Confirm error: %v", err), http.StatusInternalServerError)
			s.logger.Error("ApplyIntent: Confirm failed", "id", id, "error", err)
			return
		}
	}

	if changed {
		if err := s.store.Save(r.Context(), id, expr); err != nil {
			http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
			s.logger.Error("ApplyIntent: Save failed", "id", id, "error", err)
			return
		}
		documentsSaved.Inc()
	}
	intentsTotal.WithLabelValues(body.Intent, "applied").Inc()
	s.respond(w, IntentResponse{Condition: session.Root()})
}

// Warnings handles GET /conditions/{id}/warnings.
func (s *Server) Warnings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	expr, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			http.Error(w, "Condition not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Warnings: Load failed", "id", id, "error", err)
		return
	}

	warnings := condition.Inspect(expr, s.vars, s.scripts)
	if warnings == nil {
		warnings = []condition.RefWarning{}
	}
	s.respond(w, WarningsResponse{ID: id, Warnings: warnings})
}

func (s *Server) respond(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}
