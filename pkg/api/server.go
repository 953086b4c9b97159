package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/store"
)

// Server handles API requests. It shares the pipeline Runner with the CLI
// so both entry points behave identically.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates an API server. A nil store falls back to in-memory
// storage; a nil logger falls back to the runner's logger.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Handler builds the API routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/datasets", s.handleListDataSets)
		r.Get("/datasets/{name}/layout", s.handleDataSetLayout)
		r.Get("/datasets/{name}/render", s.handleDataSetRender)

		r.Post("/charts", s.handleSaveChart)
		r.Get("/charts", s.handleListCharts)
		r.Get("/charts/{id}/layout", s.handleChartLayout)
		r.Delete("/charts/{id}", s.handleDeleteChart)
	})

	return r
}

// errorEnvelope is the JSON shape for error responses.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}

	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
