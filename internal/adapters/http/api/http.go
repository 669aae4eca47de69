// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/okian/squadbook/internal/app"
	"github.com/okian/squadbook/internal/domain/model"
	"github.com/okian/squadbook/pkg/metrics"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Queries answers roster reads.
type Queries interface {
	Departments(ctx context.Context) ([]string, error)
	ActivePlayers(ctx context.Context, department string) ([]model.PlayerSummary, error)
}

// Submitter records match proposals.
type Submitter interface {
	Submit(ctx context.Context, p service.MatchProposal) (service.SubmissionResult, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires HTTP routes for the roster API.
type Server struct {
	healthHandler      *HealthHandler
	departmentsHandler *DepartmentsHandler
	playersHandler     *PlayersHandler
	teamHandler        *TeamHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(queries Queries, submitter Submitter, pinger Pinger) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(pinger),
		departmentsHandler: NewDepartmentsHandler(queries),
		playersHandler:     NewPlayersHandler(queries),
		teamHandler:        NewTeamHandler(submitter),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.With(MetricsMiddleware("healthz")).Get("/healthz", s.healthHandler.HandleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.With(MetricsMiddleware("departments")).Get("/departments", s.departmentsHandler.HandleGetDepartments)
		r.With(MetricsMiddleware("players")).Get("/players/{department}", s.playersHandler.HandleGetPlayers)
		r.With(MetricsMiddleware("team")).Post("/team", s.teamHandler.HandlePostTeam)
	})
}

type errorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err. Known rejections use their own text as the
// message; anything else falls back to fallback and exposes the cause.
func writeError(w http.ResponseWriter, fallback string, err error) {
	status, code, msg := classify(err)
	resp := errorResponse{Code: code, Message: msg}
	if msg == "" {
		resp.Message = fallback
	}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}

func classify(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, service.ErrMissingTeams):
		return http.StatusBadRequest, "missing_teams", service.ErrMissingTeams.Error()
	case errors.Is(err, service.ErrInvalidTeam):
		return http.StatusBadRequest, "invalid_team", service.ErrInvalidTeam.Error()
	case errors.Is(err, service.ErrUnknownDepartment):
		return http.StatusBadRequest, "unknown_department", service.ErrUnknownDepartment.Error()
	case errors.Is(err, service.ErrNoActivePlayers):
		return http.StatusNotFound, "not_found", service.ErrNoActivePlayers.Error()
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request", "Invalid request body"
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable", ""
	default:
		return http.StatusInternalServerError, "internal_error", ""
	}
}
