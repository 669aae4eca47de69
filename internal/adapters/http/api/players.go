package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// PlayersHandler serves the active roster of a department.
type PlayersHandler struct {
	queries Queries
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(queries Queries) *PlayersHandler {
	return &PlayersHandler{queries: queries}
}

// HandleGetPlayers handles GET /api/players/{department} requests.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_players"

	department := chi.URLParam(r, "department")
	// chi routes on the escaped path when one is present.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(department)
		if err != nil {
			writeError(w, "Invalid department", WrapKind(op, ErrBadRequest, err))
			return
		}
		department = unescaped
	}

	players, err := h.queries.ActivePlayers(r.Context(), department)
	if err != nil {
		writeError(w, "Server error while fetching players", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, players)
}
