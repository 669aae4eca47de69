package api

import (
	"encoding/json"
	"net/http"

	service "github.com/okian/squadbook/internal/app"
)

// teamRequest mirrors one side of the POST /api/team body.
type teamRequest struct {
	Department string   `json:"department"`
	Players    []string `json:"players"`
}

// submitTeamsRequest mirrors the OpenAPI schema for POST /api/team.
type submitTeamsRequest struct {
	TeamA *teamRequest `json:"teamA"`
	TeamB *teamRequest `json:"teamB"`
}

func (req submitTeamsRequest) proposal() service.MatchProposal {
	return service.MatchProposal{
		TeamA: req.TeamA.proposal(),
		TeamB: req.TeamB.proposal(),
	}
}

func (t *teamRequest) proposal() *service.TeamProposal {
	if t == nil {
		return nil
	}
	return &service.TeamProposal{Department: t.Department, Players: t.Players}
}

type submitTeamsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	MatchID string `json:"matchId"`
	TeamA   string `json:"teamA"`
	TeamB   string `json:"teamB"`
}

// TeamHandler records match proposals.
type TeamHandler struct {
	submitter Submitter
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(submitter Submitter) *TeamHandler {
	return &TeamHandler{submitter: submitter}
}

// HandlePostTeam handles POST /api/team requests.
func (h *TeamHandler) HandlePostTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_team"

	var req submitTeamsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, "Invalid request body", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.submitter.Submit(r.Context(), req.proposal())
	if err != nil {
		failed := false
		if status, _, _ := classify(err); status >= http.StatusInternalServerError {
			writeJSON(w, status, errorResponse{
				Success: &failed,
				Code:    "internal_error",
				Message: "Failed to save teams",
				Error:   Wrap(op, err).Error(),
			})
			return
		}
		writeError(w, "", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, submitTeamsResponse{
		Success: true,
		Message: "Teams submitted successfully!",
		MatchID: res.MatchID.Hex(),
		TeamA:   res.TeamA,
		TeamB:   res.TeamB,
	})
}
