package service

import "errors"

// Rejections reported by the services. The messages double as the
// user-facing text of the API error body.
var (
	ErrMissingTeams      = errors.New("Both teams are required")
	ErrInvalidTeam       = errors.New("Invalid team structure. Each team must have a department and 11 valid player IDs")
	ErrUnknownDepartment = errors.New("One or both departments are invalid")
	ErrNoActivePlayers   = errors.New("No active players found for this department")
)

// IsValidation reports whether err is a rejection of the caller's input
// rather than an infrastructure failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingTeams) ||
		errors.Is(err, ErrInvalidTeam) ||
		errors.Is(err, ErrUnknownDepartment)
}
