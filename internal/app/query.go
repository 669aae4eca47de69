// Package service implements the roster queries and match submissions
// that back the HTTP API.
package service

import (
	"context"
	"strings"

	"github.com/okian/squadbook/internal/domain/model"
	"github.com/okian/squadbook/pkg/logger"
	"github.com/okian/squadbook/pkg/metrics"
)

// PlayerReader is the read side of the player store.
type PlayerReader interface {
	Departments(ctx context.Context) ([]string, error)
	ActivePlayers(ctx context.Context, department string) ([]model.PlayerSummary, error)
}

// QueryService answers roster questions.
type QueryService struct {
	players PlayerReader
	logger  logger.Logger
}

// NewQueryService creates a query service over players.
func NewQueryService(players PlayerReader, opts ...Option) *QueryService {
	o := buildOptions("query", opts)
	return &QueryService{players: players, logger: o.logger}
}

// Departments lists the distinct department names across all players.
func (s *QueryService) Departments(ctx context.Context) ([]string, error) {
	departments, err := s.players.Departments(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list departments", logger.Error(err))
		return nil, err
	}
	if departments == nil {
		departments = []string{}
	}
	return departments, nil
}

// ActivePlayers lists the active players of department. The department is
// matched ignoring case and surrounding whitespace. An empty roster is
// reported as ErrNoActivePlayers.
func (s *QueryService) ActivePlayers(ctx context.Context, department string) ([]model.PlayerSummary, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		metrics.RecordPlayerLookupEmpty()
		return nil, ErrNoActivePlayers
	}

	players, err := s.players.ActivePlayers(ctx, department)
	if err != nil {
		s.logger.Error(ctx, "failed to list active players",
			logger.String("department", department), logger.Error(err))
		return nil, err
	}
	if len(players) == 0 {
		metrics.RecordPlayerLookupEmpty()
		s.logger.Debug(ctx, "no active players", logger.String("department", department))
		return nil, ErrNoActivePlayers
	}
	return players, nil
}
