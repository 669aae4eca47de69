package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/okian/squadbook/internal/domain/model"
	"github.com/okian/squadbook/pkg/logger"
	"github.com/okian/squadbook/pkg/metrics"
)

// Rejection reasons recorded in metrics.
const (
	reasonMissingTeams = "missing_teams"
	reasonStructure    = "team_structure"
	reasonPlayerRef    = "player_reference"
	reasonDepartment   = "department"
)

// DepartmentMatcher resolves department names against the player records.
type DepartmentMatcher interface {
	MatchingDepartments(ctx context.Context, names []string) ([]string, error)
}

// MatchWriter persists matches.
type MatchWriter interface {
	InsertMatch(ctx context.Context, m *model.Match) error
}

// TeamProposal is one side of a submitted match as received from a client.
type TeamProposal struct {
	Department string   `validate:"required"`
	Players    []string `validate:"required,len=11"`
}

// MatchProposal is a pair of teams to be recorded as a match.
type MatchProposal struct {
	TeamA *TeamProposal
	TeamB *TeamProposal
}

// SubmissionResult describes a recorded match.
type SubmissionResult struct {
	MatchID primitive.ObjectID
	TeamA   string
	TeamB   string
}

// SubmissionService validates and records match proposals.
type SubmissionService struct {
	departments DepartmentMatcher
	matches     MatchWriter

	logger   logger.Logger
	clock    clockwork.Clock
	validate *validator.Validate
}

// NewSubmissionService creates a submission service.
func NewSubmissionService(departments DepartmentMatcher, matches MatchWriter, opts ...Option) *SubmissionService {
	o := buildOptions("submission", opts)
	return &SubmissionService{
		departments: departments,
		matches:     matches,
		logger:      o.logger,
		clock:       o.clock,
		validate:    validator.New(),
	}
}

// Submit validates p and records it as a new match. Validation stops at the
// first failing check. Every call that passes validation creates a new match.
func (s *SubmissionService) Submit(ctx context.Context, p MatchProposal) (SubmissionResult, error) {
	if p.TeamA == nil || p.TeamB == nil {
		return s.reject(ctx, reasonMissingTeams, ErrMissingTeams)
	}

	teamA := normalize(p.TeamA)
	teamB := normalize(p.TeamB)

	if err := s.checkStructure("teamA", teamA); err != nil {
		return s.reject(ctx, reasonStructure, err)
	}
	if err := s.checkStructure("teamB", teamB); err != nil {
		return s.reject(ctx, reasonStructure, err)
	}

	refsA, err := model.ParsePlayerRefs(teamA.Players)
	if err != nil {
		return s.reject(ctx, reasonPlayerRef, fmt.Errorf("%w: teamA: %w", ErrInvalidTeam, err))
	}
	refsB, err := model.ParsePlayerRefs(teamB.Players)
	if err != nil {
		return s.reject(ctx, reasonPlayerRef, fmt.Errorf("%w: teamB: %w", ErrInvalidTeam, err))
	}

	if strings.EqualFold(teamA.Department, teamB.Department) {
		return s.reject(ctx, reasonDepartment,
			fmt.Errorf("%w: both teams name %q", ErrUnknownDepartment, teamA.Department))
	}
	if err := s.checkDepartments(ctx, teamA.Department, teamB.Department); err != nil {
		if !IsValidation(err) {
			return SubmissionResult{}, err
		}
		return s.reject(ctx, reasonDepartment, err)
	}

	match := model.NewMatch(
		model.Team{Department: teamA.Department, Players: refsA},
		model.Team{Department: teamB.Department, Players: refsB},
		s.clock.Now().UTC(),
	)
	if err := s.matches.InsertMatch(ctx, match); err != nil {
		s.logger.Error(ctx, "failed to store match", logger.Error(err))
		return SubmissionResult{}, err
	}

	metrics.RecordMatchSubmitted()
	s.logger.Info(ctx, "match recorded",
		logger.String("match_id", match.ID.Hex()),
		logger.String("team_a", teamA.Department),
		logger.String("team_b", teamB.Department))

	return SubmissionResult{
		MatchID: match.ID,
		TeamA:   teamA.Department,
		TeamB:   teamB.Department,
	}, nil
}

func (s *SubmissionService) reject(ctx context.Context, reason string, err error) (SubmissionResult, error) {
	metrics.RecordSubmissionRejected(reason)
	s.logger.Debug(ctx, "submission rejected", logger.String("reason", reason), logger.Error(err))
	return SubmissionResult{}, err
}

// checkStructure enforces the presence and size rules of a team.
func (s *SubmissionService) checkStructure(side string, t TeamProposal) error {
	err := s.validate.Struct(t)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %s: %w", ErrInvalidTeam, side, err)
	}

	fe := fieldErrs[0]
	switch {
	case fe.Field() == "Department":
		return fmt.Errorf("%w: %s: department is required", ErrInvalidTeam, side)
	case fe.Field() == "Players" && fe.Tag() == "required":
		return fmt.Errorf("%w: %s: players are required", ErrInvalidTeam, side)
	case fe.Field() == "Players":
		return fmt.Errorf("%w: %s: expected %d players, got %d", ErrInvalidTeam, side, model.TeamSize, len(t.Players))
	default:
		return fmt.Errorf("%w: %s: %s failed %s", ErrInvalidTeam, side, fe.Field(), fe.Tag())
	}
}

// checkDepartments verifies that both departments name at least one player
// record. Names are compared ignoring case, the same way ActivePlayers does.
func (s *SubmissionService) checkDepartments(ctx context.Context, a, b string) error {
	found, err := s.departments.MatchingDepartments(ctx, []string{a, b})
	if err != nil {
		s.logger.Error(ctx, "failed to resolve departments", logger.Error(err))
		return err
	}

	for _, name := range []string{a, b} {
		if !containsFold(found, name) {
			return fmt.Errorf("%w: %q", ErrUnknownDepartment, name)
		}
	}
	return nil
}

func normalize(t *TeamProposal) TeamProposal {
	return TeamProposal{
		Department: strings.TrimSpace(t.Department),
		Players:    t.Players,
	}
}

func containsFold(values []string, name string) bool {
	for _, v := range values {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}
