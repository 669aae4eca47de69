package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/okian/squadbook/internal/domain/model"
)

const (
	fieldDepartment = "Department"
	fieldStatus     = "Status"
)

// PlayerStore reads and seeds player documents.
type PlayerStore struct {
	coll *mongo.Collection
}

// NewPlayerStore wraps an existing collection.
func NewPlayerStore(coll *mongo.Collection) *PlayerStore {
	return &PlayerStore{coll: coll}
}

// Departments returns the distinct department values across all players,
// in the order the store reports them.
func (s *PlayerStore) Departments(ctx context.Context) (out []string, err error) {
	defer track("players.departments", time.Now(), &err)

	values, err := s.coll.Distinct(ctx, fieldDepartment, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct departments: %w", err)
	}
	return stringValues(values), nil
}

// ActivePlayers returns the active players whose department equals
// department ignoring case.
func (s *PlayerStore) ActivePlayers(ctx context.Context, department string) (out []model.PlayerSummary, err error) {
	defer track("players.active", time.Now(), &err)

	filter := bson.D{
		{Key: fieldDepartment, Value: departmentPattern(department)},
		{Key: fieldStatus, Value: model.StatusActive},
	}
	opts := options.Find().SetProjection(bson.D{
		{Key: "Name", Value: 1},
		{Key: "Role", Value: 1},
	})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find active players: %w", err)
	}
	out = []model.PlayerSummary{}
	if err = cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode active players: %w", err)
	}
	return out, nil
}

// MatchingDepartments returns the stored department values that equal any
// of names ignoring case.
func (s *PlayerStore) MatchingDepartments(ctx context.Context, names []string) (out []string, err error) {
	defer track("players.matching_departments", time.Now(), &err)

	if len(names) == 0 {
		return nil, nil
	}
	or := make(bson.A, 0, len(names))
	for _, n := range names {
		or = append(or, bson.D{{Key: fieldDepartment, Value: departmentPattern(n)}})
	}

	values, err := s.coll.Distinct(ctx, fieldDepartment, bson.D{{Key: "$or", Value: or}})
	if err != nil {
		return nil, fmt.Errorf("distinct matching departments: %w", err)
	}
	return stringValues(values), nil
}

// InsertPlayers stores players and returns how many were written.
func (s *PlayerStore) InsertPlayers(ctx context.Context, players []model.Player) (n int, err error) {
	defer track("players.insert", time.Now(), &err)

	if len(players) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(players))
	for i := range players {
		docs[i] = players[i]
	}
	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert players: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// DeleteAll removes every player document.
func (s *PlayerStore) DeleteAll(ctx context.Context) (n int64, err error) {
	defer track("players.delete_all", time.Now(), &err)

	res, err := s.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("delete players: %w", err)
	}
	return res.DeletedCount, nil
}

// departmentPattern matches the whole department value, ignoring case. The
// name is quoted so it is never interpreted as a pattern.
func departmentPattern(name string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}
}

func stringValues(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
