package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/okian/squadbook/internal/domain/model"
)

// MatchStore persists match documents.
type MatchStore struct {
	coll *mongo.Collection
}

// NewMatchStore wraps an existing collection.
func NewMatchStore(coll *mongo.Collection) *MatchStore {
	return &MatchStore{coll: coll}
}

// InsertMatch writes m as a single document.
func (s *MatchStore) InsertMatch(ctx context.Context, m *model.Match) (err error) {
	defer track("matches.insert", time.Now(), &err)

	if m == nil {
		return ErrNilMatch
	}
	if _, err = s.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}
