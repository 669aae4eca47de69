package model

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidPlayerRef is returned when a string is not a player reference.
var ErrInvalidPlayerRef = errors.New("invalid player reference")

// ParsePlayerRef validates s as a player reference (24 hex characters) and
// returns the typed identifier.
func ParsePlayerRef(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidPlayerRef, s)
	}
	return id, nil
}

// ParsePlayerRefs parses refs in order. The first failure reports its index.
func ParsePlayerRefs(refs []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, len(refs))
	for i, ref := range refs {
		id, err := ParsePlayerRef(ref)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i, err)
		}
		out[i] = id
	}
	return out, nil
}
