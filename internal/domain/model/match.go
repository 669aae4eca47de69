package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamSize is the number of player references each side of a match carries.
const TeamSize = 11

// Team is one side of a match: a department and its ordered player references.
type Team struct {
	Department string               `bson:"department" json:"department"`
	Players    []primitive.ObjectID `bson:"players" json:"players"`
}

// Match pairs two teams proposed together at a point in time.
type Match struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	TeamA Team               `bson:"teamA" json:"teamA"`
	TeamB Team               `bson:"teamB" json:"teamB"`
	Date  time.Time          `bson:"date" json:"date"`
}

// NewMatch builds a match with a fresh identifier stamped at the given time.
func NewMatch(teamA, teamB Team, at time.Time) *Match {
	return &Match{
		ID:    primitive.NewObjectID(),
		TeamA: teamA,
		TeamB: teamB,
		Date:  at,
	}
}
