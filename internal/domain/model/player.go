// Package model contains domain models passed between layers.
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// StatusActive marks a player eligible for roster listing.
const StatusActive = "Active"

// Player is a stored player record. Field names follow the existing
// Player_per collection so documents written by other tools decode as-is.
type Player struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PlayerID       string             `bson:"Player_ID" json:"Player_ID"`
	Name           string             `bson:"Name" json:"Name"`
	Role           string             `bson:"Role" json:"Role"`
	Department     string             `bson:"Department" json:"Department"`
	YearOfStudy    int                `bson:"Year_of_Study" json:"Year_of_Study"`
	Status         string             `bson:"Status" json:"Status"`
	MatchesPlayed  int                `bson:"Matches_Played" json:"Matches_Played"`
	RunsScored     int                `bson:"Runs_Scored" json:"Runs_Scored"`
	BattingAverage float64            `bson:"Batting_Average" json:"Batting_Average"`
	StrikeRate     float64            `bson:"Strike_Rate" json:"Strike_Rate"`
	WicketsTaken   int                `bson:"Wickets_Taken" json:"Wickets_Taken"`
	EconomyRate    float64            `bson:"Economy_Rate" json:"Economy_Rate"`
}

// IsActive reports whether the player can be listed for selection.
func (p Player) IsActive() bool {
	return p.Status == StatusActive
}

// PlayerSummary is the listing shape returned for a department roster.
type PlayerSummary struct {
	Name string             `bson:"Name" json:"Name"`
	Role string             `bson:"Role" json:"Role"`
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
}
