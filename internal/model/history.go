package model

import "time"

// ColorEntry is one recorded play
type ColorEntry struct {
	ID          string      `json:"id" bson:"_id"`
	PlayerID    string      `json:"playerId" bson:"playerId"`
	Target      ColorTarget `json:"target" bson:"target"`
	Description string      `json:"description" bson:"description"`
	Scores      ScoreResult `json:"scores" bson:"scores"`
	Source      ScoreSource `json:"source" bson:"source"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
}

// PlayerStats summarises a player's history
type PlayerStats struct {
	TotalEntries   int      `json:"totalEntries"`
	AverageScore   float64  `json:"averageScore"`
	HighestScore   float64  `json:"highestScore"`
	FavoriteColors []string `json:"favoriteColors"`
}

// PlayResult is returned after a scored play
type PlayResult struct {
	ScoreResponse
	EntryID      string `json:"entryId,omitempty"`
	PersonalBest bool   `json:"personalBest"`
}
