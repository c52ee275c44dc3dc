package service

// Feed message types
const (
	MsgScoreRecorded = "score_recorded"
	MsgPersonalBest  = "personal_best"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToPlayer(playerID string, msgType string, payload interface{})
	BroadcastToAll(msgType string, payload interface{})
}
