package model

import "time"

// ScoreSource tags where a score came from
type ScoreSource string

const (
	SourceRemote    ScoreSource = "remote"
	SourceHeuristic ScoreSource = "heuristic"
)

// AxisScores are the three independent axis scores before aggregation
type AxisScores struct {
	Funny    float64 `json:"funny"`
	Accurate float64 `json:"accurate"`
	Popular  float64 `json:"popular"`
}

// ScoreResult is the full rating, every value in [0,5] with one decimal
type ScoreResult struct {
	Funny    float64 `json:"funny" bson:"funny"`
	Accurate float64 `json:"accurate" bson:"accurate"`
	Popular  float64 `json:"popular" bson:"popular"`
	Overall  float64 `json:"overall" bson:"overall"`
}

// Axes drops the overall score
func (r ScoreResult) Axes() AxisScores {
	return AxisScores{Funny: r.Funny, Accurate: r.Accurate, Popular: r.Popular}
}

// ScoringPolicy is decided by the caller for each request
type ScoringPolicy struct {
	// UseRemote asks for the remote scorer
	UseRemote bool `json:"useRemote"`
	// AllowFallback permits heuristic scoring when no remote scorer is wired
	AllowFallback bool `json:"allowFallback"`
}

// ScoreRequest is one scoring request
type ScoreRequest struct {
	Description string
	Target      ColorTarget
	Credential  string // per-request remote credential, never stored
	Policy      ScoringPolicy
}

// RemoteRequest is what a remote scorer receives. Credential is used for the one call only.
type RemoteRequest struct {
	Description string      `json:"description"`
	Target      ColorTarget `json:"colorTarget"`
	Credential  string      `json:"credential,omitempty"`
}

// ScoreResponse is the externally visible scoring result
type ScoreResponse struct {
	Scores           ScoreResult `json:"scores"`
	CachedHit        bool        `json:"cachedHit"`
	Source           ScoreSource `json:"source"`
	ProcessingTimeMs int64       `json:"processingTimeMs"`
}

// CacheEntry is one stored remote scoring result
type CacheEntry struct {
	Key       string        `json:"key"`
	Payload   ScoreResponse `json:"payload"`
	CreatedAt time.Time     `json:"createdAt"`
}

// CacheStats reports cache occupancy
type CacheStats struct {
	Size    int `json:"size"`
	MaxSize int `json:"maxSize"`
}
