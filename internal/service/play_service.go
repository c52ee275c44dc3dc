package service

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

// ScoreRecordedEvent is broadcast to every feed subscriber after a play is stored
type ScoreRecordedEvent struct {
	PlayerID    string            `json:"playerId"`
	EntryID     string            `json:"entryId"`
	Target      model.ColorTarget `json:"target"`
	Description string            `json:"description"`
	Scores      model.ScoreResult `json:"scores"`
	Source      model.ScoreSource `json:"source"`
}

// PersonalBestEvent is sent to the player who beat their highest overall score
type PersonalBestEvent struct {
	EntryID  string  `json:"entryId"`
	Overall  float64 `json:"overall"`
	Previous float64 `json:"previous"`
}

// PlayService scores a play and, for identified players, records and broadcasts it
type PlayService struct {
	scoring     *ScoringService
	history     *HistoryService
	broadcaster Broadcaster
	logger      *slog.Logger
}

func NewPlayService(scoringSvc *ScoringService, history *HistoryService, logger *slog.Logger) *PlayService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PlayService{
		scoring: scoringSvc,
		history: history,
		logger:  logger,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *PlayService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Play scores req. With a playerID the play is stored; storage failures are logged and the
// score is still returned.
func (s *PlayService) Play(ctx context.Context, playerID string, req model.ScoreRequest) (*model.PlayResult, error) {
	resp, err := s.scoring.Score(ctx, req)
	if err != nil {
		return nil, err
	}
	result := &model.PlayResult{ScoreResponse: *resp}
	if playerID == "" || s.history == nil || strings.TrimSpace(req.Description) == "" {
		return result, nil
	}

	previous, err := s.history.Stats(ctx, playerID)
	if err != nil {
		s.logger.WarnContext(ctx, "load player stats failed", "playerId", playerID, "error", err)
		previous = nil
	}

	entry, err := s.history.Record(ctx, playerID, req.Target, req.Description, resp)
	if err != nil {
		s.logger.ErrorContext(ctx, "record play failed", "playerId", playerID, "error", err)
		return result, nil
	}
	result.EntryID = entry.ID
	result.PersonalBest = previous != nil && previous.TotalEntries > 0 && resp.Scores.Overall > previous.HighestScore

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAll(MsgScoreRecorded, ScoreRecordedEvent{
			PlayerID:    playerID,
			EntryID:     entry.ID,
			Target:      entry.Target,
			Description: entry.Description,
			Scores:      entry.Scores,
			Source:      entry.Source,
		})
		if result.PersonalBest {
			s.broadcaster.BroadcastToPlayer(playerID, MsgPersonalBest, PersonalBestEvent{
				EntryID:  entry.ID,
				Overall:  resp.Scores.Overall,
				Previous: previous.HighestScore,
			})
		}
	}
	return result, nil
}
