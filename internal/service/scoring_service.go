package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net"
	"time"

	"github.com/SirPenguin555/Whats-That-Color/internal/cache"
	"github.com/SirPenguin555/Whats-That-Color/internal/metrics"
	"github.com/SirPenguin555/Whats-That-Color/internal/model"
	"github.com/SirPenguin555/Whats-That-Color/internal/remote"
	"github.com/SirPenguin555/Whats-That-Color/internal/scoring"
)

var (
	// ErrRemoteNotConfigured is a wiring error: remote scoring was required and nothing can serve it
	ErrRemoteNotConfigured = errors.New("remote scoring requested but no remote scorer is configured")
)

// RemoteScorer rates a description with an external service. Values may be out of range.
type RemoteScorer interface {
	Score(ctx context.Context, req model.RemoteRequest) (model.AxisScores, error)
}

// ScoringService decides between the remote scorer and the local heuristic for each request.
// Data-driven failures never reach the caller: they fall back to the heuristic.
type ScoringService struct {
	heuristic *scoring.HeuristicScorer
	remote    RemoteScorer
	cache     cache.ResponseCache
	metrics   *metrics.Scoring
	logger    *slog.Logger
}

// NewScoringService wires the arbitrator. remote may be nil; a nil cache gets an in-memory one.
func NewScoringService(remoteScorer RemoteScorer, responseCache cache.ResponseCache, m *metrics.Scoring, logger *slog.Logger) *ScoringService {
	if responseCache == nil {
		responseCache = cache.NewMemoryResponseCache(cache.DefaultCapacity, cache.DefaultTTL, nil)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ScoringService{
		heuristic: scoring.NewHeuristicScorer(),
		remote:    remoteScorer,
		cache:     responseCache,
		metrics:   m,
		logger:    logger,
	}
}

// Score rates one description. The only error is ErrRemoteNotConfigured.
func (s *ScoringService) Score(ctx context.Context, req model.ScoreRequest) (*model.ScoreResponse, error) {
	start := time.Now()
	desc := scoring.NormalizeDescription(req.Description)

	var resp *model.ScoreResponse
	switch {
	case desc == "":
		resp = &model.ScoreResponse{Source: model.SourceHeuristic}
	case !req.Policy.UseRemote:
		resp = s.local(desc, req.Target)
	case s.remote == nil:
		if !req.Policy.AllowFallback {
			return nil, ErrRemoteNotConfigured
		}
		resp = s.local(desc, req.Target)
	default:
		resp = s.scoreRemote(ctx, desc, req.Target, req.Credential)
	}

	resp.ProcessingTimeMs = time.Since(start).Milliseconds()
	s.metrics.ObserveSource(string(resp.Source))
	return resp, nil
}

// Cache exposes the response cache for stats and clearing
func (s *ScoringService) Cache() cache.ResponseCache {
	return s.cache
}

func (s *ScoringService) local(desc string, target model.ColorTarget) *model.ScoreResponse {
	return &model.ScoreResponse{
		Scores: s.heuristic.Evaluate(desc, target),
		Source: model.SourceHeuristic,
	}
}

func (s *ScoringService) scoreRemote(ctx context.Context, desc string, target model.ColorTarget, credential string) *model.ScoreResponse {
	key := cache.Key(desc, target)

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "response cache read failed", "key", key, "error", err)
	}
	s.metrics.ObserveCache(cached != nil)
	if cached != nil {
		s.logger.DebugContext(ctx, "response cache hit", "key", key)
		return cached
	}

	callStart := time.Now()
	axes, err := s.remote.Score(ctx, model.RemoteRequest{
		Description: desc,
		Target:      target,
		Credential:  credential,
	})
	s.metrics.ObserveRemoteDuration(time.Since(callStart))
	if err == nil && !finite(axes) {
		err = errNonFinite
	}
	if err != nil {
		reason := failureReason(err)
		s.metrics.ObserveRemoteFailure(reason)
		s.logger.WarnContext(ctx, "remote scoring failed, using heuristic", "reason", reason, "error", err)
		return s.local(desc, target)
	}

	resp := &model.ScoreResponse{
		Scores: scoring.Normalize(axes),
		Source: model.SourceRemote,
	}
	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.logger.WarnContext(ctx, "response cache write failed", "key", key, "error", err)
	}
	return resp
}

var errNonFinite = errors.New("remote returned a non-finite score")

func finite(a model.AxisScores) bool {
	for _, v := range []float64{a.Funny, a.Accurate, a.Popular} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func failureReason(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, remote.ErrStatus):
		return "status"
	case errors.Is(err, remote.ErrMalformedResponse), errors.Is(err, errNonFinite):
		return "malformed"
	case errors.Is(err, remote.ErrNoCredential):
		return "no_credential"
	default:
		return "transport"
	}
}
