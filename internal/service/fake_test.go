package service

import (
	"context"
	"errors"
	"sync"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

// ------------------------
// Fake Remote Scorer
// ------------------------

// FakeRemoteScorer is a programmable RemoteScorer that records every request.
type FakeRemoteScorer struct {
	mu       sync.Mutex
	requests []model.RemoteRequest

	ScoreFunc func(ctx context.Context, req model.RemoteRequest) (model.AxisScores, error)
}

func NewFakeRemoteScorer(axes model.AxisScores) *FakeRemoteScorer {
	return &FakeRemoteScorer{
		ScoreFunc: func(context.Context, model.RemoteRequest) (model.AxisScores, error) {
			return axes, nil
		},
	}
}

func (f *FakeRemoteScorer) Score(ctx context.Context, req model.RemoteRequest) (model.AxisScores, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.ScoreFunc(ctx, req)
}

// Requests returns a copy of the requests seen so far
func (f *FakeRemoteScorer) Requests() []model.RemoteRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.RemoteRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// ------------------------
// Fake Broadcaster
// ------------------------

type broadcastCall struct {
	PlayerID string // empty for BroadcastToAll
	MsgType  string
	Payload  interface{}
}

type FakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (f *FakeBroadcaster) BroadcastToPlayer(playerID, msgType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, broadcastCall{PlayerID: playerID, MsgType: msgType, Payload: payload})
}

func (f *FakeBroadcaster) BroadcastToAll(msgType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, broadcastCall{MsgType: msgType, Payload: payload})
}

func (f *FakeBroadcaster) Calls() []broadcastCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]broadcastCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// ------------------------
// Fake History Repo
// ------------------------

var errStoreDown = errors.New("store down")

// FailingHistoryRepo rejects every call
type FailingHistoryRepo struct{}

func (FailingHistoryRepo) Create(context.Context, *model.ColorEntry) error {
	return errStoreDown
}

func (FailingHistoryRepo) List(context.Context, string, int, *float64) ([]*model.ColorEntry, error) {
	return nil, errStoreDown
}
