package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
	"github.com/SirPenguin555/Whats-That-Color/internal/repository"
)

func newPlayService(remoteAxes model.AxisScores, repo repository.HistoryRepo) (*PlayService, *FakeBroadcaster) {
	scoringSvc := NewScoringService(NewFakeRemoteScorer(remoteAxes), nil, nil, nil)
	play := NewPlayService(scoringSvc, NewHistoryService(repo), nil)
	b := &FakeBroadcaster{}
	play.SetBroadcaster(b)
	return play, b
}

func TestPlay_AnonymousCallerIsNotRecorded(t *testing.T) {
	repo := repository.NewMemoryHistoryRepo()
	play, b := newPlayService(model.AxisScores{Funny: 1, Accurate: 1, Popular: 1}, repo)

	res, err := play.Play(context.Background(), "", model.ScoreRequest{Description: "blue", Target: blue})
	require.NoError(t, err)
	assert.Empty(t, res.EntryID)
	assert.Empty(t, b.Calls())
}

func TestPlay_RecordsAndBroadcasts(t *testing.T) {
	repo := repository.NewMemoryHistoryRepo()
	play, b := newPlayService(model.AxisScores{Funny: 1, Accurate: 1, Popular: 1}, repo)
	ctx := context.Background()

	first, err := play.Play(ctx, "anon_p", model.ScoreRequest{Description: "blue", Target: blue})
	require.NoError(t, err)
	assert.NotEmpty(t, first.EntryID)
	assert.False(t, first.PersonalBest, "a first play has nothing to beat")

	calls := b.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, MsgScoreRecorded, calls[0].MsgType)
	event := calls[0].Payload.(ScoreRecordedEvent)
	assert.Equal(t, "anon_p", event.PlayerID)
	assert.Equal(t, first.Scores, event.Scores)

	// the remote 1.0 stays below the first play's 1.7
	second, err := play.Play(ctx, "anon_p", model.ScoreRequest{Description: "cobalt ocean at noon", Target: blue, Policy: remotePolicy})
	require.NoError(t, err)
	require.Equal(t, model.SourceRemote, second.Source)
	assert.Equal(t, 1.0, second.Scores.Overall)
	assert.False(t, second.PersonalBest)

	third, err := play.Play(ctx, "anon_p", model.ScoreRequest{Description: "deep vibrant cobalt blue like a proud peacock", Target: blue})
	require.NoError(t, err)
	assert.True(t, third.PersonalBest)

	calls = b.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, MsgPersonalBest, last.MsgType)
	assert.Equal(t, "anon_p", last.PlayerID)

	entries, err := repo.List(ctx, "anon_p", 0, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestPlay_StorageFailureStillScores(t *testing.T) {
	play, b := newPlayService(model.AxisScores{}, FailingHistoryRepo{})

	res, err := play.Play(context.Background(), "anon_p", model.ScoreRequest{Description: "blue", Target: blue})
	require.NoError(t, err)
	assert.Equal(t, 1.7, res.Scores.Overall)
	assert.Empty(t, res.EntryID)
	assert.Empty(t, b.Calls())
}

func TestPlay_EmptyDescriptionIsNotRecorded(t *testing.T) {
	repo := repository.NewMemoryHistoryRepo()
	play, _ := newPlayService(model.AxisScores{}, repo)

	res, err := play.Play(context.Background(), "anon_p", model.ScoreRequest{Description: "   ", Target: blue})
	require.NoError(t, err)
	assert.Equal(t, model.ScoreResult{}, res.Scores)

	entries, _ := repo.List(context.Background(), "anon_p", 0, nil)
	assert.Empty(t, entries)
}
