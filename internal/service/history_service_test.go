package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
	"github.com/SirPenguin555/Whats-That-Color/internal/repository"
)

func seedHistory(t *testing.T, repo repository.HistoryRepo, playerID string, plays []model.ColorEntry) {
	t.Helper()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range plays {
		e := plays[i]
		e.PlayerID = playerID
		e.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(context.Background(), &e))
	}
}

func TestHistoryService_Stats(t *testing.T) {
	repo := repository.NewMemoryHistoryRepo()
	svc := NewHistoryService(repo)
	seedHistory(t, repo, "p", []model.ColorEntry{
		{Target: model.Single("#aa0000"), Scores: model.ScoreResult{Overall: 1.0}},
		{Target: model.Single("#00aa00"), Scores: model.ScoreResult{Overall: 2.0}},
		{Target: model.Single("#00aa00"), Scores: model.ScoreResult{Overall: 4.6}},
		{Target: model.Dual("#111111", "#222222"), Scores: model.ScoreResult{Overall: 3.2}},
	})

	stats, err := svc.Stats(context.Background(), "p")
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalEntries)
	assert.Equal(t, 2.7, stats.AverageScore)
	assert.Equal(t, 4.6, stats.HighestScore)
	// newest first: the dual target appeared before #aa0000 at equal counts
	assert.Equal(t, []string{"#00aa00", "#111111_#222222", "#aa0000"}, stats.FavoriteColors)

	empty, err := svc.Stats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, &model.PlayerStats{FavoriteColors: []string{}}, empty)
}

func TestHistoryService_FavoriteColorsTopFive(t *testing.T) {
	repo := repository.NewMemoryHistoryRepo()
	var plays []model.ColorEntry
	for i := 0; i < 8; i++ {
		for j := 0; j <= i; j++ {
			plays = append(plays, model.ColorEntry{Target: model.Single(fmt.Sprintf("#00000%d", i))})
		}
	}
	seedHistory(t, repo, "p", plays)

	stats, err := NewHistoryService(repo).Stats(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"#000007", "#000006", "#000005", "#000004", "#000003"}, stats.FavoriteColors)
}

func TestHistoryService_Search(t *testing.T) {
	repo := repository.NewMemoryHistoryRepo()
	svc := NewHistoryService(repo)
	seedHistory(t, repo, "p", []model.ColorEntry{
		{Target: model.Single("#3b82f6"), Description: "Ocean at noon"},
		{Target: model.Single("#ff0000"), Description: "angry tomato"},
		{Target: model.Dual("#3b82f6", "#ffffff"), Description: "cloudy sky"},
	})

	got, err := svc.Search(context.Background(), "p", "OCEAN", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ocean at noon", got[0].Description)

	got, err = svc.Search(context.Background(), "p", "3B82", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cloudy sky", got[0].Description, "newest first")

	got, err = svc.Search(context.Background(), "p", "", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestHistoryService_SearchScansRecentWindow(t *testing.T) {
	repo := repository.NewMemoryHistoryRepo()
	plays := []model.ColorEntry{{Description: "needle", Target: model.Single("#000000")}}
	for i := 0; i < searchWindow; i++ {
		plays = append(plays, model.ColorEntry{Description: "hay", Target: model.Single("#000000")})
	}
	seedHistory(t, repo, "p", plays)

	got, err := NewHistoryService(repo).Search(context.Background(), "p", "needle", 0)
	require.NoError(t, err)
	assert.Empty(t, got, "the oldest entry is outside the search window")
}

func TestHistoryService_ListDefaults(t *testing.T) {
	repo := repository.NewMemoryHistoryRepo()
	var plays []model.ColorEntry
	for i := 0; i < DefaultHistoryLimit+5; i++ {
		plays = append(plays, model.ColorEntry{Target: model.Single("#000000"), Scores: model.ScoreResult{Overall: float64(i%5) + 0.5}})
	}
	seedHistory(t, repo, "p", plays)
	svc := NewHistoryService(repo)

	got, err := svc.List(context.Background(), "p", 0, nil)
	require.NoError(t, err)
	assert.Len(t, got, DefaultHistoryLimit)

	minScore := 4.0
	got, err = svc.List(context.Background(), "p", 0, &minScore)
	require.NoError(t, err)
	assert.Len(t, got, 11)
}

func TestHistoryService_Record(t *testing.T) {
	repo := repository.NewMemoryHistoryRepo()
	svc := NewHistoryService(repo)

	entry, err := svc.Record(context.Background(), "p", model.Single("#ABCDEF"), "  ｂｌｕｅ  ", &model.ScoreResponse{
		Scores: model.ScoreResult{Funny: 1, Accurate: 1, Popular: 1, Overall: 1},
		Source: model.SourceRemote,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "#abcdef", entry.Target.Hex)
	assert.Equal(t, "blue", entry.Description)
	assert.Equal(t, model.SourceRemote, entry.Source)
	assert.False(t, entry.CreatedAt.IsZero())
}
