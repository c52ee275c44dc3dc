package service

import (
	"context"
	"sort"
	"strings"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
	"github.com/SirPenguin555/Whats-That-Color/internal/repository"
	"github.com/SirPenguin555/Whats-That-Color/internal/scoring"
)

const (
	DefaultHistoryLimit = 50
	DefaultSearchLimit  = 20

	searchWindow   = 100
	statsWindow    = 1000
	favoriteColors = 5
)

// HistoryService records plays and answers history queries
type HistoryService struct {
	repo repository.HistoryRepo
}

func NewHistoryService(repo repository.HistoryRepo) *HistoryService {
	return &HistoryService{repo: repo}
}

// Record stores one scored play
func (s *HistoryService) Record(ctx context.Context, playerID string, target model.ColorTarget, description string, resp *model.ScoreResponse) (*model.ColorEntry, error) {
	entry := &model.ColorEntry{
		PlayerID:    playerID,
		Target:      target.Lower(),
		Description: scoring.NormalizeDescription(description),
		Scores:      resp.Scores,
		Source:      resp.Source,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns the newest entries, optionally only those with overall >= minScore
func (s *HistoryService) List(ctx context.Context, playerID string, limit int, minScore *float64) ([]*model.ColorEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.List(ctx, playerID, limit, minScore)
}

// Search matches term case-insensitively against description and colors of the newest entries
func (s *HistoryService) Search(ctx context.Context, playerID, term string, limit int) ([]*model.ColorEntry, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	recent, err := s.repo.List(ctx, playerID, searchWindow, nil)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]*model.ColorEntry, 0, limit)
	for _, e := range recent {
		if len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(e.Description), needle) || strings.Contains(e.Target.String(), needle) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Stats summarises the newest entries
func (s *HistoryService) Stats(ctx context.Context, playerID string) (*model.PlayerStats, error) {
	entries, err := s.repo.List(ctx, playerID, statsWindow, nil)
	if err != nil {
		return nil, err
	}
	stats := &model.PlayerStats{FavoriteColors: []string{}}
	if len(entries) == 0 {
		return stats, nil
	}

	var total, highest float64
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		total += e.Scores.Overall
		if e.Scores.Overall > highest {
			highest = e.Scores.Overall
		}
		color := e.Target.String()
		if counts[color] == 0 {
			order = append(order, color)
		}
		counts[color]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > favoriteColors {
		order = order[:favoriteColors]
	}

	stats.TotalEntries = len(entries)
	stats.AverageScore = scoring.Round1(total / float64(len(entries)))
	stats.HighestScore = scoring.Round1(highest)
	stats.FavoriteColors = order
	return stats, nil
}
