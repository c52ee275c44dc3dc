package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

type memoryHistoryRepo struct {
	mu      sync.RWMutex
	entries map[string][]*model.ColorEntry // by player, insertion order
}

// NewMemoryHistoryRepo keeps history in process, for single-node runs and tests
func NewMemoryHistoryRepo() HistoryRepo {
	return &memoryHistoryRepo{entries: make(map[string][]*model.ColorEntry)}
}

func (r *memoryHistoryRepo) Create(_ context.Context, entry *model.ColorEntry) error {
	prepareEntry(entry)
	stored := *entry

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.PlayerID] = append(r.entries[entry.PlayerID], &stored)
	return nil
}

func (r *memoryHistoryRepo) List(_ context.Context, playerID string, limit int, minScore *float64) ([]*model.ColorEntry, error) {
	r.mu.RLock()
	all := r.entries[playerID]
	out := make([]*model.ColorEntry, 0, len(all))
	// walk backwards so equal timestamps stay newest first
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		if minScore != nil && e.Scores.Overall < *minScore {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
