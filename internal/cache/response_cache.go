package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

const (
	DefaultTTL      = 24 * time.Hour
	DefaultCapacity = 100
)

// ResponseCache stores remote scoring results by derived key.
// Get returns nil, nil on a miss. Entries older than the TTL are misses and are dropped.
// Set evicts the oldest inserted entry when the cache is full.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*model.ScoreResponse, error)
	Set(ctx context.Context, key string, resp *model.ScoreResponse) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (model.CacheStats, error)
}

// Key derives the cache key from the description and the color target.
// Case, surrounding whitespace and Unicode compatibility forms do not change the key.
func Key(description string, target model.ColorTarget) string {
	text := norm.NFKC.String(strings.ToLower(strings.TrimSpace(description)))
	sum := sha1.Sum([]byte(target.String() + "_" + text))
	return "score_" + hex.EncodeToString(sum[:])
}
