package handler

import (
	"net/http"

	"github.com/SirPenguin555/Whats-That-Color/internal/cache"
)

// CacheHandler exposes response cache maintenance
type CacheHandler struct {
	cache cache.ResponseCache
}

func NewCacheHandler(c cache.ResponseCache) *CacheHandler {
	return &CacheHandler{cache: c}
}

// Stats handles GET /v1/cache/stats
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.cache.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Clear handles DELETE /v1/cache
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
