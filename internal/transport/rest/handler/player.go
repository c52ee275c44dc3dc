package handler

import (
	"net/http"
	"strconv"

	"github.com/SirPenguin555/Whats-That-Color/internal/service"
	"github.com/SirPenguin555/Whats-That-Color/internal/transport/rest/middleware"
)

// PlayerHandler handles a player's history endpoints
type PlayerHandler struct {
	historySvc *service.HistoryService
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(historySvc *service.HistoryService) *PlayerHandler {
	return &PlayerHandler{historySvc: historySvc}
}

// History handles GET /v1/history?limit=&minScore=
func (h *PlayerHandler) History(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.GetPlayerID(r.Context())

	limit, ok := queryInt(r, "limit")
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	var minScore *float64
	if v := r.URL.Query().Get("minScore"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "minScore must be a number")
			return
		}
		minScore = &f
	}

	entries, err := h.historySvc.List(r.Context(), playerID, limit, minScore)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// Search handles GET /v1/history/search?q=&limit=
func (h *PlayerHandler) Search(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.GetPlayerID(r.Context())

	limit, ok := queryInt(r, "limit")
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	entries, err := h.historySvc.Search(r.Context(), playerID, r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// Stats handles GET /v1/history/stats
func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.historySvc.Stats(r.Context(), middleware.GetPlayerID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
