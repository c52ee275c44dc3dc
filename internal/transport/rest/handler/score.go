package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/SirPenguin555/Whats-That-Color/internal/colorspace"
	"github.com/SirPenguin555/Whats-That-Color/internal/model"
	"github.com/SirPenguin555/Whats-That-Color/internal/service"
	"github.com/SirPenguin555/Whats-That-Color/internal/transport/rest/middleware"
)

const (
	maxDescriptionRunes = 10000
	maxBodyBytes        = 64 << 10
)

var ErrInvalidColor = errors.New("colors must match #RRGGBB")

// PolicyFunc returns the scoring policy for a request carrying credential
type PolicyFunc func(credential string) model.ScoringPolicy

// DualColors is a gradient from ColorA to ColorB
type DualColors struct {
	ColorA string `json:"colorA"`
	ColorB string `json:"colorB"`
}

// ScoreRequest is the body of POST /v1/score. Exactly one of HexColor and DualColors is set.
type ScoreRequest struct {
	Description string      `json:"description"`
	HexColor    string      `json:"hexColor,omitempty"`
	DualColors  *DualColors `json:"dualColors,omitempty"`
	APIKey      string      `json:"apiKey,omitempty"`
	// UseRemote false opts out of remote scoring; absent or true keeps the server default
	UseRemote *bool `json:"useRemote,omitempty"`
}

// Target validates the color fields
func (r ScoreRequest) Target() (model.ColorTarget, error) {
	switch {
	case r.HexColor != "" && r.DualColors != nil:
		return model.ColorTarget{}, errors.New("set either hexColor or dualColors, not both")
	case r.DualColors != nil:
		if !colorspace.IsValidHex(r.DualColors.ColorA) || !colorspace.IsValidHex(r.DualColors.ColorB) {
			return model.ColorTarget{}, ErrInvalidColor
		}
		return model.Dual(r.DualColors.ColorA, r.DualColors.ColorB), nil
	case r.HexColor != "":
		if !colorspace.IsValidHex(r.HexColor) {
			return model.ColorTarget{}, ErrInvalidColor
		}
		return model.Single(r.HexColor), nil
	default:
		return model.ColorTarget{}, errors.New("hexColor or dualColors is required")
	}
}

// ScoreHandler handles scoring endpoints
type ScoreHandler struct {
	playSvc *service.PlayService
	policy  PolicyFunc
	logger  *slog.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(playSvc *service.PlayService, policy PolicyFunc, logger *slog.Logger) *ScoreHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ScoreHandler{playSvc: playSvc, policy: policy, logger: logger}
}

// Score handles POST /v1/score
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	target, err := req.Target()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if utf8.RuneCountInString(req.Description) > maxDescriptionRunes {
		writeError(w, http.StatusBadRequest, "description is too long")
		return
	}

	policy := h.policy(req.APIKey)
	if req.UseRemote != nil && !*req.UseRemote {
		policy.UseRemote = false
	}

	result, err := h.playSvc.Play(r.Context(), middleware.GetPlayerID(r.Context()), model.ScoreRequest{
		Description: req.Description,
		Target:      target,
		Credential:  req.APIKey,
		Policy:      policy,
	})
	if errors.Is(err, service.ErrRemoteNotConfigured) {
		h.logger.ErrorContext(r.Context(), "remote scoring required but not configured")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
