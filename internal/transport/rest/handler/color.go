package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/SirPenguin555/Whats-That-Color/internal/colorspace"
	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

// ColorHandler serves color targets and color information
type ColorHandler struct{}

func NewColorHandler() *ColorHandler {
	return &ColorHandler{}
}

// Next handles GET /v1/colors/next?mode=single|dual&previous=#rrggbb
func (h *ColorHandler) Next(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch q.Get("mode") {
	case "", string(model.TargetSingle):
		previous := q.Get("previous")
		if previous != "" && !colorspace.IsValidHex(previous) {
			writeError(w, http.StatusBadRequest, ErrInvalidColor.Error())
			return
		}
		next := colorspace.RandomColor()
		if previous != "" {
			next = colorspace.DifferentColor(previous)
		}
		writeJSON(w, http.StatusOK, model.Single(next))
	case string(model.TargetDual):
		a, b := colorspace.DualColorPair(colorspace.DefaultMinDistance)
		writeJSON(w, http.StatusOK, model.Dual(a, b))
	default:
		writeError(w, http.StatusBadRequest, "mode must be single or dual")
	}
}

// Info handles GET /v1/colors/{hex}/info. The leading '#' is optional.
func (h *ColorHandler) Info(w http.ResponseWriter, r *http.Request) {
	hex := mux.Vars(r)["hex"]
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if !colorspace.IsValidHex(hex) {
		writeError(w, http.StatusBadRequest, ErrInvalidColor.Error())
		return
	}
	writeJSON(w, http.StatusOK, colorspace.Describe(hex))
}
