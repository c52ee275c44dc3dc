// Package remote holds the HTTP clients for external description scorers.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

var (
	ErrMalformedResponse = errors.New("malformed remote response")
	ErrStatus            = errors.New("unexpected remote status")
	ErrNoCredential      = errors.New("no remote credential")
)

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 1 << 20

var codeBlockRegex = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*(.+?)\\s*```\\s*$")

func stripMarkdownCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if matches := codeBlockRegex.FindStringSubmatch(s); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return s
}

// decodeAxisScores parses {"funny":n,"accurate":n,"popular":n}. Every field must be a finite
// JSON number; strings, nulls and missing fields are rejected. Values are not clamped here.
func decodeAxisScores(text string) (model.AxisScores, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripMarkdownCodeBlock(text)), &raw); err != nil {
		return model.AxisScores{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var axes model.AxisScores
	fields := []struct {
		name string
		dst  *float64
	}{
		{"funny", &axes.Funny},
		{"accurate", &axes.Accurate},
		{"popular", &axes.Popular},
	}
	for _, f := range fields {
		v, err := jsonNumber(raw[f.name])
		if err != nil {
			return model.AxisScores{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, f.name, err)
		}
		*f.dst = v
	}
	return axes, nil
}

func jsonNumber(msg json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(msg))
	if s == "" {
		return 0, errors.New("missing")
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return 0, fmt.Errorf("not a number: %s", s)
	}
	return strconv.ParseFloat(s, 64)
}
