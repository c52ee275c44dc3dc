package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SirPenguin555/Whats-That-Color/internal/config"
	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

// GeminiScorer rates descriptions with the Gemini generateContent API
type GeminiScorer struct {
	config config.AIConfig
	client *http.Client
}

// NewGeminiScorer creates a scorer for cfg.Model at cfg.BaseURL
func NewGeminiScorer(cfg config.AIConfig) *GeminiScorer {
	return &GeminiScorer{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

// Score sends one generateContent call. A request credential takes precedence over the configured key.
func (s *GeminiScorer) Score(ctx context.Context, req model.RemoteRequest) (model.AxisScores, error) {
	key := req.Credential
	if key == "" {
		key = s.config.APIKey
	}
	if key == "" {
		return model.AxisScores{}, ErrNoCredential
	}

	text, err := s.callGemini(ctx, key, buildScoringPrompt(req))
	if err != nil {
		return model.AxisScores{}, err
	}
	return decodeAxisScores(text)
}

func (s *GeminiScorer) callGemini(ctx context.Context, key, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			Temperature:      0.3,
			MaxOutputTokens:  100,
		},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.ModelEndpoint(), bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// header rather than query string so the key never shows up in transport errors
	req.Header.Set("x-goog-api-key", key)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("%w: empty response from Gemini", ErrMalformedResponse)
}

func buildScoringPrompt(req model.RemoteRequest) string {
	colorLine := "COLOR: " + req.Target.Lower().Hex
	dualNote := ""
	if req.Target.IsDual() {
		t := req.Target.Lower()
		colorLine = fmt.Sprintf("GRADIENT: from %s to %s", t.ColorA, t.ColorB)
		dualNote = "\n   - This is a two-color gradient: the description must describe BOTH colors to score high"
	}

	return fmt.Sprintf(`You are an expert judge for a creative color description game. Rate the following description on three criteria:

%s
DESCRIPTION: %q

Rate each criterion from 0.0 to 5.0 (decimal precision):

1. FUNNY: How humorous, creative, or entertaining is this description?
   - Consider wordplay, metaphors, cultural references, unexpected comparisons
   - 0.0 = No humor, 5.0 = Genuinely hilarious

2. ACCURATE: How well does this description match the actual color?
   - Consider color theory, shade precision, visual accuracy%s
   - 0.0 = Completely wrong, 5.0 = Perfectly accurate

3. POPULAR: Does this strike the right balance between unique and understandable?
   - 0.0 = Too obscure or too boring, 5.0 = Creative but instantly understandable

Return ONLY this JSON format:
{"funny": X.X, "accurate": X.X, "popular": X.X}`, colorLine, req.Description, dualNote)
}

// Gemini API types
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}
