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

// EndpointScorer posts the scoring request as JSON to a self-hosted scorer and expects
// {"funny":n,"accurate":n,"popular":n} back.
type EndpointScorer struct {
	url    string
	apiKey string
	client *http.Client
}

func NewEndpointScorer(cfg config.AIConfig) *EndpointScorer {
	return &EndpointScorer{
		url:    cfg.EndpointURL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

func (s *EndpointScorer) Score(ctx context.Context, req model.RemoteRequest) (model.AxisScores, error) {
	out := model.RemoteRequest{
		Description: req.Description,
		Target:      req.Target.Lower(),
		Credential:  req.Credential,
	}
	if out.Credential == "" {
		out.Credential = s.apiKey
	}

	jsonBody, err := json.Marshal(out)
	if err != nil {
		return model.AxisScores{}, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(jsonBody))
	if err != nil {
		return model.AxisScores{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return model.AxisScores{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.AxisScores{}, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.AxisScores{}, fmt.Errorf("read response: %w", err)
	}
	return decodeAxisScores(string(body))
}
