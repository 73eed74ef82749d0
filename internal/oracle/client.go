package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dhruvbhalode/capstone/internal/logger"
)

// Client speaks HTTP to the external knowledge-tracing service.
type Client struct {
	baseURL     string
	probeClient *http.Client
	httpClient  *http.Client
	log         *logger.Logger
}

// New creates a Client. probeTimeout bounds the liveness check; requestTimeout
// bounds every other call so a hung service never blocks a request indefinitely.
func New(baseURL string, probeTimeout, requestTimeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		probeClient: &http.Client{Timeout: probeTimeout},
		httpClient:  &http.Client{Timeout: requestTimeout},
		log:         logger.Default().WithPrefix("oracle"),
	}
}

// InteractionEvent is the wire shape of one learning event pushed to the service.
type InteractionEvent struct {
	UserID    string   `json:"user_id"`
	ProblemID string   `json:"problem_id"`
	Skills    []string `json:"skills"`
	Correct   bool     `json:"correct"`
	Timestamp string   `json:"timestamp"`
}

// Candidate is the serializable summary of a problem sent for ranking.
type Candidate struct {
	ID         string   `json:"_id"`
	Title      string   `json:"title"`
	Difficulty string   `json:"difficulty"`
	Skills     []string `json:"skills"`
}

// Status checks the service's health endpoint.
func (c *Client) Status(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("oracle")
	url := c.baseURL + "/dkt/status"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.probeClient.Do(req)
	if err != nil {
		log.Debug("status probe failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug("status probe non-OK: status=%d", resp.StatusCode)
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

// PushInteraction sends one interaction event to the service.
func (c *Client) PushInteraction(ctx context.Context, ev InteractionEvent) error {
	log := logger.FromContext(ctx).WithPrefix("oracle").WithField("user_id", ev.UserID)
	log.Debug("pushing interaction: problem_id=%s, correct=%t", ev.ProblemID, ev.Correct)

	return c.post(ctx, "/dkt/interaction", ev, nil)
}

type recommendRequest struct {
	UserID           string      `json:"user_id"`
	Problems         []Candidate `json:"problems"`
	TargetDifficulty float64     `json:"target_difficulty"`
}

type recommendResponse struct {
	Recommendations []Candidate `json:"recommendations"`
}

// RequestRecommendations asks the service to rank the candidate pool for a user.
func (c *Client) RequestRecommendations(ctx context.Context, userID string, candidates []Candidate, targetDifficulty float64) ([]Candidate, error) {
	log := logger.FromContext(ctx).WithPrefix("oracle").WithField("user_id", userID)
	log.Debug("requesting recommendations: candidates=%d, target_difficulty=%.2f", len(candidates), targetDifficulty)
	start := time.Now()

	var out recommendResponse
	err := c.post(ctx, "/dkt/recommend", recommendRequest{
		UserID:           userID,
		Problems:         candidates,
		TargetDifficulty: targetDifficulty,
	}, &out)
	if err != nil {
		return nil, err
	}

	log.Debug("recommendations received in %v: ranked=%d", time.Since(start), len(out.Recommendations))
	return out.Recommendations, nil
}

type masteryResponse struct {
	Mastery map[string]float64 `json:"mastery"`
}

// RequestMastery fetches the per-skill mastery estimates for a user.
func (c *Client) RequestMastery(ctx context.Context, userID string) (map[string]float64, error) {
	log := logger.FromContext(ctx).WithPrefix("oracle").WithField("user_id", userID)
	log.Debug("requesting mastery")
	start := time.Now()

	url := fmt.Sprintf("%s/dkt/mastery/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("mastery request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Debug("mastery request non-OK: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("mastery status %d: %s", resp.StatusCode, string(body))
	}

	var out masteryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Debug("failed to decode mastery response: %v", err)
		return nil, err
	}

	log.Debug("mastery received in %v: skills=%d", time.Since(start), len(out.Mastery))
	return out.Mastery, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	log := logger.FromContext(ctx).WithPrefix("oracle")

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("request to %s failed: %v", path, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Debug("request to %s non-2xx: status=%d, body=%s", path, resp.StatusCode, string(respBody))
		return fmt.Errorf("%s status %d: %s", path, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
