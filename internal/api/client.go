package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"repoplan/internal/plan"
)

// processPath is the backend's analysis endpoint, relative to the base URL.
const processPath = "/api/process"

// StatusError reports a completed request that came back non-2xx.
// The code is for diagnostics only; user-facing wording is decided by the caller.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// Client talks to the feature-planning backend.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// New returns a client for the backend at base, e.g. "http://localhost:8000".
// A zero timeout means the request runs until it completes or fails.
func New(base string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Process submits a repository URL and feature description and returns the
// structured plan. Errors split three ways: nil on a decoded 2xx response,
// *StatusError when the backend answered non-2xx, anything else when the
// request never completed.
func (c *Client) Process(ctx context.Context, repoURL, feature string) (*plan.Analysis, error) {
	body, err := json.Marshal(plan.Request{
		RepoURL:            repoURL,
		FeatureDescription: feature,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+processPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("backend rejected request", zap.Int("status", resp.StatusCode))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var a plan.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		c.log.Warn("undecodable response body", zap.Error(err))
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.log.Info("plan received",
		zap.String("repository", a.RepositoryName),
		zap.Int("implementation_steps", len(a.ImplementationSteps)),
	)
	return &a, nil
}
