package fingerprint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/DanielPopoola/checkout-tokenization/internal/config"
	"github.com/google/uuid"
)

// HTTPProfiler talks to a profiling server over JSON.
type HTTPProfiler struct {
	serverURL  string
	httpClient *http.Client

	mu    sync.RWMutex
	orgID string
}

type profileRequest struct {
	OrgID     string `json:"org_id"`
	RequestID string `json:"request_id"`
}

func NewHTTPProfiler(cfg config.FingerprintConfig) *HTTPProfiler {
	return &HTTPProfiler{
		serverURL:  strings.TrimRight(cfg.ServerURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *HTTPProfiler) Configure(_ context.Context, orgID string) error {
	if p.serverURL == "" {
		return errors.New("profiling server url is empty")
	}
	p.mu.Lock()
	p.orgID = orgID
	p.mu.Unlock()
	return nil
}

func (p *HTTPProfiler) Profile(ctx context.Context, requestID string) (Result, error) {
	p.mu.RLock()
	orgID := p.orgID
	p.mu.RUnlock()
	if orgID == "" {
		return Result{Status: StatusNotConfigured}, nil
	}

	body, err := json.Marshal(profileRequest{OrgID: orgID, RequestID: requestID})
	if err != nil {
		return Result{}, fmt.Errorf("error marshalling json: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.serverURL+"/profile", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return Result{Status: StatusNotYet}, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return Result{Status: StatusConnectionError}, nil
	case resp.StatusCode != http.StatusOK:
		raw, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("profiling server returned status %d: %s", resp.StatusCode, string(raw))
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("error decoding json response: %w", err)
	}
	return res, nil
}

// LocalProfiler issues random session ids without a profiling server.
// Used when fingerprinting is disabled outside production.
type LocalProfiler struct{}

func (LocalProfiler) Configure(context.Context, string) error { return nil }

func (LocalProfiler) Profile(ctx context.Context, _ string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{Status: StatusOK, SessionID: uuid.NewString()}, nil
}
