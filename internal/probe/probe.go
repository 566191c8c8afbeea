// Package probe drives the HTTP API through a fixed sequence of feature
// scenarios with a caller-supplied bearer token. Scenarios are independent
// and optional: a missing local fixture is reported as skipped, never failed.
package probe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/pipeline"
)

type Prober struct {
	baseURL      string
	token        string
	audioFixture string
	client       *http.Client

	// lastIconID carries state between the generate and fetch scenarios.
	lastIconID string
}

func New(baseURL, token, audioFixture string) *Prober {
	return &Prober{
		baseURL:      strings.TrimRight(baseURL, "/"),
		token:        token,
		audioFixture: audioFixture,
		client:       &http.Client{Timeout: 60 * time.Second},
	}
}

// Steps returns the scenario pipeline in execution order.
func (p *Prober) Steps() []pipeline.Step {
	return []pipeline.Step{
		{Name: "generate icon with audio", Run: p.generateIconWithAudio},
		{Name: "generate icon without audio", Run: p.generateIconWithoutAudio},
		{Name: "convert recorded audio", Run: p.convertRecordedAudio},
		{Name: "fetch previously created icon", Run: p.fetchCreatedIcon},
		{Name: "unauthorized mutation rejected", Run: p.unauthorizedMutation},
	}
}

// Run executes every scenario and returns the results plus the final tally.
// The tally, not the exit code, is the contract callers parse.
func (p *Prober) Run(ctx context.Context, delay time.Duration, observer func(pipeline.Result)) ([]pipeline.Result, pipeline.Tally) {
	runner := &pipeline.Runner{Delay: delay, Observer: observer}
	results := runner.Run(ctx, p.Steps())
	return results, pipeline.Summarize(results)
}

type iconResponse struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	ImageURL string  `json:"imageUrl"`
	AudioURL *string `json:"audioUrl"`
	Error    string  `json:"error"`
	Code     string  `json:"code"`
}

func (p *Prober) doJSON(ctx context.Context, method, path string, payload any, authorized bool) (int, []byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, buf.Bytes(), nil
}

func (p *Prober) requireToken() error {
	if p.token == "" {
		return fmt.Errorf("TEST_USER_TOKEN not set: %w", pipeline.ErrSkip)
	}
	return nil
}

func (p *Prober) generateIconWithAudio(ctx context.Context) (string, error) {
	if err := p.requireToken(); err != nil {
		return "", err
	}

	status, body, err := p.doJSON(ctx, http.MethodPost, "/api/v1/icons/generate-from-text", map[string]any{
		"text":          "hello",
		"generateAudio": true,
	}, true)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("expected 201, got %d: %s", status, body)
	}

	var icon iconResponse
	if err := json.Unmarshal(body, &icon); err != nil {
		return "", fmt.Errorf("response was not JSON: %w", err)
	}
	if icon.AudioURL == nil || *icon.AudioURL == "" {
		return "", fmt.Errorf("audio was requested but the response carries no audioUrl")
	}
	p.lastIconID = icon.ID
	return fmt.Sprintf("icon %s generated with audio %s", icon.ID, *icon.AudioURL), nil
}

func (p *Prober) generateIconWithoutAudio(ctx context.Context) (string, error) {
	if err := p.requireToken(); err != nil {
		return "", err
	}

	status, body, err := p.doJSON(ctx, http.MethodPost, "/api/v1/icons/generate-from-text", map[string]any{
		"text":          "water",
		"generateAudio": false,
	}, true)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("expected 201, got %d: %s", status, body)
	}

	var icon iconResponse
	if err := json.Unmarshal(body, &icon); err != nil {
		return "", fmt.Errorf("response was not JSON: %w", err)
	}
	// The absent audio field is the expected-pass condition here.
	if icon.AudioURL != nil && *icon.AudioURL != "" {
		return "", fmt.Errorf("generateAudio was false but audioUrl %q came back", *icon.AudioURL)
	}
	if p.lastIconID == "" {
		p.lastIconID = icon.ID
	}
	return fmt.Sprintf("icon %s generated, audio confirmed absent", icon.ID), nil
}

func (p *Prober) convertRecordedAudio(ctx context.Context) (string, error) {
	if err := p.requireToken(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(p.audioFixture)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("sample audio %s not on disk: %w", p.audioFixture, pipeline.ErrSkip)
		}
		return "", err
	}

	status, body, err := p.doJSON(ctx, http.MethodPost, "/api/v1/icons/generate-audio-from-recording", map[string]any{
		"text":  "recorded sample",
		"audio": base64.StdEncoding.EncodeToString(data),
	}, true)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("expected 201, got %d: %s", status, body)
	}
	return fmt.Sprintf("recording converted (%d bytes submitted)", len(data)), nil
}

func (p *Prober) fetchCreatedIcon(ctx context.Context) (string, error) {
	if err := p.requireToken(); err != nil {
		return "", err
	}
	if p.lastIconID == "" {
		return "", fmt.Errorf("no icon was created earlier in this run: %w", pipeline.ErrSkip)
	}

	status, body, err := p.doJSON(ctx, http.MethodGet, "/api/v1/icons/"+p.lastIconID, nil, true)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("expected 200, got %d: %s", status, body)
	}
	return "icon " + p.lastIconID + " fetched", nil
}

func (p *Prober) unauthorizedMutation(ctx context.Context) (string, error) {
	status, body, err := p.doJSON(ctx, http.MethodPost, "/api/v1/boards", map[string]any{
		"name": "should not be created",
	}, false)
	if err != nil {
		return "", err
	}
	if status != http.StatusUnauthorized {
		return "", fmt.Errorf("expected 401 without credentials, got %d", status)
	}

	var parsed iconResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("401 body was not JSON: %w", err)
	}
	if parsed.Code != "MISSING_TOKEN" {
		return "", fmt.Errorf("expected code MISSING_TOKEN, got %q", parsed.Code)
	}
	return "mutation without credentials rejected with MISSING_TOKEN", nil
}
