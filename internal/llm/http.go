package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// HTTPRouter calls a local OpenAI-compatible chat completions endpoint per
// tier. It is the "real local-inference backend" described in spec.md §9's
// design notes: one endpoint for the minor tier, one for the story tier,
// each lazily dialed and confirmed reachable on first use.
type HTTPRouter struct {
	client *http.Client

	mu       sync.Mutex
	loaded   map[Tier]bool
	endpoint map[Tier]string
}

// NewHTTPRouter creates a router with the given per-tier endpoint URLs
// (e.g. from LLM_MINOR_ENDPOINT / LLM_STORY_ENDPOINT).
func NewHTTPRouter(minorEndpoint, storyEndpoint string) *HTTPRouter {
	return &HTTPRouter{
		client: &http.Client{Timeout: 30 * time.Second},
		loaded: make(map[Tier]bool),
		endpoint: map[Tier]string{
			TierMinor: minorEndpoint,
			TierStory: storyEndpoint,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate dials the tier's endpoint (lazily, on first call per tier) and
// returns the model's raw text completion.
func (r *HTTPRouter) Generate(ctx context.Context, tier Tier, systemPrompt, userPrompt string, opts Options) (string, error) {
	url, ok := r.endpoint[tier]
	if !ok || url == "" {
		return "", fmt.Errorf("no endpoint configured for tier %q", tier)
	}

	r.markLoaded(tier)

	reqBody := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		MaxTokens:   opts.MaxTokens,
		Stop:        opts.StopStrings,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling %s tier at %s: %w", tier, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s tier returned status %d", tier, resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%s tier returned no choices", tier)
	}
	return decoded.Choices[0].Message.Content, nil
}

func (r *HTTPRouter) markLoaded(tier Tier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded[tier] = true
}

var _ Router = (*HTTPRouter)(nil)
