package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bryanwahyu/contentlens/internal/domain/ai"
	"github.com/bryanwahyu/contentlens/internal/domain/analysis"
	"github.com/bryanwahyu/contentlens/internal/infra/ai/parse"
	"github.com/bryanwahyu/contentlens/internal/infra/ai/prompt"
)

const (
	defaultBaseURL     = "https://api.anthropic.com"
	defaultModel       = "claude-3-haiku-20240307"
	apiVersion         = "2023-06-01"
	providerConfidence = 0.85
)

type Config struct {
	APIKey          string
	Model           string
	BaseURL         string
	MaxContentChars int
	MaxOutputTokens int
	Temperature     float32
}

// Client talks to the Anthropic messages REST API directly. The model has
// no JSON response mode, so the answer may wrap the document in prose and
// extraction does the rest.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 2000
	}
	return &Client{httpClient: &http.Client{}, cfg: cfg}
}

func (c *Client) Name() string { return "claude" }

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float32   `json:"temperature"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Client) Analyze(ctx context.Context, req ai.Request) (*analysis.Result, error) {
	if c.cfg.APIKey == "" {
		return nil, ai.ErrNotConfigured
	}
	if c.cfg.MaxContentChars > 0 && len(req.Content) > c.cfg.MaxContentChars {
		return nil, fmt.Errorf("%w: %d chars (max %d)", ai.ErrContentTooLarge, len(req.Content), c.cfg.MaxContentChars)
	}

	body := messagesRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxOutputTokens,
		Temperature: c.cfg.Temperature,
		System:      prompt.GetSystemPrompt(),
		Messages:    []message{{Role: "user", Content: prompt.GetUserPrompt(req.Content, req.URL)}},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrProvider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrProvider, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.cfg.APIKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp)
	}

	var out messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	var text string
	for _, block := range out.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("%w: no text content", ai.ErrMalformedResponse)
	}

	res, err := parse.DecodeResult(text)
	if err != nil {
		return nil, err
	}
	res.Model = c.cfg.Model
	if res.Confidence == 0 {
		res.Confidence = providerConfidence
	}
	return res, nil
}

func classifyStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return &ai.RateLimitError{Provider: "claude", RetryAfter: retryAfter(resp)}
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: claude status %d", ai.ErrNotConfigured, resp.StatusCode)
	default:
		return fmt.Errorf("%w: claude status %d: %s", ai.ErrProvider, resp.StatusCode, string(body))
	}
}

func retryAfter(resp *http.Response) time.Duration {
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func (c *Client) HealthCheck(ctx context.Context) bool { return c.cfg.APIKey != "" }

func (c *Client) Capabilities() ai.Capabilities {
	return ai.Capabilities{
		MaxTokens:         200000,
		SupportsStreaming: true,
		RateLimit:         ai.RateLimit{RequestsPerMinute: 1000, TokensPerMinute: 100000},
		Reliability:       ai.Reliability{AverageUptime: 0.998, AverageResponseTimeMS: 2800},
	}
}
