package gemini

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
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultModel       = "gemini-1.5-flash"
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

// Client talks to the Gemini generateContent REST API directly; there is no
// SDK dependency to wrap.
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

func (c *Client) Name() string { return "gemini" }

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) Analyze(ctx context.Context, req ai.Request) (*analysis.Result, error) {
	if c.cfg.APIKey == "" {
		return nil, ai.ErrNotConfigured
	}
	if c.cfg.MaxContentChars > 0 && len(req.Content) > c.cfg.MaxContentChars {
		return nil, fmt.Errorf("%w: %d chars (max %d)", ai.ErrContentTooLarge, len(req.Content), c.cfg.MaxContentChars)
	}

	body := generateRequest{
		Contents:          []content{{Parts: []part{{Text: prompt.GetUserPrompt(req.Content, req.URL)}}}},
		SystemInstruction: &content{Parts: []part{{Text: prompt.GetSystemPrompt()}}},
		GenerationConfig: generationConfig{
			Temperature:      c.cfg.Temperature,
			MaxOutputTokens:  c.cfg.MaxOutputTokens,
			ResponseMimeType: "application/json",
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrProvider, err)
	}

	// Key goes in a header, not the query string: transport errors echo the
	// full URL into error messages and logs.
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrProvider, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty candidates", ai.ErrMalformedResponse)
	}

	res, err := parse.DecodeResult(out.Candidates[0].Content.Parts[0].Text)
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
		return &ai.RateLimitError{Provider: "gemini", RetryAfter: retryAfter(resp)}
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: gemini status %d", ai.ErrNotConfigured, resp.StatusCode)
	default:
		return fmt.Errorf("%w: gemini status %d: %s", ai.ErrProvider, resp.StatusCode, string(body))
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
		MaxTokens:         1000000,
		SupportsStreaming: true,
		RateLimit:         ai.RateLimit{RequestsPerMinute: 1000, TokensPerMinute: 4000000},
		Reliability:       ai.Reliability{AverageUptime: 0.995, AverageResponseTimeMS: 3000},
	}
}
