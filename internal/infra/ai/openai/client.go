package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/contentlens/internal/domain/ai"
	"github.com/bryanwahyu/contentlens/internal/domain/analysis"
	"github.com/bryanwahyu/contentlens/internal/infra/ai/parse"
	"github.com/bryanwahyu/contentlens/internal/infra/ai/prompt"
)

const (
	defaultModel       = "gpt-4-turbo-preview"
	defaultMaxTokens   = 2000
	providerConfidence = 0.9
	defaultRetryAfter  = 60 * time.Second
)

type Config struct {
	APIKey          string
	Model           string
	BaseURL         string
	MaxContentChars int
	MaxOutputTokens int
	Temperature     float32
}

type Client struct {
	api *openai.Client
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaultMaxTokens
	}
	var api *openai.Client
	if cfg.APIKey != "" {
		conf := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			conf.BaseURL = cfg.BaseURL
		}
		api = openai.NewClientWithConfig(conf)
	}
	return &Client{api: api, cfg: cfg}
}

func (c *Client) Name() string { return "openai" }

func (c *Client) Analyze(ctx context.Context, req ai.Request) (*analysis.Result, error) {
	if c.api == nil {
		return nil, ai.ErrNotConfigured
	}
	if c.cfg.MaxContentChars > 0 && len(req.Content) > c.cfg.MaxContentChars {
		return nil, fmt.Errorf("%w: %d chars (max %d)", ai.ErrContentTooLarge, len(req.Content), c.cfg.MaxContentChars)
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(req.Content, req.URL)},
		},
	}
	// Reasoning models (o1/o3/o4/gpt-5*) take MaxCompletionTokens instead of MaxTokens.
	model := c.cfg.Model
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		chatReq.MaxCompletionTokens = c.cfg.MaxOutputTokens
		chatReq.Temperature = 0
	} else {
		chatReq.MaxTokens = c.cfg.MaxOutputTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ai.ErrMalformedResponse)
	}

	res, err := parse.DecodeResult(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	res.Model = model
	if res.Confidence == 0 {
		res.Confidence = providerConfidence
	}
	return res, nil
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return &ai.RateLimitError{Provider: "openai", RetryAfter: retryAfter(apiErr.Message)}
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ai.ErrNotConfigured, err)
		}
	}
	return fmt.Errorf("%w: %v", ai.ErrProvider, err)
}

var retryHintRe = regexp.MustCompile(`try again in (\d+(?:\.\d+)?)(ms|s)`)

// retryAfter pulls the wait hint out of the 429 message ("Please try again
// in 20s"). The client library does not expose the Retry-After header, so
// the message is the only place the vendor's hint survives.
func retryAfter(msg string) time.Duration {
	m := retryHintRe.FindStringSubmatch(msg)
	if m == nil {
		return defaultRetryAfter
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return defaultRetryAfter
	}
	if m[2] == "ms" {
		return time.Duration(v * float64(time.Millisecond))
	}
	return time.Duration(v * float64(time.Second))
}

func (c *Client) HealthCheck(ctx context.Context) bool { return c.api != nil }

func (c *Client) Capabilities() ai.Capabilities {
	return ai.Capabilities{
		MaxTokens:         128000,
		SupportsStreaming: true,
		RateLimit:         ai.RateLimit{RequestsPerMinute: 3500, TokensPerMinute: 150000},
		Reliability:       ai.Reliability{AverageUptime: 0.999, AverageResponseTimeMS: 2500},
	}
}
