package ai

import (
	"context"

	"github.com/bryanwahyu/contentlens/internal/domain/analysis"
)

// Request carries one piece of content to score. URL is informational for
// text submissions and the source address for website submissions.
type Request struct {
	Content     string
	URL         string
	ContentType analysis.ContentType
}

type RateLimit struct {
	RequestsPerMinute int `json:"requests_per_minute"`
	TokensPerMinute   int `json:"tokens_per_minute"`
}

type Reliability struct {
	AverageUptime         float64 `json:"average_uptime"`
	AverageResponseTimeMS int     `json:"average_response_time_ms"`
}

// Capabilities is static vendor metadata surfaced on the providers endpoint.
type Capabilities struct {
	MaxTokens         int         `json:"max_tokens"`
	SupportsStreaming bool        `json:"supports_streaming"`
	RateLimit         RateLimit   `json:"rate_limit"`
	Reliability       Reliability `json:"reliability"`
}

// Provider is implemented once per LLM vendor, plus the deterministic
// fallback analyzer. Analyze must return either a validated result or an
// error from this package's taxonomy.
type Provider interface {
	Name() string
	Analyze(ctx context.Context, req Request) (*analysis.Result, error)
	HealthCheck(ctx context.Context) bool
	Capabilities() Capabilities
}
