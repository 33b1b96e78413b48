package claude

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/contentlens/internal/domain/ai"
)

const resultDoc = `{
	"goldenCircle": {"why": "w", "how": "h", "what": "t", "overallScore": 80, "insights": ["i"]},
	"elementsOfValue": {"functional": {"savesTime": 8}, "emotional": {"fun": 5}, "lifeChanging": {"motivation": 4}, "socialImpact": {"selfTranscendence": 2}, "overallScore": 75, "insights": ["i"]},
	"cliftonStrengths": {"themes": {"strategic": 7}, "recommendations": ["r"], "overallScore": 70, "insights": ["i"]},
	"recommendations": [],
	"overallScore": 75,
	"summary": "s"
}`

func newTestClient(baseURL string) *Client {
	return NewClient(Config{APIKey: "test-key", Model: "claude-3-haiku-20240307", BaseURL: baseURL})
}

func messagesBody(text string) []byte {
	b, _ := json.Marshal(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return b
}

func TestAnalyzeProseWrappedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("Anthropic-Version"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-3-haiku-20240307", req["model"])
		assert.NotEmpty(t, req["system"])

		w.Write(messagesBody("Here is your analysis:\n\n" + resultDoc + "\n\nHope that helps!"))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "some copy"})
	require.NoError(t, err)
	assert.Equal(t, 75, res.OverallScore)
	assert.Equal(t, "claude-3-haiku-20240307", res.Model)
	assert.InDelta(t, 0.85, res.Confidence, 0.001)
}

func TestAnalyzeRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	require.Error(t, err)
	assert.True(t, ai.IsRateLimit(err))

	var rle *ai.RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, "claude", rle.Provider)
	assert.Equal(t, 30*time.Second, rle.RetryAfter)
}

func TestAnalyzeAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestAnalyzeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	assert.ErrorIs(t, err, ai.ErrProvider)
}

func TestAnalyzeMalformedAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(messagesBody("I cannot produce JSON today."))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	assert.ErrorIs(t, err, ai.ErrMalformedResponse)
}

func TestAnalyzeWithoutKey(t *testing.T) {
	c := NewClient(Config{})
	_, err := c.Analyze(context.Background(), ai.Request{Content: "c"})
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
	assert.False(t, c.HealthCheck(context.Background()))
}

func TestAnalyzeContentTooLarge(t *testing.T) {
	c := NewClient(Config{APIKey: "k", MaxContentChars: 10})
	_, err := c.Analyze(context.Background(), ai.Request{Content: "0123456789ab"})
	assert.ErrorIs(t, err, ai.ErrContentTooLarge)
}

func TestRetryAfterHeaderMissing(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	assert.Equal(t, time.Duration(0), retryAfter(resp))
	resp.Header.Set("Retry-After", fmt.Sprintf("%d", 5))
	assert.Equal(t, 5*time.Second, retryAfter(resp))
}
