package openai

import (
	"context"
	"encoding/json"
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
	return NewClient(Config{APIKey: "test-key", BaseURL: baseURL + "/v1"})
}

func completionBody(text string) []byte {
	b, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]string{"role": "assistant", "content": text}},
		},
	})
	return b
}

func errorBody(msg, errType string) []byte {
	b, _ := json.Marshal(map[string]any{
		"error": map[string]any{"message": msg, "type": errType},
	})
	return b
}

func TestAnalyzeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4-turbo-preview", req["model"])
		assert.Equal(t, map[string]any{"type": "json_object"}, req["response_format"])

		w.Write(completionBody(resultDoc))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "some copy"})
	require.NoError(t, err)
	assert.Equal(t, 75, res.OverallScore)
	assert.Equal(t, "gpt-4-turbo-preview", res.Model)
	assert.InDelta(t, 0.9, res.Confidence, 0.001)
}

func TestAnalyzeRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write(errorBody("Rate limit reached for requests. Please try again in 20s.", "requests"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	require.Error(t, err)
	assert.True(t, ai.IsRateLimit(err))

	var rle *ai.RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, "openai", rle.Provider)
	assert.Equal(t, 20*time.Second, rle.RetryAfter)
}

func TestAnalyzeAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(errorBody("Incorrect API key provided", "invalid_request_error"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestAnalyzeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(errorBody("The server had an error", "server_error"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	assert.ErrorIs(t, err, ai.ErrProvider)
}

func TestAnalyzeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	assert.ErrorIs(t, err, ai.ErrMalformedResponse)
}

func TestAnalyzeMalformedAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody("I cannot produce JSON today."))
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

func TestRetryAfterHint(t *testing.T) {
	assert.Equal(t, 20*time.Second, retryAfter("Please try again in 20s."))
	assert.Equal(t, 1500*time.Millisecond, retryAfter("Please try again in 1.5s."))
	assert.Equal(t, 250*time.Millisecond, retryAfter("Please try again in 250ms."))
	assert.Equal(t, defaultRetryAfter, retryAfter("Rate limit reached."))
	assert.Equal(t, defaultRetryAfter, retryAfter(""))
}
