package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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
	return NewClient(Config{APIKey: "test-key", BaseURL: baseURL})
}

func candidateBody(text string) []byte {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return b
}

func TestAnalyzeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		// the credential must never ride in the URL
		assert.Empty(t, r.URL.RawQuery)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		w.Write(candidateBody(resultDoc))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "some copy"})
	require.NoError(t, err)
	assert.Equal(t, 75, res.OverallScore)
	assert.Equal(t, "gemini-1.5-flash", res.Model)
}

func TestAnalyzeCodeFencedAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateBody("```json\n" + resultDoc + "\n```"))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, 75, res.OverallScore)
}

func TestAnalyzeRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	require.Error(t, err)
	assert.True(t, ai.IsRateLimit(err))

	var rle *ai.RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, "gemini", rle.Provider)
}

func TestAnalyzeForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), ai.Request{Content: "c"})
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestAnalyzeEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
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
