package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/contentlens/internal/domain/ai"
)

func TestExtractJSONPlain(t *testing.T) {
	doc, ok := ExtractJSON(`{"a": 1}`)
	require.True(t, ok)
	assert.Equal(t, `{"a": 1}`, doc)
}

func TestExtractJSONFromProse(t *testing.T) {
	raw := "Here is the analysis you asked for:\n\n{\"a\": {\"b\": 2}}\n\nLet me know if you need anything else."
	doc, ok := ExtractJSON(raw)
	require.True(t, ok)
	assert.Equal(t, `{"a": {"b": 2}}`, doc)
}

func TestExtractJSONCodeFence(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	doc, ok := ExtractJSON(raw)
	require.True(t, ok)
	assert.Equal(t, `{"a": 1}`, doc)
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	raw := `prefix {"text": "closing brace } inside", "n": 1} suffix`
	doc, ok := ExtractJSON(raw)
	require.True(t, ok)
	assert.Equal(t, `{"text": "closing brace } inside", "n": 1}`, doc)
}

func TestExtractJSONEscapedQuote(t *testing.T) {
	raw := `{"text": "quote \" and brace }", "n": 2}`
	doc, ok := ExtractJSON(raw)
	require.True(t, ok)
	assert.Equal(t, raw, doc)
}

func TestExtractJSONNoObject(t *testing.T) {
	_, ok := ExtractJSON("no json here")
	assert.False(t, ok)

	_, ok = ExtractJSON(`{"never": "closed"`)
	assert.False(t, ok)
}

func TestDecodeResultMalformed(t *testing.T) {
	cases := []string{
		"plain text answer",
		`{"broken": }`,
		`{"goldenCircle": {"overallScore": 500}}`,
		`{}`,
	}
	for _, raw := range cases {
		_, err := DecodeResult(raw)
		assert.ErrorIs(t, err, ai.ErrMalformedResponse, "input: %s", raw)
	}
}

func TestDecodeResultValid(t *testing.T) {
	raw := `The model says: {
		"goldenCircle": {"why": "w", "how": "h", "what": "t", "overallScore": 80, "insights": ["i"]},
		"elementsOfValue": {"functional": {"savesTime": 8}, "emotional": {"fun": 5}, "lifeChanging": {"motivation": 4}, "socialImpact": {"selfTranscendence": 2}, "overallScore": 75, "insights": ["i"]},
		"cliftonStrengths": {"themes": {"strategic": 7}, "recommendations": ["r"], "overallScore": 70, "insights": ["i"]},
		"recommendations": [{"priority": "high", "category": "c", "description": "d", "actionItems": ["a"]}],
		"overallScore": 75,
		"summary": "s"
	}`
	res, err := DecodeResult(raw)
	require.NoError(t, err)
	assert.Equal(t, 75, res.OverallScore)
	assert.Equal(t, 8, res.ElementsOfValue.Functional["savesTime"])
}
