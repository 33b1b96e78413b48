package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResult() *Result {
	return &Result{
		GoldenCircle: GoldenCircle{
			Why: "w", How: "h", What: "t",
			OverallScore: 85,
			Insights:     []string{"i"},
		},
		ElementsOfValue: ElementsOfValue{
			Functional:   map[string]int{"savesTime": 8},
			Emotional:    map[string]int{"reducesAnxiety": 5},
			LifeChanging: map[string]int{"providesHope": 3},
			SocialImpact: map[string]int{"selfTranscendence": 2},
			OverallScore: 88,
			Insights:     []string{"i"},
		},
		CliftonStrengths: CliftonStrengths{
			Themes:          map[string]int{"strategic": 8},
			Recommendations: []string{"r"},
			OverallScore:    78,
			Insights:        []string{"i"},
		},
		Recommendations: []Recommendation{
			{Priority: PriorityHigh, Category: "c", Description: "d", ActionItems: []string{"a"}},
		},
		OverallScore: 84,
		Summary:      "s",
	}
}

func TestValidateAccepts(t *testing.T) {
	require.NoError(t, validResult().Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Result)
	}{
		{"overall score above range", func(r *Result) { r.OverallScore = 101 }},
		{"negative golden circle score", func(r *Result) { r.GoldenCircle.OverallScore = -1 }},
		{"missing why", func(r *Result) { r.GoldenCircle.Why = "" }},
		{"empty functional elements", func(r *Result) { r.ElementsOfValue.Functional = nil }},
		{"element weight above range", func(r *Result) { r.ElementsOfValue.Emotional["reducesAnxiety"] = 11 }},
		{"empty themes", func(r *Result) { r.CliftonStrengths.Themes = map[string]int{} }},
		{"theme weight above range", func(r *Result) { r.CliftonStrengths.Themes["strategic"] = 99 }},
		{"bad priority", func(r *Result) { r.Recommendations[0].Priority = "urgent" }},
		{"empty recommendation description", func(r *Result) { r.Recommendations[0].Description = "" }},
		{"empty summary", func(r *Result) { r.Summary = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResult()
			tt.mutate(r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestRoundMean(t *testing.T) {
	assert.Equal(t, 84, RoundMean(85, 88, 78))
	assert.Equal(t, 80, RoundMean(80, 90, 70))
	assert.Equal(t, 79, RoundMean(82, 76, 80))
	assert.Equal(t, 0, RoundMean(0, 0, 0))
	assert.Equal(t, 100, RoundMean(100, 100, 100))
}

func TestAnalysisWireFormatRoundTrip(t *testing.T) {
	a := &Analysis{
		ID:          "analysis_1700000000000_abcd1234",
		URL:         "https://example.com",
		ContentType: ContentTypeWebsite,
		Result:      *validResult(),
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	// embedded result fields must flatten to the top level
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "goldenCircle")
	assert.Contains(t, m, "elementsOfValue")
	assert.Contains(t, m, "cliftonStrengths")
	assert.Contains(t, m, "overallScore")
	assert.NotContains(t, m, "Result")

	var back Analysis
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, a.ID, back.ID)
	assert.Equal(t, a.Result, back.Result)
}
