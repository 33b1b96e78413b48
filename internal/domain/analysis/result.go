package analysis

import (
	"fmt"
	"math"
)

// Priority level of a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// GoldenCircle scores the content against Sinek's why/how/what framing.
type GoldenCircle struct {
	Why          string   `json:"why"`
	How          string   `json:"how"`
	What         string   `json:"what"`
	OverallScore int      `json:"overallScore"`
	Insights     []string `json:"insights"`
}

// ElementsOfValue scores the content against the 30-element value pyramid.
// Map keys are element names (savesTime, reducesAnxiety, ...), values 0-10.
type ElementsOfValue struct {
	Functional   map[string]int `json:"functional"`
	Emotional    map[string]int `json:"emotional"`
	LifeChanging map[string]int `json:"lifeChanging"`
	SocialImpact map[string]int `json:"socialImpact"`
	OverallScore int            `json:"overallScore"`
	Insights     []string       `json:"insights"`
}

// CliftonStrengths maps the content's voice onto strength themes, values 0-10.
type CliftonStrengths struct {
	Themes          map[string]int `json:"themes"`
	Recommendations []string       `json:"recommendations"`
	OverallScore    int            `json:"overallScore"`
	Insights        []string       `json:"insights"`
}

type Recommendation struct {
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	ActionItems []string `json:"actionItems"`
}

// Result is the normalized analysis every provider must produce. The same
// shape is returned over the wire, stored in the database and exported, so
// it has to survive a marshal/unmarshal round trip unchanged.
type Result struct {
	GoldenCircle     GoldenCircle     `json:"goldenCircle"`
	ElementsOfValue  ElementsOfValue  `json:"elementsOfValue"`
	CliftonStrengths CliftonStrengths `json:"cliftonStrengths"`
	Recommendations  []Recommendation `json:"recommendations"`
	OverallScore     int              `json:"overallScore"`
	Summary          string           `json:"summary"`
	Model            string           `json:"model,omitempty"`
	Confidence       float64          `json:"confidence,omitempty"`
}

// RoundMean is the canonical aggregation of the three framework scores.
func RoundMean(a, b, c int) int {
	return int(math.Round(float64(a+b+c) / 3.0))
}

func validScore(v int) bool  { return v >= 0 && v <= 100 }
func validWeight(v int) bool { return v >= 0 && v <= 10 }

func validateElements(section string, m map[string]int) error {
	if len(m) == 0 {
		return fmt.Errorf("elementsOfValue.%s is empty", section)
	}
	for name, v := range m {
		if !validWeight(v) {
			return fmt.Errorf("elementsOfValue.%s.%s score %d out of range", section, name, v)
		}
	}
	return nil
}

// Validate checks structural completeness and score ranges. Providers run it
// on every decoded response; anything it rejects is treated as malformed.
func (r *Result) Validate() error {
	if !validScore(r.OverallScore) {
		return fmt.Errorf("overallScore %d out of range", r.OverallScore)
	}
	if !validScore(r.GoldenCircle.OverallScore) {
		return fmt.Errorf("goldenCircle.overallScore %d out of range", r.GoldenCircle.OverallScore)
	}
	if r.GoldenCircle.Why == "" || r.GoldenCircle.How == "" || r.GoldenCircle.What == "" {
		return fmt.Errorf("goldenCircle narrative incomplete")
	}
	if !validScore(r.ElementsOfValue.OverallScore) {
		return fmt.Errorf("elementsOfValue.overallScore %d out of range", r.ElementsOfValue.OverallScore)
	}
	for section, m := range map[string]map[string]int{
		"functional":   r.ElementsOfValue.Functional,
		"emotional":    r.ElementsOfValue.Emotional,
		"lifeChanging": r.ElementsOfValue.LifeChanging,
		"socialImpact": r.ElementsOfValue.SocialImpact,
	} {
		if err := validateElements(section, m); err != nil {
			return err
		}
	}
	if !validScore(r.CliftonStrengths.OverallScore) {
		return fmt.Errorf("cliftonStrengths.overallScore %d out of range", r.CliftonStrengths.OverallScore)
	}
	if len(r.CliftonStrengths.Themes) == 0 {
		return fmt.Errorf("cliftonStrengths.themes is empty")
	}
	for name, v := range r.CliftonStrengths.Themes {
		if !validWeight(v) {
			return fmt.Errorf("cliftonStrengths.themes.%s score %d out of range", name, v)
		}
	}
	for i, rec := range r.Recommendations {
		switch rec.Priority {
		case PriorityHigh, PriorityMedium, PriorityLow:
		default:
			return fmt.Errorf("recommendations[%d].priority %q invalid", i, rec.Priority)
		}
		if rec.Description == "" {
			return fmt.Errorf("recommendations[%d].description is empty", i)
		}
	}
	if r.Summary == "" {
		return fmt.Errorf("summary is empty")
	}
	return nil
}
