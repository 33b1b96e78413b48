// Package fallback implements the deterministic offline analyzer. It is the
// terminal provider in the orchestration chain and never fails: any content
// maps onto exactly one business archetype whose pre-built profile is
// returned with reduced confidence.
package fallback

import (
	"context"
	"strings"

	"github.com/bryanwahyu/contentlens/internal/domain/ai"
	"github.com/bryanwahyu/contentlens/internal/domain/analysis"
)

const (
	// ModelName marks fallback-produced results so callers can tell them
	// apart from provider results.
	ModelName = "fallback"

	confidence = 0.6
)

// rule is one row of the classification table. Rules are evaluated in
// order and the first match wins, so more specific archetypes sit above
// broader ones (saas before tech, tech before generic).
type rule struct {
	archetype string
	domains   []string
	keywords  []string
	build     func() *analysis.Result
}

var rules = []rule{
	{
		archetype: "saas",
		domains:   []string{"stripe.com", "hubspot.com", "salesforce.com"},
		keywords:  []string{"saas", "cloud", "platform", "api", "subscription", "workflow"},
		build:     saasResult,
	},
	{
		archetype: "ecommerce",
		domains:   []string{"amazon.", "shopify.", "etsy."},
		keywords:  []string{"shop", "store", "cart", "checkout", "ecommerce", "e-commerce", "marketplace", "free shipping"},
		build:     ecommerceResult,
	},
	{
		archetype: "tech",
		domains:   []string{"apple.com", "google.com", "microsoft.com"},
		keywords:  []string{"technology", "innovative", "innovation", "software", "hardware", "engineering", "digital"},
		build:     techResult,
	},
	{
		archetype: "consulting",
		keywords:  []string{"consulting", "consultant", "advisory", "advisors"},
		build:     consultingResult,
	},
	{
		archetype: "education",
		keywords:  []string{"education", "learning", "course", "curriculum", "students", "university", "school"},
		build:     educationResult,
	},
	{
		archetype: "healthcare",
		keywords:  []string{"healthcare", "medical", "patient", "clinic", "hospital", "health"},
		build:     healthcareResult,
	},
}

// Analyzer satisfies the provider port. Stateless and safe for concurrent use.
type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Name() string { return ModelName }

func (a *Analyzer) Analyze(ctx context.Context, req ai.Request) (*analysis.Result, error) {
	res := classify(req.Content, req.URL)()
	res.OverallScore = analysis.RoundMean(
		res.GoldenCircle.OverallScore,
		res.ElementsOfValue.OverallScore,
		res.CliftonStrengths.OverallScore,
	)
	res.Model = ModelName
	res.Confidence = confidence
	return res, nil
}

func classify(content, sourceURL string) func() *analysis.Result {
	lcContent := strings.ToLower(content)
	lcURL := strings.ToLower(sourceURL)
	for _, r := range rules {
		if lcURL != "" {
			for _, d := range r.domains {
				if strings.Contains(lcURL, d) {
					return r.build
				}
			}
		}
		for _, k := range r.keywords {
			if strings.Contains(lcContent, k) {
				return r.build
			}
		}
	}
	return genericResult
}

func (a *Analyzer) HealthCheck(ctx context.Context) bool { return true }

func (a *Analyzer) Capabilities() ai.Capabilities {
	return ai.Capabilities{
		MaxTokens:         50000,
		SupportsStreaming: false,
		Reliability:       ai.Reliability{AverageUptime: 1.0, AverageResponseTimeMS: 5},
	}
}
