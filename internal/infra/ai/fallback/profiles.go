package fallback

import "github.com/bryanwahyu/contentlens/internal/domain/analysis"

// Full element taxonomy: every profile scores all 30 elements so the
// fallback output passes the same validation as provider output.
var (
	functionalElements = []string{
		"savesTime", "simplifies", "makesMoney", "reducesRisk", "organizes",
		"integrates", "connects", "reducesEffort", "avoidsHassles", "reducesCost",
		"quality", "variety", "sensoryAppeal", "informs",
	}
	emotionalElements = []string{
		"reducesAnxiety", "rewardsMe", "nostalgia", "designAesthetics", "badgeValue",
		"wellness", "therapeuticValue", "fun", "attractiveness", "providesAccess",
	}
	lifeChangingElements = []string{
		"providesHope", "selfActualization", "motivation", "heirloom", "affiliation",
	}
	socialImpactElements = []string{"selfTranscendence"}

	strengthThemes = []string{
		"achiever", "activator", "adaptability", "analytical", "arranger", "belief",
		"command", "communication", "competition", "connectedness", "consistency",
		"context", "deliberative", "developer", "discipline", "empathy", "focus",
		"futuristic", "harmony", "ideation", "includer", "individualization",
		"input", "intellection", "learner", "maximizer", "positivity", "relator",
		"responsibility", "restorative", "selfAssurance", "significance",
		"strategic", "woo",
	}
)

func elementScores(names []string, base int, overrides map[string]int) map[string]int {
	m := make(map[string]int, len(names))
	for _, name := range names {
		if v, ok := overrides[name]; ok {
			m[name] = v
			continue
		}
		m[name] = base
	}
	return m
}

func themeScores(base int, overrides map[string]int) map[string]int {
	return elementScores(strengthThemes, base, overrides)
}

func saasResult() *analysis.Result {
	return &analysis.Result{
		GoldenCircle: analysis.GoldenCircle{
			Why:          "Empowering teams to work smarter by removing operational friction through software.",
			How:          "A cloud platform with integrations and automation that slots into existing workflows.",
			What:         "A subscription software product with tiered plans and an API surface.",
			OverallScore: 85,
			Insights: []string{
				"Purpose is framed around customer productivity rather than the product itself",
				"Differentiation leans on integrations; quantify the time saved to strengthen it",
			},
		},
		ElementsOfValue: analysis.ElementsOfValue{
			Functional: elementScores(functionalElements, 5, map[string]int{
				"savesTime": 9, "simplifies": 9, "integrates": 8, "organizes": 8, "reducesEffort": 8, "reducesCost": 7,
			}),
			Emotional: elementScores(emotionalElements, 4, map[string]int{
				"reducesAnxiety": 7, "providesAccess": 8, "designAesthetics": 6,
			}),
			LifeChanging: elementScores(lifeChangingElements, 3, map[string]int{
				"motivation": 6, "affiliation": 5,
			}),
			SocialImpact: elementScores(socialImpactElements, 2, nil),
			OverallScore: 88,
			Insights: []string{
				"Strong functional value story built on time savings and integration",
				"Emotional value underdeveloped; customer stories would add reassurance",
			},
		},
		CliftonStrengths: analysis.CliftonStrengths{
			Themes: themeScores(4, map[string]int{
				"achiever": 8, "strategic": 8, "arranger": 7, "focus": 7, "maximizer": 6,
			}),
			Recommendations: []string{
				"Lead with measurable outcomes to match the achiever voice",
				"Pair feature lists with a strategic narrative about where customers end up",
			},
			OverallScore: 78,
			Insights: []string{
				"Execution-oriented voice dominates the copy",
				"Relationship-building themes are nearly absent",
			},
		},
		Recommendations: []analysis.Recommendation{
			{
				Priority:    analysis.PriorityHigh,
				Category:    "Value Proposition",
				Description: "Quantify productivity gains with concrete metrics from existing customers.",
				ActionItems: []string{"Collect before/after workflow timings", "Publish two case studies with hard numbers"},
			},
			{
				Priority:    analysis.PriorityMedium,
				Category:    "Emotional Appeal",
				Description: "Balance the feature-heavy copy with customer success narratives.",
				ActionItems: []string{"Add testimonials near pricing", "Show the team behind the product"},
			},
		},
		Summary: "Subscription software messaging with a strong functional value story around time savings and integration, weaker on emotional resonance.",
	}
}

func ecommerceResult() *analysis.Result {
	return &analysis.Result{
		GoldenCircle: analysis.GoldenCircle{
			Why:          "Making great products accessible to everyone with a frictionless buying experience.",
			How:          "Curated catalog, fast checkout and reliable fulfilment.",
			What:         "An online store selling directly to consumers.",
			OverallScore: 80,
			Insights: []string{
				"Convenience is the core promise; the deeper purpose stays implicit",
				"Trust signals (returns, reviews) carry much of the persuasion",
			},
		},
		ElementsOfValue: analysis.ElementsOfValue{
			Functional: elementScores(functionalElements, 5, map[string]int{
				"variety": 9, "quality": 8, "savesTime": 8, "avoidsHassles": 8, "reducesCost": 7, "sensoryAppeal": 7,
			}),
			Emotional: elementScores(emotionalElements, 5, map[string]int{
				"rewardsMe": 8, "fun": 7, "designAesthetics": 7, "attractiveness": 7,
			}),
			LifeChanging: elementScores(lifeChangingElements, 3, nil),
			SocialImpact: elementScores(socialImpactElements, 2, nil),
			OverallScore: 90,
			Insights: []string{
				"Broad functional and emotional coverage typical of strong retail messaging",
				"Life-changing value is not part of the story, which is fine for this category",
			},
		},
		CliftonStrengths: analysis.CliftonStrengths{
			Themes: themeScores(4, map[string]int{
				"woo": 8, "positivity": 7, "competition": 7, "maximizer": 6, "communication": 6,
			}),
			Recommendations: []string{
				"Use the persuasive voice to highlight scarcity and seasonal offers",
				"Keep the upbeat tone consistent across product pages",
			},
			OverallScore: 70,
			Insights: []string{
				"Influencing themes lead; analytical voice is minimal",
			},
		},
		Recommendations: []analysis.Recommendation{
			{
				Priority:    analysis.PriorityHigh,
				Category:    "Trust",
				Description: "Surface reviews and return policy earlier in the funnel.",
				ActionItems: []string{"Add review snippets to category pages", "Link the returns policy from the cart"},
			},
			{
				Priority:    analysis.PriorityLow,
				Category:    "Brand Story",
				Description: "Articulate why the store exists beyond selling products.",
				ActionItems: []string{"Write an about page centered on the founding purpose"},
			},
		},
		Summary: "Retail messaging with excellent breadth of customer value and a persuasive, upbeat voice; the underlying brand purpose is underexplained.",
	}
}

func techResult() *analysis.Result {
	return &analysis.Result{
		GoldenCircle: analysis.GoldenCircle{
			Why:          "Pushing what is technically possible to solve problems others consider unsolvable.",
			How:          "Deep engineering expertise applied to hard problems with novel architecture.",
			What:         "Technology products and engineering services.",
			OverallScore: 90,
			Insights: []string{
				"Clear innovation-driven purpose, rare in this category",
				"The why and how reinforce each other convincingly",
			},
		},
		ElementsOfValue: analysis.ElementsOfValue{
			Functional: elementScores(functionalElements, 5, map[string]int{
				"quality": 9, "informs": 8, "reducesRisk": 8, "integrates": 7, "simplifies": 7,
			}),
			Emotional: elementScores(emotionalElements, 4, map[string]int{
				"badgeValue": 8, "designAesthetics": 7, "providesAccess": 7,
			}),
			LifeChanging: elementScores(lifeChangingElements, 4, map[string]int{
				"selfActualization": 7, "motivation": 6,
			}),
			SocialImpact: elementScores(socialImpactElements, 3, nil),
			OverallScore: 85,
			Insights: []string{
				"Quality and risk reduction dominate the functional story",
				"Badge value gives the brand aspirational pull",
			},
		},
		CliftonStrengths: analysis.CliftonStrengths{
			Themes: themeScores(4, map[string]int{
				"futuristic": 9, "ideation": 8, "analytical": 8, "learner": 7, "intellection": 7,
			}),
			Recommendations: []string{
				"Translate the futuristic vision into concrete near-term customer wins",
				"Use the analytical voice for benchmark-driven proof points",
			},
			OverallScore: 80,
			Insights: []string{
				"Strategic-thinking themes define the voice",
				"Execution themes are understated relative to the vision",
			},
		},
		Recommendations: []analysis.Recommendation{
			{
				Priority:    analysis.PriorityHigh,
				Category:    "Proof",
				Description: "Back the innovation claims with benchmarks and technical deep dives.",
				ActionItems: []string{"Publish a benchmark comparison", "Write an architecture blog post"},
			},
			{
				Priority:    analysis.PriorityMedium,
				Category:    "Accessibility",
				Description: "Offer a plain-language track for non-technical buyers.",
				ActionItems: []string{"Add an executive summary section to product pages"},
			},
		},
		Summary: "Innovation-led technology messaging with a convincing purpose and strong strategic voice; claims need more concrete proof.",
	}
}

func consultingResult() *analysis.Result {
	return &analysis.Result{
		GoldenCircle: analysis.GoldenCircle{
			Why:          "Helping organizations make better decisions through experienced outside judgment.",
			How:          "Structured engagements that pair senior advisors with client teams.",
			What:         "Advisory and consulting services.",
			OverallScore: 82,
			Insights: []string{
				"Credibility and judgment are the core promise",
				"Methodology is referenced but not differentiated",
			},
		},
		ElementsOfValue: analysis.ElementsOfValue{
			Functional: elementScores(functionalElements, 5, map[string]int{
				"reducesRisk": 9, "informs": 8, "makesMoney": 7, "organizes": 7, "quality": 7,
			}),
			Emotional: elementScores(emotionalElements, 4, map[string]int{
				"reducesAnxiety": 8, "badgeValue": 6, "providesAccess": 6,
			}),
			LifeChanging: elementScores(lifeChangingElements, 3, map[string]int{
				"motivation": 5,
			}),
			SocialImpact: elementScores(socialImpactElements, 2, nil),
			OverallScore: 76,
			Insights: []string{
				"Risk reduction and insight are the load-bearing value elements",
			},
		},
		CliftonStrengths: analysis.CliftonStrengths{
			Themes: themeScores(4, map[string]int{
				"deliberative": 8, "analytical": 8, "responsibility": 7, "input": 7, "relator": 6,
			}),
			Recommendations: []string{
				"Lean into the deliberative voice with frameworks the reader can apply",
				"Show named advisors to reinforce the relational promise",
			},
			OverallScore: 80,
			Insights: []string{
				"Measured, advisory voice throughout",
			},
		},
		Recommendations: []analysis.Recommendation{
			{
				Priority:    analysis.PriorityHigh,
				Category:    "Differentiation",
				Description: "Name and explain the engagement methodology instead of gesturing at experience.",
				ActionItems: []string{"Document the engagement phases", "Publish an anonymized engagement outcome"},
			},
			{
				Priority:    analysis.PriorityMedium,
				Category:    "Social Proof",
				Description: "Add client logos or references with measurable outcomes.",
				ActionItems: []string{"Collect three referenceable outcomes"},
			},
		},
		Summary: "Advisory messaging resting on credibility and risk reduction; differentiating the methodology would lift it above category norms.",
	}
}

func educationResult() *analysis.Result {
	return &analysis.Result{
		GoldenCircle: analysis.GoldenCircle{
			Why:          "Believing everyone deserves access to learning that changes their trajectory.",
			How:          "Structured curriculum, expert instructors and a supportive learner community.",
			What:         "Courses and learning programs.",
			OverallScore: 78,
			Insights: []string{
				"Access-to-opportunity purpose comes through clearly",
				"Outcomes for graduates are asserted, not evidenced",
			},
		},
		ElementsOfValue: analysis.ElementsOfValue{
			Functional: elementScores(functionalElements, 5, map[string]int{
				"informs": 9, "organizes": 7, "quality": 7, "variety": 6,
			}),
			Emotional: elementScores(emotionalElements, 4, map[string]int{
				"rewardsMe": 7, "providesAccess": 8, "fun": 6,
			}),
			LifeChanging: elementScores(lifeChangingElements, 5, map[string]int{
				"providesHope": 8, "selfActualization": 8, "motivation": 8, "affiliation": 7,
			}),
			SocialImpact: elementScores(socialImpactElements, 4, nil),
			OverallScore: 74,
			Insights: []string{
				"Unusually strong life-changing value elements for marketing copy",
			},
		},
		CliftonStrengths: analysis.CliftonStrengths{
			Themes: themeScores(4, map[string]int{
				"developer": 8, "learner": 8, "empathy": 7, "positivity": 7, "includer": 6,
			}),
			Recommendations: []string{
				"Feature learner transformations to match the developer voice",
				"Keep the inclusive tone in admissions-facing copy",
			},
			OverallScore: 72,
			Insights: []string{
				"Growth-oriented, empathetic voice",
			},
		},
		Recommendations: []analysis.Recommendation{
			{
				Priority:    analysis.PriorityHigh,
				Category:    "Outcomes",
				Description: "Publish completion and placement statistics to substantiate the transformation promise.",
				ActionItems: []string{"Add an outcomes page with cohort statistics", "Feature three graduate stories"},
			},
		},
		Summary: "Education messaging with genuine life-changing value signals; the transformation promise needs outcome evidence.",
	}
}

func healthcareResult() *analysis.Result {
	return &analysis.Result{
		GoldenCircle: analysis.GoldenCircle{
			Why:          "Caring for people at their most vulnerable with medicine they can trust.",
			How:          "Qualified clinicians, evidence-based care and accessible services.",
			What:         "Healthcare services and patient care programs.",
			OverallScore: 80,
			Insights: []string{
				"Trust and care form a coherent purpose",
				"Clinical credentials are present but buried",
			},
		},
		ElementsOfValue: analysis.ElementsOfValue{
			Functional: elementScores(functionalElements, 5, map[string]int{
				"reducesRisk": 9, "quality": 8, "informs": 7, "avoidsHassles": 6,
			}),
			Emotional: elementScores(emotionalElements, 5, map[string]int{
				"reducesAnxiety": 9, "wellness": 9, "therapeuticValue": 8,
			}),
			LifeChanging: elementScores(lifeChangingElements, 4, map[string]int{
				"providesHope": 8,
			}),
			SocialImpact: elementScores(socialImpactElements, 4, nil),
			OverallScore: 78,
			Insights: []string{
				"Anxiety reduction and wellness are the emotional core, as expected for the category",
			},
		},
		CliftonStrengths: analysis.CliftonStrengths{
			Themes: themeScores(4, map[string]int{
				"empathy": 9, "responsibility": 8, "restorative": 8, "harmony": 6, "consistency": 6,
			}),
			Recommendations: []string{
				"Keep the empathetic voice while foregrounding clinical credentials",
				"Use the restorative theme in condition-specific pages",
			},
			OverallScore: 70,
			Insights: []string{
				"Caring, responsible voice; authority signals could be stronger",
			},
		},
		Recommendations: []analysis.Recommendation{
			{
				Priority:    analysis.PriorityHigh,
				Category:    "Credibility",
				Description: "Move clinician credentials and accreditations above the fold.",
				ActionItems: []string{"Add an accreditation strip to the landing page", "Link clinician bios from service pages"},
			},
		},
		Summary: "Healthcare messaging anchored in trust and anxiety reduction; clinical authority deserves more prominence.",
	}
}

func genericResult() *analysis.Result {
	return &analysis.Result{
		GoldenCircle: analysis.GoldenCircle{
			Why:          "Helping customers succeed, though the underlying purpose stays unstated.",
			How:          "General capability claims without a distinctive method.",
			What:         "Products and services described in broad terms.",
			OverallScore: 75,
			Insights: []string{
				"The why is implied rather than stated; the copy opens with what",
				"Differentiation language is generic for the category",
			},
		},
		ElementsOfValue: analysis.ElementsOfValue{
			Functional: elementScores(functionalElements, 5, map[string]int{
				"quality": 7, "savesTime": 6,
			}),
			Emotional:    elementScores(emotionalElements, 4, nil),
			LifeChanging: elementScores(lifeChangingElements, 3, nil),
			SocialImpact: elementScores(socialImpactElements, 2, nil),
			OverallScore: 70,
			Insights: []string{
				"Functional value is present but no element is emphasized strongly",
			},
		},
		CliftonStrengths: analysis.CliftonStrengths{
			Themes: themeScores(4, map[string]int{
				"responsibility": 6, "achiever": 6, "communication": 5,
			}),
			Recommendations: []string{
				"Pick two or three themes and let them shape the voice consistently",
			},
			OverallScore: 65,
			Insights: []string{
				"No dominant voice; the copy reads as committee-written",
			},
		},
		Recommendations: []analysis.Recommendation{
			{
				Priority:    analysis.PriorityHigh,
				Category:    "Positioning",
				Description: "State the purpose explicitly and lead with it.",
				ActionItems: []string{"Draft a one-sentence why statement", "Restructure the hero section around it"},
			},
			{
				Priority:    analysis.PriorityMedium,
				Category:    "Specificity",
				Description: "Replace broad capability claims with concrete, provable statements.",
				ActionItems: []string{"Audit the copy for unsupported superlatives"},
			},
		},
		Summary: "General-purpose marketing copy with adequate functional value but no clear purpose or distinctive voice.",
	}
}
