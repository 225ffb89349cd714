package domain

import "fmt"

// FactorImpact is the qualitative label attached to a scoring factor.
type FactorImpact string

const (
	ImpactPositive FactorImpact = "positive"
	ImpactNeutral  FactorImpact = "neutral"
	ImpactNegative FactorImpact = "negative"
)

// Factor is one named sub-score of the composite credit score.
type Factor struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Impact      FactorImpact `json:"impact"`
	Score       int          `json:"score"`
	MaxScore    int          `json:"maxScore"`
}

// factorCap is the maximum each sub-score contributes to the composite.
const factorCap = 200

// ComputeScore turns aggregated signals into a composite score and the
// per-factor breakdown, in fixed factor order. Each sub-score is capped
// at 200, bounding the composite to [0, 1000]. The function is pure and
// total: any input yields a result.
func ComputeScore(s Signals) (int, []Factor) {
	factors := make([]Factor, 0, 5)
	total := 0

	// Platform connections: 70 points per connected platform.
	connectionScore := min(s.ConnectedPlatforms*70, factorCap)
	connImpact := ImpactNegative
	switch {
	case connectionScore > 100:
		connImpact = ImpactPositive
	case s.ConnectedPlatforms > 0:
		connImpact = ImpactNeutral
	}
	factors = append(factors, Factor{
		Name:        "Platform Connections",
		Description: fmt.Sprintf("%d verified platform(s) connected", s.ConnectedPlatforms),
		Impact:      connImpact,
		Score:       connectionScore,
		MaxScore:    factorCap,
	})
	total += connectionScore

	// Audience size: 1 point per 500 followers.
	followerScore := min(int(s.TotalFollowers/500), factorCap)
	factors = append(factors, Factor{
		Name:        "Audience Size",
		Description: fmt.Sprintf("%d total followers", s.TotalFollowers),
		Impact:      thresholdImpact(followerScore, 100, 50),
		Score:       followerScore,
		MaxScore:    factorCap,
	})
	total += followerScore

	// Engagement quality. The upstream analysis bounds the raw score to
	// [0, 100]; the clamp keeps the composite bounded even if it ever
	// reports more.
	engagementScore := min(s.EngagementScore*2, factorCap)
	factors = append(factors, Factor{
		Name:        "Engagement Quality",
		Description: fmt.Sprintf("%d%% engagement score", s.EngagementScore),
		Impact:      thresholdImpact(engagementScore, 100, 50),
		Score:       engagementScore,
		MaxScore:    factorCap,
	})
	total += engagementScore

	// Content consistency, same convention as engagement.
	consistencyScore := min(s.ConsistencyScore*2, factorCap)
	factors = append(factors, Factor{
		Name:        "Content Consistency",
		Description: fmt.Sprintf("%d%% consistency", s.ConsistencyScore),
		Impact:      thresholdImpact(consistencyScore, 100, 50),
		Score:       consistencyScore,
		MaxScore:    factorCap,
	})
	total += consistencyScore

	// Affiliate performance: 20 points per conversion, 10 per product.
	performanceScore := min(s.Conversions*20+s.ProductsInShop*10, factorCap)
	factors = append(factors, Factor{
		Name:        "Affiliate Performance",
		Description: fmt.Sprintf("%d conversions, %d products", s.Conversions, s.ProductsInShop),
		Impact:      thresholdImpact(performanceScore, 100, 30),
		Score:       performanceScore,
		MaxScore:    factorCap,
	})
	total += performanceScore

	return total, factors
}

// thresholdImpact labels a raw sub-score against fixed positive/neutral
// cut-offs. The thresholds are design constants independent of the cap.
func thresholdImpact(score, positiveAbove, neutralAbove int) FactorImpact {
	switch {
	case score > positiveAbove:
		return ImpactPositive
	case score > neutralAbove:
		return ImpactNeutral
	default:
		return ImpactNegative
	}
}
