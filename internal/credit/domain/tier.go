package domain

import "github.com/shopspring/decimal"

// Tier is a discrete creditworthiness bucket gating the loan ceiling
// and APR floor.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// TierConfig is the static configuration of one tier.
type TierConfig struct {
	Name          string
	MinScore      int
	MaxLoanAmount decimal.Decimal
	APRMin        decimal.Decimal
	APRMax        decimal.Decimal
}

// tierTable is ordered by descending minimum score; D is the fallback.
var tierTable = []struct {
	Tier   Tier
	Config TierConfig
}{
	{TierA, TierConfig{Name: "Excellent", MinScore: 800, MaxLoanAmount: decimal.NewFromInt(500000), APRMin: decimal.NewFromInt(8), APRMax: decimal.NewFromInt(12)}},
	{TierB, TierConfig{Name: "Good", MinScore: 650, MaxLoanAmount: decimal.NewFromInt(250000), APRMin: decimal.NewFromInt(12), APRMax: decimal.NewFromInt(18)}},
	{TierC, TierConfig{Name: "Fair", MinScore: 500, MaxLoanAmount: decimal.NewFromInt(100000), APRMin: decimal.NewFromInt(18), APRMax: decimal.NewFromInt(24)}},
	{TierD, TierConfig{Name: "Limited", MinScore: 0, MaxLoanAmount: decimal.NewFromInt(50000), APRMin: decimal.NewFromInt(24), APRMax: decimal.NewFromInt(36)}},
}

// ResolveTier maps a composite score to its tier. Total over all
// integer scores.
func ResolveTier(score int) Tier {
	for _, entry := range tierTable {
		if score >= entry.Config.MinScore {
			return entry.Tier
		}
	}
	return TierD
}

// ConfigFor returns the static configuration for a tier. Unknown tiers
// fall back to D.
func ConfigFor(tier Tier) TierConfig {
	for _, entry := range tierTable {
		if entry.Tier == tier {
			return entry.Config
		}
	}
	return tierTable[len(tierTable)-1].Config
}

// TermOptions are the loan terms offered to every tier, in months.
func TermOptions() []int {
	return []int{3, 6, 12, 24}
}
