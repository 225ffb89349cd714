package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditAssessment is the persisted outcome of a score calculation.
// At most one per user; recalculating overwrites the previous record.
type CreditAssessment struct {
	UserID        string          `json:"user_id"`
	Tier          Tier            `json:"tier"`
	Score         int             `json:"score"`
	MaxLoanAmount decimal.Decimal `json:"max_loan_amount"`
	APRMin        decimal.Decimal `json:"apr_min"`
	APRMax        decimal.Decimal `json:"apr_max"`
	TermOptions   []int           `json:"term_options"`
	Factors       []Factor        `json:"factors"`
	CalculatedAt  time.Time       `json:"calculated_at"`
}

// NewCreditAssessment builds an assessment from a computed score,
// filling in the tier configuration.
func NewCreditAssessment(userID string, score int, factors []Factor, now time.Time) *CreditAssessment {
	tier := ResolveTier(score)
	cfg := ConfigFor(tier)
	return &CreditAssessment{
		UserID:        userID,
		Tier:          tier,
		Score:         score,
		MaxLoanAmount: cfg.MaxLoanAmount,
		APRMin:        cfg.APRMin,
		APRMax:        cfg.APRMax,
		TermOptions:   TermOptions(),
		Factors:       factors,
		CalculatedAt:  now,
	}
}
