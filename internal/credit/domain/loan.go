package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// LoanOffer is a partner-supplied catalog entry. Read-only here; the
// catalog is owned by the partner integration.
type LoanOffer struct {
	ID             string          `json:"id"`
	PartnerID      string          `json:"partner_id"`
	PartnerName    string          `json:"partner_name"`
	PartnerLogoURL string          `json:"partner_logo_url"`
	MinAmount      decimal.Decimal `json:"min_amount"`
	MaxAmount      decimal.Decimal `json:"max_amount"`
	APR            decimal.Decimal `json:"apr"`
	TermMonths     int             `json:"term_months"`
	Requirements   []string        `json:"requirements"`
}

// CustomizedOffer is a partner offer narrowed to what a user's tier
// allows, with amortized payment figures.
type CustomizedOffer struct {
	ID             string          `json:"id"`
	PartnerID      string          `json:"partner_id"`
	PartnerName    string          `json:"partner_name"`
	PartnerLogoURL string          `json:"partner_logo_url"`
	Amount         decimal.Decimal `json:"amount"`
	APR            decimal.Decimal `json:"apr"`
	TermMonths     int             `json:"term_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
	Requirements   []string        `json:"requirements"`
}

// Customize narrows the offer against an assessment: the loan ceiling
// caps the amount, and the tier's APR floor raises but never lowers the
// partner's stated rate.
func (o *LoanOffer) Customize(assessment *CreditAssessment) CustomizedOffer {
	amount := decimal.Min(o.MaxAmount, assessment.MaxLoanAmount)
	apr := decimal.Max(o.APR, assessment.APRMin)
	monthly := MonthlyPayment(amount, apr, o.TermMonths)

	return CustomizedOffer{
		ID:             o.ID,
		PartnerID:      o.PartnerID,
		PartnerName:    o.PartnerName,
		PartnerLogoURL: o.PartnerLogoURL,
		Amount:         amount,
		APR:            apr,
		TermMonths:     o.TermMonths,
		MonthlyPayment: monthly,
		TotalRepayment: monthly.Mul(decimal.NewFromInt(int64(o.TermMonths))).Round(2),
		Requirements:   o.Requirements,
	}
}

// MonthlyPayment computes the fixed monthly amortized payment for a
// principal at an annual percentage rate over a term, rounded to cents.
//
//	monthlyRate = apr / 100 / 12
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degenerates to an even split of the principal. The power
// term is computed in float64, monetary arithmetic in decimal.
func MonthlyPayment(principal decimal.Decimal, aprPercent decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}

	monthlyRate := aprPercent.InexactFloat64() / 100 / 12
	if monthlyRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	}

	factor := math.Pow(1+monthlyRate, float64(termMonths))
	payment := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2)
}
