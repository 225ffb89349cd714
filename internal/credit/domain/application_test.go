package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOffer() *LoanOffer {
	return &LoanOffer{
		ID:         "offer-1",
		MaxAmount:  decimal.NewFromInt(500000),
		APR:        decimal.NewFromInt(12),
		TermMonths: 12,
	}
}

func testApplication(amount int64, kyc bool) *LoanApplication {
	return &LoanApplication{
		ID:           "app-1",
		UserID:       "u1",
		OfferID:      "offer-1",
		Amount:       decimal.NewFromInt(amount),
		KYCCompleted: kyc,
	}
}

func TestDecide_ApprovedGeneratesSchedule(t *testing.T) {
	offer := testOffer()
	assessment := NewCreditAssessment("u1", 900, nil, time.Now()) // tier A, ceiling 500000
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	app := testApplication(10000, true)
	app.Decide(offer, assessment, now)

	assert.Equal(t, StatusApproved, app.Status)
	require.NotNil(t, app.ApprovedAt)
	assert.Equal(t, now, *app.ApprovedAt)
	assert.Empty(t, app.RejectedReason)
	assert.Equal(t, now, app.CreatedAt)

	require.Len(t, app.RepaymentSchedule, 12)
	payment := MonthlyPayment(app.Amount, offer.APR, offer.TermMonths)
	for i, entry := range app.RepaymentSchedule {
		// Fixed 30-day increments, not calendar months.
		assert.Equal(t, now.Add(time.Duration(i+1)*30*24*time.Hour), entry.DueDate, "entry %d", i)
		assert.True(t, entry.Amount.Equal(payment), "entry %d", i)
		assert.Equal(t, RepaymentStatusUpcoming, entry.Status)
	}
}

func TestDecide_RejectsWithoutKYC(t *testing.T) {
	offer := testOffer()
	assessment := NewCreditAssessment("u1", 900, nil, time.Now())

	// Amount well within limits; KYC alone fails the application.
	app := testApplication(1000, false)
	app.Decide(offer, assessment, time.Now().UTC())

	assert.Equal(t, StatusRejected, app.Status)
	assert.Equal(t, RejectionReasonGeneric, app.RejectedReason)
	assert.Nil(t, app.RepaymentSchedule)
	assert.Nil(t, app.ApprovedAt)
}

func TestDecide_RejectsAboveEligibleLimit(t *testing.T) {
	offer := testOffer()
	// Tier D: ceiling 50000 caps the eligible amount below the offer max.
	assessment := NewCreditAssessment("u1", 100, nil, time.Now())

	app := testApplication(60000, true)
	app.Decide(offer, assessment, time.Now().UTC())

	assert.Equal(t, StatusRejected, app.Status)
	assert.Equal(t, RejectionReasonGeneric, app.RejectedReason)
	assert.Nil(t, app.RepaymentSchedule)
}

func TestDecide_ApprovalMonotonicInAmount(t *testing.T) {
	offer := testOffer()
	assessment := NewCreditAssessment("u1", 700, nil, time.Now()) // tier B, ceiling 250000
	now := time.Now().UTC()

	// 250000 is the largest approvable amount for this pair.
	larger := testApplication(250000, true)
	larger.Decide(offer, assessment, now)
	require.Equal(t, StatusApproved, larger.Status)

	for _, amount := range []int64{1, 1000, 100000, 249999} {
		smaller := testApplication(amount, true)
		smaller.Decide(offer, assessment, now)
		assert.Equal(t, StatusApproved, smaller.Status, "amount %d", amount)
	}

	over := testApplication(250001, true)
	over.Decide(offer, assessment, now)
	assert.Equal(t, StatusRejected, over.Status)
}

func TestGenerateRepaymentSchedule_EqualInstallments(t *testing.T) {
	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	schedule := GenerateRepaymentSchedule(decimal.NewFromInt(10000), decimal.NewFromInt(12), 12, from)

	require.Len(t, schedule, 12)
	for _, entry := range schedule {
		assert.Equal(t, "888.49", entry.Amount.StringFixed(2))
	}
	assert.Equal(t, from.Add(30*24*time.Hour), schedule[0].DueDate)
	assert.Equal(t, from.Add(360*24*time.Hour), schedule[11].DueDate)

	assert.Nil(t, GenerateRepaymentSchedule(decimal.NewFromInt(10000), decimal.NewFromInt(12), 0, from))
}
