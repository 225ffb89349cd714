package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationStatus is the state of a loan application. Underwriting
// only ever produces approved or rejected; the remaining statuses are
// reserved for servicing flows not implemented here.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
	StatusActive   ApplicationStatus = "active"
	StatusComplete ApplicationStatus = "completed"
)

// RejectionReasonGeneric is the single rejection message covering both
// an excessive amount and incomplete KYC. Kept as one message for wire
// compatibility with existing clients.
const RejectionReasonGeneric = "Amount exceeds eligible limit or KYC incomplete"

// RepaymentEntry is one installment of a repayment schedule.
type RepaymentEntry struct {
	DueDate time.Time       `json:"dueDate"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status"`
}

// RepaymentStatusUpcoming is the initial status of every installment.
const RepaymentStatusUpcoming = "upcoming"

// LoanApplication is a submitted loan request. Immutable once decided.
type LoanApplication struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	OfferID           string            `json:"offer_id"`
	Amount            decimal.Decimal   `json:"amount"`
	Purpose           string            `json:"purpose"`
	LegalName         string            `json:"legal_name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	Country           string            `json:"country"`
	PayoutAccount     string            `json:"payout_account,omitempty"`
	KYCCompleted      bool              `json:"kyc_completed"`
	Status            ApplicationStatus `json:"status"`
	ApprovedAt        *time.Time        `json:"approved_at,omitempty"`
	RejectedReason    string            `json:"rejected_reason,omitempty"`
	RepaymentSchedule []RepaymentEntry  `json:"repayment_schedule,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Decide underwrites the application against the referenced offer and
// the user's assessment. Approval requires the requested amount to fit
// within both the offer ceiling and the tier ceiling, and completed KYC.
// On approval a repayment schedule over the offer's term is generated;
// on rejection the schedule stays nil and the generic reason is set.
func (a *LoanApplication) Decide(offer *LoanOffer, assessment *CreditAssessment, now time.Time) {
	maxAllowed := decimal.Min(offer.MaxAmount, assessment.MaxLoanAmount)
	approved := a.Amount.LessThanOrEqual(maxAllowed) && a.KYCCompleted

	a.CreatedAt = now
	if !approved {
		a.Status = StatusRejected
		a.RejectedReason = RejectionReasonGeneric
		a.RepaymentSchedule = nil
		return
	}

	a.Status = StatusApproved
	a.ApprovedAt = &now
	a.RepaymentSchedule = GenerateRepaymentSchedule(a.Amount, offer.APR, offer.TermMonths, now)
}

// GenerateRepaymentSchedule produces termMonths equal installments of
// the amortized monthly payment. Due dates step in fixed 30-day
// increments from the start time, not calendar months.
func GenerateRepaymentSchedule(principal decimal.Decimal, aprPercent decimal.Decimal, termMonths int, from time.Time) []RepaymentEntry {
	if termMonths <= 0 {
		return nil
	}

	payment := MonthlyPayment(principal, aprPercent, termMonths)
	schedule := make([]RepaymentEntry, 0, termMonths)
	for i := 0; i < termMonths; i++ {
		schedule = append(schedule, RepaymentEntry{
			DueDate: from.Add(time.Duration(i+1) * 30 * 24 * time.Hour),
			Amount:  payment,
			Status:  RepaymentStatusUpcoming,
		})
	}
	return schedule
}
