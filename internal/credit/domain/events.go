package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Event topics.
const (
	TopicAssessmentCalculated = "credit.assessment.calculated"
	TopicLoanDecided          = "credit.loan.decided"
)

// AssessmentCalculatedEvent is emitted after every score calculation.
type AssessmentCalculatedEvent struct {
	UserID       string    `json:"user_id"`
	Tier         Tier      `json:"tier"`
	Score        int       `json:"score"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// LoanDecidedEvent is emitted after an application is underwritten.
type LoanDecidedEvent struct {
	ApplicationID string            `json:"application_id"`
	UserID        string            `json:"user_id"`
	OfferID       string            `json:"offer_id"`
	Status        ApplicationStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"`
}

// EventPublisher publishes domain events. Publishing is best-effort;
// callers log failures and continue.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
