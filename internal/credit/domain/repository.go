package domain

import "context"

// ConsentRepository persists consent records, keyed by user id.
// FindByUserID returns (nil, nil) when no record exists.
type ConsentRepository interface {
	FindByUserID(ctx context.Context, userID string) (*CreditConsent, error)
	Save(ctx context.Context, consent *CreditConsent) error
}

// AssessmentRepository persists credit assessments with upsert
// semantics, one per user. FindByUserID returns (nil, nil) when no
// assessment exists.
type AssessmentRepository interface {
	FindByUserID(ctx context.Context, userID string) (*CreditAssessment, error)
	Save(ctx context.Context, assessment *CreditAssessment) error
}

// OfferRepository reads the partner loan-offer catalog.
// FindByID returns (nil, nil) when the offer does not exist.
type OfferRepository interface {
	List(ctx context.Context) ([]LoanOffer, error)
	FindByID(ctx context.Context, id string) (*LoanOffer, error)
}

// ApplicationRepository persists loan applications. Applications are
// insert-only; there is no update path.
type ApplicationRepository interface {
	Create(ctx context.Context, application *LoanApplication) error
	ListByUserID(ctx context.Context, userID string) ([]LoanApplication, error)
}
