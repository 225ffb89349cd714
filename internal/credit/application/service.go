package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
)

// CreditService orchestrates the credit scoring and loan underwriting
// flow: consent gate, signal aggregation, score persistence, offer
// customization and application decisions.
type CreditService struct {
	consents     domain.ConsentRepository
	assessments  domain.AssessmentRepository
	offers       domain.OfferRepository
	applications domain.ApplicationRepository
	signals      domain.SignalSource
	publisher    domain.EventPublisher
	logger       *slog.Logger
}

// NewCreditService wires the service with its ports.
func NewCreditService(
	consents domain.ConsentRepository,
	assessments domain.AssessmentRepository,
	offers domain.OfferRepository,
	applications domain.ApplicationRepository,
	signals domain.SignalSource,
	publisher domain.EventPublisher,
	logger *slog.Logger,
) *CreditService {
	return &CreditService{
		consents:     consents,
		assessments:  assessments,
		offers:       offers,
		applications: applications,
		signals:      signals,
		publisher:    publisher,
		logger:       logger,
	}
}

// GetConsent returns the user's consent record, creating a default one
// (consent withheld) on first read.
func (s *CreditService) GetConsent(ctx context.Context, userID string) (*domain.CreditConsent, error) {
	consent, err := s.consents.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find consent: %w", err)
	}
	if consent != nil {
		return consent, nil
	}

	consent = domain.NewCreditConsent(userID)
	if err := s.consents.Save(ctx, consent); err != nil {
		return nil, fmt.Errorf("create consent: %w", err)
	}
	return consent, nil
}

// SetConsent grants or revokes consent. Revoking leaves any existing
// assessment and applications in place; downstream reads re-check the
// flag instead.
func (s *CreditService) SetConsent(ctx context.Context, userID string, granted bool) error {
	consent, err := s.consents.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find consent: %w", err)
	}
	if consent == nil {
		consent = domain.NewCreditConsent(userID)
	}

	now := time.Now().UTC()
	if granted {
		consent.Grant(now)
	} else {
		consent.Revoke(now)
	}

	if err := s.consents.Save(ctx, consent); err != nil {
		return fmt.Errorf("save consent: %w", err)
	}

	s.logger.InfoContext(ctx, "consent updated", "user_id", userID, "granted", granted)
	return nil
}

// CalculateScore aggregates the user's performance signals, computes
// the composite score and persists the resulting assessment, replacing
// any previous one. Requires consent.
func (s *CreditService) CalculateScore(ctx context.Context, userID string) (*domain.CreditAssessment, error) {
	if err := s.requireConsent(ctx, userID); err != nil {
		return nil, err
	}

	signals, err := s.signals.CollectSignals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("collect signals: %w", err)
	}

	score, factors := domain.ComputeScore(signals)
	assessment := domain.NewCreditAssessment(userID, score, factors, time.Now().UTC())

	if err := s.assessments.Save(ctx, assessment); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}

	s.logger.InfoContext(ctx, "credit score calculated",
		"user_id", userID, "score", score, "tier", assessment.Tier)

	s.publish(ctx, domain.TopicAssessmentCalculated, userID, domain.AssessmentCalculatedEvent{
		UserID:       userID,
		Tier:         assessment.Tier,
		Score:        assessment.Score,
		CalculatedAt: assessment.CalculatedAt,
	})

	return assessment, nil
}

// AssessmentSummary is the condensed assessment returned with offers.
type AssessmentSummary struct {
	Tier  domain.Tier `json:"tier"`
	Score int         `json:"score"`
}

// OffersResult pairs the customized offers with the assessment they
// were customized against.
type OffersResult struct {
	Assessment AssessmentSummary        `json:"assessment"`
	Offers     []domain.CustomizedOffer `json:"offers"`
}

// GetLoanOffers customizes the partner catalog against the user's
// current assessment. Consent is checked before the assessment.
func (s *CreditService) GetLoanOffers(ctx context.Context, userID string) (*OffersResult, error) {
	var (
		consent    *domain.CreditConsent
		assessment *domain.CreditAssessment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		consent, err = s.consents.FindByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		assessment, err = s.assessments.FindByUserID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load consent and assessment: %w", err)
	}

	if consent == nil || !consent.HasConsented {
		return nil, domain.ErrConsentRequired
	}
	if assessment == nil {
		return nil, domain.ErrScoreRequired
	}

	baseOffers, err := s.offers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}

	offers := make([]domain.CustomizedOffer, 0, len(baseOffers))
	for i := range baseOffers {
		offers = append(offers, baseOffers[i].Customize(assessment))
	}

	return &OffersResult{
		Assessment: AssessmentSummary{Tier: assessment.Tier, Score: assessment.Score},
		Offers:     offers,
	}, nil
}

// ApplyInput is a validated loan application request.
type ApplyInput struct {
	OfferID       string
	Amount        decimal.Decimal
	Purpose       string
	LegalName     string
	Email         string
	Phone         string
	Country       string
	PayoutAccount string
	KYCCompleted  bool
}

// ApplyForLoan underwrites a submitted application and persists the
// terminal decision. Approval generates the repayment schedule.
func (s *CreditService) ApplyForLoan(ctx context.Context, userID string, input ApplyInput) (*domain.LoanApplication, error) {
	var (
		offer      *domain.LoanOffer
		assessment *domain.CreditAssessment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offer, err = s.offers.FindByID(gctx, input.OfferID)
		return err
	})
	g.Go(func() error {
		var err error
		assessment, err = s.assessments.FindByUserID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load offer and assessment: %w", err)
	}

	if offer == nil {
		return nil, domain.ErrOfferNotFound
	}
	if assessment == nil {
		return nil, domain.ErrScoreRequired
	}

	app := &domain.LoanApplication{
		ID:            uuid.New().String(),
		UserID:        userID,
		OfferID:       input.OfferID,
		Amount:        input.Amount,
		Purpose:       input.Purpose,
		LegalName:     input.LegalName,
		Email:         input.Email,
		Phone:         input.Phone,
		Country:       input.Country,
		PayoutAccount: input.PayoutAccount,
		KYCCompleted:  input.KYCCompleted,
	}
	app.Decide(offer, assessment, time.Now().UTC())

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.logger.InfoContext(ctx, "loan application decided",
		"user_id", userID, "application_id", app.ID, "status", app.Status)

	s.publish(ctx, domain.TopicLoanDecided, userID, domain.LoanDecidedEvent{
		ApplicationID: app.ID,
		UserID:        userID,
		OfferID:       app.OfferID,
		Status:        app.Status,
		Amount:        app.Amount,
	})

	return app, nil
}

// OfferSummary is the embedded partner reference on a status row.
type OfferSummary struct {
	PartnerName    string `json:"partner_name"`
	PartnerLogoURL string `json:"partner_logo_url"`
}

// ApplicationStatusRow is one application with its offer summary.
type ApplicationStatusRow struct {
	Application domain.LoanApplication
	Offer       OfferSummary
}

// GetLoanStatus lists the user's applications, newest first, with the
// referenced partner's summary embedded.
func (s *CreditService) GetLoanStatus(ctx context.Context, userID string) ([]ApplicationStatusRow, error) {
	apps, err := s.applications.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if len(apps) == 0 {
		return []ApplicationStatusRow{}, nil
	}

	catalog, err := s.offers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	byID := make(map[string]*domain.LoanOffer, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = &catalog[i]
	}

	rows := make([]ApplicationStatusRow, 0, len(apps))
	for _, app := range apps {
		var summary OfferSummary
		if offer, ok := byID[app.OfferID]; ok {
			summary = OfferSummary{PartnerName: offer.PartnerName, PartnerLogoURL: offer.PartnerLogoURL}
		}
		rows = append(rows, ApplicationStatusRow{Application: app, Offer: summary})
	}
	return rows, nil
}

// GetImprovementTips derives score improvement tips from the user's
// current counts.
func (s *CreditService) GetImprovementTips(ctx context.Context, userID string) ([]domain.ImprovementTip, error) {
	signals, err := s.signals.CollectSignals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("collect signals: %w", err)
	}
	return domain.BuildImprovementTips(signals.ConnectedPlatforms, signals.ProductsInShop, signals.Conversions), nil
}

// requireConsent fails with ErrConsentRequired unless the user has an
// active consent record.
func (s *CreditService) requireConsent(ctx context.Context, userID string) error {
	consent, err := s.consents.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find consent: %w", err)
	}
	if consent == nil || !consent.HasConsented {
		return domain.ErrConsentRequired
	}
	return nil
}

func (s *CreditService) publish(ctx context.Context, topic, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event", "topic", topic, "key", key, "error", err)
	}
}
