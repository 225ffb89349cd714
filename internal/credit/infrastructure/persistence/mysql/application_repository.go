package mysql

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
)

// LoanApplicationModel 贷款申请表模型，写入后不再变更
type LoanApplicationModel struct {
	gorm.Model
	ApplicationID     string          `gorm:"column:application_id;type:varchar(64);uniqueIndex;not null"`
	UserID            string          `gorm:"column:user_id;type:varchar(64);index;not null"`
	OfferID           string          `gorm:"column:offer_id;type:varchar(64);not null"`
	Amount            decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null"`
	Purpose           string          `gorm:"column:purpose;type:varchar(512);not null"`
	LegalName         string          `gorm:"column:legal_name;type:varchar(128);not null"`
	Email             string          `gorm:"column:email;type:varchar(256);not null"`
	Phone             string          `gorm:"column:phone;type:varchar(32);not null"`
	Country           string          `gorm:"column:country;type:varchar(64);not null"`
	PayoutAccount     string          `gorm:"column:payout_account;type:varchar(128)"`
	KYCCompleted      bool            `gorm:"column:kyc_completed;not null"`
	Status            string          `gorm:"column:status;type:varchar(20);not null"`
	ApprovedAt        *time.Time      `gorm:"column:approved_at"`
	RejectedReason    string          `gorm:"column:rejected_reason;type:varchar(256)"`
	RepaymentSchedule string          `gorm:"column:repayment_schedule;type:text"`
	SubmittedAt       time.Time       `gorm:"column:submitted_at;not null"`
}

func (LoanApplicationModel) TableName() string { return "loan_applications" }

type ApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) domain.ApplicationRepository {
	return &ApplicationRepo{db: db}
}

func (r *ApplicationRepo) Create(ctx context.Context, app *domain.LoanApplication) error {
	model := LoanApplicationModel{
		ApplicationID:  app.ID,
		UserID:         app.UserID,
		OfferID:        app.OfferID,
		Amount:         app.Amount,
		Purpose:        app.Purpose,
		LegalName:      app.LegalName,
		Email:          app.Email,
		Phone:          app.Phone,
		Country:        app.Country,
		PayoutAccount:  app.PayoutAccount,
		KYCCompleted:   app.KYCCompleted,
		Status:         string(app.Status),
		ApprovedAt:     app.ApprovedAt,
		RejectedReason: app.RejectedReason,
		SubmittedAt:    app.CreatedAt,
	}
	if app.RepaymentSchedule != nil {
		model.RepaymentSchedule = marshalJSON(app.RepaymentSchedule)
	}

	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *ApplicationRepo) ListByUserID(ctx context.Context, userID string) ([]domain.LoanApplication, error) {
	var models []LoanApplicationModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	apps := make([]domain.LoanApplication, 0, len(models))
	for i := range models {
		app, err := applicationToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, nil
}

func applicationToDomain(m *LoanApplicationModel) (*domain.LoanApplication, error) {
	var schedule []domain.RepaymentEntry
	if err := unmarshalJSON(m.RepaymentSchedule, &schedule); err != nil {
		return nil, err
	}
	return &domain.LoanApplication{
		ID:                m.ApplicationID,
		UserID:            m.UserID,
		OfferID:           m.OfferID,
		Amount:            m.Amount,
		Purpose:           m.Purpose,
		LegalName:         m.LegalName,
		Email:             m.Email,
		Phone:             m.Phone,
		Country:           m.Country,
		PayoutAccount:     m.PayoutAccount,
		KYCCompleted:      m.KYCCompleted,
		Status:            domain.ApplicationStatus(m.Status),
		ApprovedAt:        m.ApprovedAt,
		RejectedReason:    m.RejectedReason,
		RepaymentSchedule: schedule,
		CreatedAt:         m.SubmittedAt,
	}, nil
}
