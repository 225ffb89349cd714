package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
)

// CreditConsentModel 用户授权记录表模型
type CreditConsentModel struct {
	gorm.Model
	UserID          string     `gorm:"column:user_id;type:varchar(64);uniqueIndex;not null"`
	HasConsented    bool       `gorm:"column:has_consented;not null"`
	ConsentedAt     *time.Time `gorm:"column:consented_at"`
	RevokedAt       *time.Time `gorm:"column:revoked_at"`
	DataExplanation string     `gorm:"column:data_explanation;type:text"`
	NotUsed         string     `gorm:"column:not_used;type:text"`
}

func (CreditConsentModel) TableName() string { return "credit_consents" }

type ConsentRepo struct {
	db *gorm.DB
}

func NewConsentRepo(db *gorm.DB) domain.ConsentRepository {
	return &ConsentRepo{db: db}
}

func (r *ConsentRepo) FindByUserID(ctx context.Context, userID string) (*domain.CreditConsent, error) {
	var model CreditConsentModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return consentToDomain(&model)
}

func (r *ConsentRepo) Save(ctx context.Context, consent *domain.CreditConsent) error {
	model := CreditConsentModel{
		UserID:          consent.UserID,
		HasConsented:    consent.HasConsented,
		ConsentedAt:     consent.ConsentedAt,
		RevokedAt:       consent.RevokedAt,
		DataExplanation: marshalJSON(consent.DataExplanation),
		NotUsed:         marshalJSON(consent.NotUsed),
	}

	var exist CreditConsentModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", consent.UserID).First(&exist).Error; err == nil {
		model.ID = exist.ID
		model.CreatedAt = exist.CreatedAt
	}

	return r.db.WithContext(ctx).Save(&model).Error
}

func consentToDomain(m *CreditConsentModel) (*domain.CreditConsent, error) {
	var explanation, notUsed []string
	if err := unmarshalJSON(m.DataExplanation, &explanation); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(m.NotUsed, &notUsed); err != nil {
		return nil, err
	}
	return &domain.CreditConsent{
		UserID:          m.UserID,
		HasConsented:    m.HasConsented,
		ConsentedAt:     m.ConsentedAt,
		RevokedAt:       m.RevokedAt,
		DataExplanation: explanation,
		NotUsed:         notUsed,
	}, nil
}
