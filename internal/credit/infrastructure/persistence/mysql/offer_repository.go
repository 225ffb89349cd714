package mysql

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
)

// LoanOfferModel 合作方贷款产品目录表模型
type LoanOfferModel struct {
	gorm.Model
	OfferID        string          `gorm:"column:offer_id;type:varchar(64);uniqueIndex;not null"`
	PartnerID      string          `gorm:"column:partner_id;type:varchar(64);not null"`
	PartnerName    string          `gorm:"column:partner_name;type:varchar(128);not null"`
	PartnerLogoURL string          `gorm:"column:partner_logo_url;type:varchar(512)"`
	MinAmount      decimal.Decimal `gorm:"column:min_amount;type:decimal(20,2);not null"`
	MaxAmount      decimal.Decimal `gorm:"column:max_amount;type:decimal(20,2);not null"`
	APR            decimal.Decimal `gorm:"column:apr;type:decimal(10,2);not null"`
	TermMonths     int             `gorm:"column:term_months;not null"`
	Requirements   string          `gorm:"column:requirements;type:text"`
}

func (LoanOfferModel) TableName() string { return "loan_offers" }

type OfferRepo struct {
	db *gorm.DB
}

func NewOfferRepo(db *gorm.DB) domain.OfferRepository {
	return &OfferRepo{db: db}
}

func (r *OfferRepo) List(ctx context.Context) ([]domain.LoanOffer, error) {
	var models []LoanOfferModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	offers := make([]domain.LoanOffer, 0, len(models))
	for i := range models {
		offer, err := offerToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		offers = append(offers, *offer)
	}
	return offers, nil
}

func (r *OfferRepo) FindByID(ctx context.Context, id string) (*domain.LoanOffer, error) {
	var model LoanOfferModel
	if err := r.db.WithContext(ctx).Where("offer_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return offerToDomain(&model)
}

func offerToDomain(m *LoanOfferModel) (*domain.LoanOffer, error) {
	var requirements []string
	if err := unmarshalJSON(m.Requirements, &requirements); err != nil {
		return nil, err
	}
	return &domain.LoanOffer{
		ID:             m.OfferID,
		PartnerID:      m.PartnerID,
		PartnerName:    m.PartnerName,
		PartnerLogoURL: m.PartnerLogoURL,
		MinAmount:      m.MinAmount,
		MaxAmount:      m.MaxAmount,
		APR:            m.APR,
		TermMonths:     m.TermMonths,
		Requirements:   requirements,
	}, nil
}
