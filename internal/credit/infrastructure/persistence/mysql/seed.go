package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedLoanOffers bootstraps the partner offer catalog when the table is
// empty. The catalog is otherwise maintained by the partner integration.
func SeedLoanOffers(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&LoanOfferModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	offers := []LoanOfferModel{
		{
			OfferID:        "offer-creatorbank-12",
			PartnerID:      "partner-1",
			PartnerName:    "CreatorBank",
			PartnerLogoURL: "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=100&h=100&fit=crop",
			MinAmount:      decimal.NewFromInt(10000),
			MaxAmount:      decimal.NewFromInt(500000),
			APR:            decimal.NewFromInt(12),
			TermMonths:     12,
			Requirements: marshalJSON([]string{
				"Valid government ID",
				"Connected social accounts",
				"Active for 6+ months",
			}),
		},
		{
			OfferID:        "offer-influencerfund-6",
			PartnerID:      "partner-2",
			PartnerName:    "InfluencerFund",
			PartnerLogoURL: "https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3?w=100&h=100&fit=crop",
			MinAmount:      decimal.NewFromInt(5000),
			MaxAmount:      decimal.NewFromInt(250000),
			APR:            decimal.NewFromInt(15),
			TermMonths:     6,
			Requirements: marshalJSON([]string{
				"Valid government ID",
				"Minimum 5,000 followers",
				"Bank account verification",
			}),
		},
	}

	return db.WithContext(ctx).Create(&offers).Error
}
