package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
)

// CreditAssessmentModel 信用评估表模型，每用户至多一行
type CreditAssessmentModel struct {
	gorm.Model
	UserID        string          `gorm:"column:user_id;type:varchar(64);uniqueIndex;not null"`
	Tier          string          `gorm:"column:tier;type:varchar(4);not null"`
	Score         int             `gorm:"column:score;not null"`
	MaxLoanAmount decimal.Decimal `gorm:"column:max_loan_amount;type:decimal(20,2);not null"`
	APRMin        decimal.Decimal `gorm:"column:apr_min;type:decimal(10,2);not null"`
	APRMax        decimal.Decimal `gorm:"column:apr_max;type:decimal(10,2);not null"`
	TermOptions   string          `gorm:"column:term_options;type:text"`
	Factors       string          `gorm:"column:factors;type:text"`
	CalculatedAt  time.Time       `gorm:"column:calculated_at;not null"`
}

func (CreditAssessmentModel) TableName() string { return "credit_assessments" }

type AssessmentRepo struct {
	db *gorm.DB
}

func NewAssessmentRepo(db *gorm.DB) domain.AssessmentRepository {
	return &AssessmentRepo{db: db}
}

func (r *AssessmentRepo) FindByUserID(ctx context.Context, userID string) (*domain.CreditAssessment, error) {
	var model CreditAssessmentModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return assessmentToDomain(&model)
}

// Save upserts with last-write-wins semantics; concurrent
// recalculations for one user simply race to the final row.
func (r *AssessmentRepo) Save(ctx context.Context, assessment *domain.CreditAssessment) error {
	model := CreditAssessmentModel{
		UserID:        assessment.UserID,
		Tier:          string(assessment.Tier),
		Score:         assessment.Score,
		MaxLoanAmount: assessment.MaxLoanAmount,
		APRMin:        assessment.APRMin,
		APRMax:        assessment.APRMax,
		TermOptions:   marshalJSON(assessment.TermOptions),
		Factors:       marshalJSON(assessment.Factors),
		CalculatedAt:  assessment.CalculatedAt,
	}

	var exist CreditAssessmentModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", assessment.UserID).First(&exist).Error; err == nil {
		model.ID = exist.ID
		model.CreatedAt = exist.CreatedAt
	}

	return r.db.WithContext(ctx).Save(&model).Error
}

func assessmentToDomain(m *CreditAssessmentModel) (*domain.CreditAssessment, error) {
	var termOptions []int
	if err := unmarshalJSON(m.TermOptions, &termOptions); err != nil {
		return nil, err
	}
	var factors []domain.Factor
	if err := unmarshalJSON(m.Factors, &factors); err != nil {
		return nil, err
	}
	return &domain.CreditAssessment{
		UserID:        m.UserID,
		Tier:          domain.Tier(m.Tier),
		Score:         m.Score,
		MaxLoanAmount: m.MaxLoanAmount,
		APRMin:        m.APRMin,
		APRMax:        m.APRMax,
		TermOptions:   termOptions,
		Factors:       factors,
		CalculatedAt:  m.CalculatedAt,
	}, nil
}
