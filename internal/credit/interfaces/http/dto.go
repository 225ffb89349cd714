package http

import (
	"time"

	"github.com/wyfcoding/creatorcredit/internal/credit/application"
	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
)

// 响应 DTO，保持与既有客户端一致的 camelCase 字段与数值金额

type consentResponse struct {
	UserID          string     `json:"userId"`
	HasConsented    bool       `json:"hasConsented"`
	ConsentedAt     *time.Time `json:"consentedAt,omitempty"`
	RevokedAt       *time.Time `json:"revokedAt,omitempty"`
	DataExplanation []string   `json:"dataExplanation"`
	NotUsed         []string   `json:"notUsed"`
}

func toConsentResponse(c *domain.CreditConsent) consentResponse {
	return consentResponse{
		UserID:          c.UserID,
		HasConsented:    c.HasConsented,
		ConsentedAt:     c.ConsentedAt,
		RevokedAt:       c.RevokedAt,
		DataExplanation: c.DataExplanation,
		NotUsed:         c.NotUsed,
	}
}

type aprRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type assessmentResponse struct {
	UserID        string          `json:"userId"`
	Tier          domain.Tier     `json:"tier"`
	Score         int             `json:"score"`
	MaxLoanAmount float64         `json:"maxLoanAmount"`
	APRRange      aprRange        `json:"aprRange"`
	TermOptions   []int           `json:"termOptions"`
	Factors       []domain.Factor `json:"factors"`
	CalculatedAt  time.Time       `json:"calculatedAt"`
}

func toAssessmentResponse(a *domain.CreditAssessment) assessmentResponse {
	return assessmentResponse{
		UserID:        a.UserID,
		Tier:          a.Tier,
		Score:         a.Score,
		MaxLoanAmount: a.MaxLoanAmount.InexactFloat64(),
		APRRange:      aprRange{Min: a.APRMin.InexactFloat64(), Max: a.APRMax.InexactFloat64()},
		TermOptions:   a.TermOptions,
		Factors:       a.Factors,
		CalculatedAt:  a.CalculatedAt,
	}
}

type offerResponse struct {
	ID             string   `json:"id"`
	PartnerID      string   `json:"partnerId"`
	PartnerName    string   `json:"partnerName"`
	PartnerLogoURL string   `json:"partnerLogoUrl"`
	Amount         float64  `json:"amount"`
	APR            float64  `json:"apr"`
	TermMonths     int      `json:"termMonths"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	TotalRepayment float64  `json:"totalRepayment"`
	Requirements   []string `json:"requirements"`
}

type assessmentSummaryResponse struct {
	Tier  domain.Tier `json:"tier"`
	Score int         `json:"score"`
}

type offersResponse struct {
	Assessment assessmentSummaryResponse `json:"assessment"`
	Offers     []offerResponse           `json:"offers"`
}

func toOffersResponse(result *application.OffersResult) offersResponse {
	offers := make([]offerResponse, 0, len(result.Offers))
	for _, o := range result.Offers {
		offers = append(offers, offerResponse{
			ID:             o.ID,
			PartnerID:      o.PartnerID,
			PartnerName:    o.PartnerName,
			PartnerLogoURL: o.PartnerLogoURL,
			Amount:         o.Amount.InexactFloat64(),
			APR:            o.APR.InexactFloat64(),
			TermMonths:     o.TermMonths,
			MonthlyPayment: o.MonthlyPayment.InexactFloat64(),
			TotalRepayment: o.TotalRepayment.InexactFloat64(),
			Requirements:   o.Requirements,
		})
	}
	return offersResponse{
		Assessment: assessmentSummaryResponse{Tier: result.Assessment.Tier, Score: result.Assessment.Score},
		Offers:     offers,
	}
}

type applicationDecisionResponse struct {
	ID             string                   `json:"id"`
	Status         domain.ApplicationStatus `json:"status"`
	ApprovedAt     *time.Time               `json:"approvedAt,omitempty"`
	RejectedReason *string                  `json:"rejectedReason,omitempty"`
}

func toDecisionResponse(app *domain.LoanApplication) applicationDecisionResponse {
	resp := applicationDecisionResponse{
		ID:         app.ID,
		Status:     app.Status,
		ApprovedAt: app.ApprovedAt,
	}
	if app.RejectedReason != "" {
		reason := app.RejectedReason
		resp.RejectedReason = &reason
	}
	return resp
}

type repaymentEntryResponse struct {
	DueDate time.Time `json:"dueDate"`
	Amount  float64   `json:"amount"`
	Status  string    `json:"status"`
}

type offerSummaryResponse struct {
	PartnerName    string `json:"partnerName"`
	PartnerLogoURL string `json:"partnerLogoUrl"`
}

type applicationStatusResponse struct {
	ID                string                   `json:"id"`
	Offer             offerSummaryResponse     `json:"offer"`
	Amount            float64                  `json:"amount"`
	Purpose           string                   `json:"purpose"`
	Status            domain.ApplicationStatus `json:"status"`
	CreatedAt         time.Time                `json:"createdAt"`
	ApprovedAt        *time.Time               `json:"approvedAt,omitempty"`
	RejectedReason    *string                  `json:"rejectedReason,omitempty"`
	RepaymentSchedule []repaymentEntryResponse `json:"repaymentSchedule"`
}

func toStatusResponse(rows []application.ApplicationStatusRow) []applicationStatusResponse {
	out := make([]applicationStatusResponse, 0, len(rows))
	for _, row := range rows {
		app := row.Application

		var schedule []repaymentEntryResponse
		for _, entry := range app.RepaymentSchedule {
			schedule = append(schedule, repaymentEntryResponse{
				DueDate: entry.DueDate,
				Amount:  entry.Amount.InexactFloat64(),
				Status:  entry.Status,
			})
		}

		item := applicationStatusResponse{
			ID:                app.ID,
			Offer:             offerSummaryResponse{PartnerName: row.Offer.PartnerName, PartnerLogoURL: row.Offer.PartnerLogoURL},
			Amount:            app.Amount.InexactFloat64(),
			Purpose:           app.Purpose,
			Status:            app.Status,
			CreatedAt:         app.CreatedAt,
			ApprovedAt:        app.ApprovedAt,
			RepaymentSchedule: schedule,
		}
		if app.RejectedReason != "" {
			reason := app.RejectedReason
			item.RejectedReason = &reason
		}
		out = append(out, item)
	}
	return out
}
