package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/creatorcredit/internal/credit/application"
	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
	"github.com/wyfcoding/creatorcredit/pkg/middleware"
)

// ---------------------------------------------------------------------------
// test doubles
// ---------------------------------------------------------------------------

type stubConsentRepo struct {
	rows map[string]domain.CreditConsent
}

func (r *stubConsentRepo) FindByUserID(_ context.Context, userID string) (*domain.CreditConsent, error) {
	if row, ok := r.rows[userID]; ok {
		copied := row
		return &copied, nil
	}
	return nil, nil
}

func (r *stubConsentRepo) Save(_ context.Context, consent *domain.CreditConsent) error {
	r.rows[consent.UserID] = *consent
	return nil
}

type stubAssessmentRepo struct {
	rows map[string]domain.CreditAssessment
}

func (r *stubAssessmentRepo) FindByUserID(_ context.Context, userID string) (*domain.CreditAssessment, error) {
	if row, ok := r.rows[userID]; ok {
		copied := row
		return &copied, nil
	}
	return nil, nil
}

func (r *stubAssessmentRepo) Save(_ context.Context, assessment *domain.CreditAssessment) error {
	r.rows[assessment.UserID] = *assessment
	return nil
}

type stubOfferRepo struct {
	offers []domain.LoanOffer
}

func (r *stubOfferRepo) List(_ context.Context) ([]domain.LoanOffer, error) {
	return r.offers, nil
}

func (r *stubOfferRepo) FindByID(_ context.Context, id string) (*domain.LoanOffer, error) {
	for i := range r.offers {
		if r.offers[i].ID == id {
			return &r.offers[i], nil
		}
	}
	return nil, nil
}

type stubApplicationRepo struct {
	rows []domain.LoanApplication
}

func (r *stubApplicationRepo) Create(_ context.Context, app *domain.LoanApplication) error {
	r.rows = append(r.rows, *app)
	return nil
}

func (r *stubApplicationRepo) ListByUserID(_ context.Context, userID string) ([]domain.LoanApplication, error) {
	var out []domain.LoanApplication
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

type fixedSignalSource struct {
	signals domain.Signals
}

func (s *fixedSignalSource) CollectSignals(context.Context, string) (domain.Signals, error) {
	return s.signals, nil
}

// testAuth mimics the JWT middleware using a plain header, so handler
// tests do not mint tokens.
func testAuth(c *gin.Context) {
	if user := c.GetHeader("X-Test-User"); user != "" {
		c.Set(middleware.UserIDKey, user)
	}
	c.Next()
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := application.NewCreditService(
		&stubConsentRepo{rows: make(map[string]domain.CreditConsent)},
		&stubAssessmentRepo{rows: make(map[string]domain.CreditAssessment)},
		&stubOfferRepo{offers: []domain.LoanOffer{{
			ID:          "offer-1",
			PartnerID:   "partner-1",
			PartnerName: "CreatorBank",
			MinAmount:   decimal.NewFromInt(10000),
			MaxAmount:   decimal.NewFromInt(500000),
			APR:         decimal.NewFromInt(12),
			TermMonths:  12,
		}}},
		&stubApplicationRepo{},
		&fixedSignalSource{signals: domain.Signals{
			ConnectedPlatforms: 3,
			TotalFollowers:     60000,
			EngagementScore:    80,
			ConsistencyScore:   85,
			Conversions:        12,
			ProductsInShop:     6,
		}},
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	router := gin.New()
	NewCreditHandler(svc).RegisterRoutes(router, testAuth)
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path, user string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func validApplyBody(offerID string, amount float64) map[string]any {
	return map[string]any{
		"offerId":      offerID,
		"amount":       amount,
		"purpose":      "inventory restock",
		"legalName":    "Modern Mulan",
		"email":        "creator@creatr.app",
		"phone":        "+6312345678",
		"country":      "PH",
		"kycCompleted": true,
	}
}

// ---------------------------------------------------------------------------
// tests
// ---------------------------------------------------------------------------

func TestHandler_Unauthenticated(t *testing.T) {
	router := newTestRouter()

	for _, route := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/v1/credit/consent"},
		{http.MethodPost, "/api/v1/credit/score"},
		{http.MethodGet, "/api/v1/credit/loans/offers"},
		{http.MethodGet, "/api/v1/credit/loans/status"},
		{http.MethodGet, "/api/v1/credit/tips"},
	} {
		code, env := doRequest(t, router, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, route.path)
		assert.False(t, env.Success, route.path)
		require.NotNil(t, env.Error, route.path)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code, route.path)
	}
}

func TestHandler_GetConsent_Default(t *testing.T) {
	router := newTestRouter()

	code, env := doRequest(t, router, http.MethodGet, "/api/v1/credit/consent", "u1", nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var data struct {
		UserID          string   `json:"userId"`
		HasConsented    bool     `json:"hasConsented"`
		DataExplanation []string `json:"dataExplanation"`
		NotUsed         []string `json:"notUsed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "u1", data.UserID)
	assert.False(t, data.HasConsented)
	assert.Len(t, data.DataExplanation, 4)
	assert.Len(t, data.NotUsed, 4)
}

func TestHandler_SetConsent_Validation(t *testing.T) {
	router := newTestRouter()

	code, env := doRequest(t, router, http.MethodPost, "/api/v1/credit/consent", "u1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestHandler_CalculateScore_WithoutConsent(t *testing.T) {
	router := newTestRouter()

	code, env := doRequest(t, router, http.MethodPost, "/api/v1/credit/score", "u1", nil)
	assert.Equal(t, http.StatusForbidden, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONSENT_REQUIRED", env.Error.Code)
	assert.Equal(t, "Please provide consent first", env.Error.Message)
}

func TestHandler_OffersRequireScore(t *testing.T) {
	router := newTestRouter()

	code, env := doRequest(t, router, http.MethodPost, "/api/v1/credit/consent", "u1", map[string]any{"consent": true})
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	code, env = doRequest(t, router, http.MethodGet, "/api/v1/credit/loans/offers", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SCORE_REQUIRED", env.Error.Code)
	assert.Equal(t, "Please calculate your credit score first", env.Error.Message)
}

func TestHandler_FullFlow(t *testing.T) {
	router := newTestRouter()

	code, _ := doRequest(t, router, http.MethodPost, "/api/v1/credit/consent", "u1", map[string]any{"consent": true})
	require.Equal(t, http.StatusOK, code)

	code, env := doRequest(t, router, http.MethodPost, "/api/v1/credit/score", "u1", nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var assessment struct {
		Tier          string  `json:"tier"`
		Score         int     `json:"score"`
		MaxLoanAmount float64 `json:"maxLoanAmount"`
		APRRange      struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"aprRange"`
		TermOptions []int `json:"termOptions"`
		Factors     []struct {
			Name   string `json:"name"`
			Score  int    `json:"score"`
			Impact string `json:"impact"`
		} `json:"factors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &assessment))
	assert.Equal(t, "A", assessment.Tier)
	assert.Equal(t, 850, assessment.Score)
	assert.Equal(t, 500000.0, assessment.MaxLoanAmount)
	assert.Equal(t, 8.0, assessment.APRRange.Min)
	assert.Equal(t, []int{3, 6, 12, 24}, assessment.TermOptions)
	assert.Len(t, assessment.Factors, 5)

	code, env = doRequest(t, router, http.MethodGet, "/api/v1/credit/loans/offers", "u1", nil)
	require.Equal(t, http.StatusOK, code)

	var offers struct {
		Assessment struct {
			Tier string `json:"tier"`
		} `json:"assessment"`
		Offers []struct {
			ID             string  `json:"id"`
			Amount         float64 `json:"amount"`
			MonthlyPayment float64 `json:"monthlyPayment"`
		} `json:"offers"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &offers))
	assert.Equal(t, "A", offers.Assessment.Tier)
	require.Len(t, offers.Offers, 1)
	assert.Equal(t, "offer-1", offers.Offers[0].ID)
	assert.Equal(t, 500000.0, offers.Offers[0].Amount)
	assert.Greater(t, offers.Offers[0].MonthlyPayment, 0.0)

	code, env = doRequest(t, router, http.MethodPost, "/api/v1/credit/loans/apply", "u1", validApplyBody("offer-1", 100000))
	require.Equal(t, http.StatusOK, code)

	var decision struct {
		ID         string  `json:"id"`
		Status     string  `json:"status"`
		ApprovedAt *string `json:"approvedAt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &decision))
	assert.NotEmpty(t, decision.ID)
	assert.Equal(t, "approved", decision.Status)
	assert.NotNil(t, decision.ApprovedAt)

	code, env = doRequest(t, router, http.MethodGet, "/api/v1/credit/loans/status", "u1", nil)
	require.Equal(t, http.StatusOK, code)

	var status []struct {
		ID    string `json:"id"`
		Offer struct {
			PartnerName string `json:"partnerName"`
		} `json:"offer"`
		Status            string `json:"status"`
		RepaymentSchedule []struct {
			DueDate string  `json:"dueDate"`
			Amount  float64 `json:"amount"`
			Status  string  `json:"status"`
		} `json:"repaymentSchedule"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	require.Len(t, status, 1)
	assert.Equal(t, decision.ID, status[0].ID)
	assert.Equal(t, "CreatorBank", status[0].Offer.PartnerName)
	assert.Equal(t, "approved", status[0].Status)
	assert.Len(t, status[0].RepaymentSchedule, 12)
}

func TestHandler_Apply_Validation(t *testing.T) {
	router := newTestRouter()

	body := validApplyBody("offer-1", 100000)
	body["email"] = "not-an-email"
	code, env := doRequest(t, router, http.MethodPost, "/api/v1/credit/loans/apply", "u1", body)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestHandler_Apply_UnknownOffer(t *testing.T) {
	router := newTestRouter()

	code, _ := doRequest(t, router, http.MethodPost, "/api/v1/credit/consent", "u1", map[string]any{"consent": true})
	require.Equal(t, http.StatusOK, code)
	code, _ = doRequest(t, router, http.MethodPost, "/api/v1/credit/score", "u1", nil)
	require.Equal(t, http.StatusOK, code)

	code, env := doRequest(t, router, http.MethodPost, "/api/v1/credit/loans/apply", "u1", validApplyBody("missing", 1000))
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "Offer not found", env.Error.Message)
}

func TestHandler_Apply_RejectedWithoutKYC(t *testing.T) {
	router := newTestRouter()

	code, _ := doRequest(t, router, http.MethodPost, "/api/v1/credit/consent", "u1", map[string]any{"consent": true})
	require.Equal(t, http.StatusOK, code)
	code, _ = doRequest(t, router, http.MethodPost, "/api/v1/credit/score", "u1", nil)
	require.Equal(t, http.StatusOK, code)

	body := validApplyBody("offer-1", 1000)
	body["kycCompleted"] = false
	code, env := doRequest(t, router, http.MethodPost, "/api/v1/credit/loans/apply", "u1", body)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var decision struct {
		Status         string  `json:"status"`
		RejectedReason *string `json:"rejectedReason"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &decision))
	assert.Equal(t, "rejected", decision.Status)
	require.NotNil(t, decision.RejectedReason)
	assert.Equal(t, "Amount exceeds eligible limit or KYC incomplete", *decision.RejectedReason)
}

func TestHandler_Tips(t *testing.T) {
	router := newTestRouter()

	code, env := doRequest(t, router, http.MethodGet, "/api/v1/credit/tips", "u1", nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var tips []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tips))
	// Fixture signals clear every threshold.
	assert.Empty(t, tips)
}
