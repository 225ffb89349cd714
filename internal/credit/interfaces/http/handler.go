package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/creatorcredit/internal/credit/application"
	"github.com/wyfcoding/creatorcredit/internal/credit/domain"
	"github.com/wyfcoding/creatorcredit/pkg/logger"
	"github.com/wyfcoding/creatorcredit/pkg/middleware"
	"github.com/wyfcoding/creatorcredit/pkg/response"
)

// HTTP 处理器
// 负责处理信用评分与贷款相关的 HTTP 请求
type CreditHandler struct {
	app *application.CreditService // 信用应用服务
}

// 创建 HTTP 处理器实例
// app: 注入的信用应用服务
func NewCreditHandler(app *application.CreditService) *CreditHandler {
	return &CreditHandler{app: app}
}

// 注册路由
// 将处理器方法绑定到 Gin 路由引擎，auth 中间件负责会话校验
func (h *CreditHandler) RegisterRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	api := router.Group("/api/v1/credit", auth)
	{
		api.GET("/consent", h.GetConsent)
		api.POST("/consent", h.SetConsent)
		api.POST("/score", h.CalculateScore)
		api.GET("/loans/offers", h.GetLoanOffers)
		api.POST("/loans/apply", h.ApplyForLoan)
		api.GET("/loans/status", h.GetLoanStatus)
		api.GET("/tips", h.GetImprovementTips)
	}
}

// GetConsent 获取授权状态，首次访问时惰性创建默认记录
func (h *CreditHandler) GetConsent(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		response.AbortUnauthorized(c, "Not authenticated")
		return
	}

	consent, err := h.app.GetConsent(c.Request.Context(), userID)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get consent", "user_id", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error")
		return
	}

	response.Success(c, toConsentResponse(consent))
}

// SetConsentRequest 更新授权请求
type SetConsentRequest struct {
	Consent *bool `json:"consent" binding:"required"`
}

// SetConsent 更新授权状态
func (h *CreditHandler) SetConsent(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		response.AbortUnauthorized(c, "Not authenticated")
		return
	}

	var req SetConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, err.Error())
		return
	}

	if err := h.app.SetConsent(c.Request.Context(), userID, *req.Consent); err != nil {
		logger.Error(c.Request.Context(), "Failed to set consent", "user_id", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error")
		return
	}

	response.OK(c)
}

// CalculateScore 计算信用评分并保存评估结果
func (h *CreditHandler) CalculateScore(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		response.AbortUnauthorized(c, "Not authenticated")
		return
	}

	assessment, err := h.app.CalculateScore(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrConsentRequired) {
			response.Error(c, http.StatusForbidden, response.CodeConsentRequired, "Please provide consent first")
			return
		}
		logger.Error(c.Request.Context(), "Failed to calculate score", "user_id", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error")
		return
	}

	response.Success(c, toAssessmentResponse(assessment))
}

// GetLoanOffers 获取按用户等级定制后的贷款产品列表
func (h *CreditHandler) GetLoanOffers(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		response.AbortUnauthorized(c, "Not authenticated")
		return
	}

	result, err := h.app.GetLoanOffers(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConsentRequired):
			response.Error(c, http.StatusForbidden, response.CodeConsentRequired, "Please provide consent first")
		case errors.Is(err, domain.ErrScoreRequired):
			response.Error(c, http.StatusBadRequest, response.CodeScoreRequired, "Please calculate your credit score first")
		default:
			logger.Error(c.Request.Context(), "Failed to get loan offers", "user_id", userID, "error", err)
			response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error")
		}
		return
	}

	response.Success(c, toOffersResponse(result))
}

// ApplyForLoanRequest 贷款申请请求
type ApplyForLoanRequest struct {
	OfferID       string  `json:"offerId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Purpose       string  `json:"purpose" binding:"required,max=500"`
	LegalName     string  `json:"legalName" binding:"required,min=2"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         string  `json:"phone" binding:"required,min=5"`
	Country       string  `json:"country" binding:"required,min=2"`
	PayoutAccount string  `json:"payoutAccount"`
	KYCCompleted  *bool   `json:"kycCompleted" binding:"required"`
}

// ApplyForLoan 提交贷款申请并返回审批结果
func (h *CreditHandler) ApplyForLoan(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		response.AbortUnauthorized(c, "Not authenticated")
		return
	}

	var req ApplyForLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, err.Error())
		return
	}

	app, err := h.app.ApplyForLoan(c.Request.Context(), userID, application.ApplyInput{
		OfferID:       req.OfferID,
		Amount:        decimal.NewFromFloat(req.Amount),
		Purpose:       req.Purpose,
		LegalName:     req.LegalName,
		Email:         req.Email,
		Phone:         req.Phone,
		Country:       req.Country,
		PayoutAccount: req.PayoutAccount,
		KYCCompleted:  *req.KYCCompleted,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOfferNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Offer not found")
		case errors.Is(err, domain.ErrScoreRequired):
			response.Error(c, http.StatusBadRequest, response.CodeScoreRequired, "Credit assessment required")
		default:
			logger.Error(c.Request.Context(), "Failed to apply for loan", "user_id", userID, "error", err)
			response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error")
		}
		return
	}

	response.Success(c, toDecisionResponse(app))
}

// GetLoanStatus 获取用户的贷款申请列表及还款计划
func (h *CreditHandler) GetLoanStatus(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		response.AbortUnauthorized(c, "Not authenticated")
		return
	}

	rows, err := h.app.GetLoanStatus(c.Request.Context(), userID)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get loan status", "user_id", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error")
		return
	}

	response.Success(c, toStatusResponse(rows))
}

// GetImprovementTips 获取提升信用评分的建议列表
func (h *CreditHandler) GetImprovementTips(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		response.AbortUnauthorized(c, "Not authenticated")
		return
	}

	tips, err := h.app.GetImprovementTips(c.Request.Context(), userID)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get improvement tips", "user_id", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error")
		return
	}

	response.Success(c, tips)
}
