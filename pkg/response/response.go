// Package response 提供统一的 HTTP 响应封装
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope 标准响应结构
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody 错误信息
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// 错误码
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeValidationError = "VALIDATION_ERROR"
	CodeConsentRequired = "CONSENT_REQUIRED"
	CodeScoreRequired   = "SCORE_REQUIRED"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// OK 返回无数据的成功响应
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, Envelope{Success: true})
}

// Error 返回错误响应
func Error(c *gin.Context, status int, code string, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}

// AbortUnauthorized 返回未授权响应并中断后续处理
func AbortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: CodeUnauthorized, Message: message},
	})
}
