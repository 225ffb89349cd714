package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wyfcoding/creatorcredit/pkg/response"
)

// UserIDKey gin context 中已鉴权用户 ID 的键
const UserIDKey = "user_id"

// GinAuthMiddleware 校验 Bearer JWT，并把 subject（用户 ID）写入 context
func GinAuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortUnauthorized(c, "Not authenticated")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.AbortUnauthorized(c, "Not authenticated")
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			response.AbortUnauthorized(c, "Not authenticated")
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			response.AbortUnauthorized(c, "Not authenticated")
			return
		}

		c.Set(UserIDKey, subject)
		c.Next()
	}
}

// UserID 从 gin context 中读取已鉴权的用户 ID
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
