package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"socialfeed/internal/core/apperror"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey = "userID"
	TokenKey  = "token"
)

// Authenticator توکن را به شناسه کاربر تبدیل می‌کند
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// JWTAuthMiddleware هدر Authorization با پیشوند Bearer یا Token را می‌پذیرد
func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication credentials were not provided",
				"code":  apperror.KindAuthentication,
			})
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			kind := apperror.KindOf(err)
			if kind == apperror.KindInternal {
				status = http.StatusInternalServerError
				_ = c.Error(err)
			}
			c.AbortWithStatusJSON(status, gin.H{"error": errorMessage(err), "code": kind})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, token)
		c.Next()
	}
}

func extractToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func errorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
		return appErr.Message
	}
	return "invalid token"
}
