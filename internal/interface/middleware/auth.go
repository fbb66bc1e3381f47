package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-forum-auth/internal/domain/apperror"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
	"github.com/oksasatya/go-forum-auth/pkg/response"
)

// Context keys set by Auth.
const (
	CtxAccountIDKey = "accountID"
	CtxEmailKey     = "email"
)

// bearerToken returns the token from "Authorization: Bearer <t>" or,
// failing that, the access_token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if token, err := c.Cookie(helpers.AccessTokenCookie); err == nil {
		return token
	}
	return ""
}

// Auth validates the access token. Tokens are self-contained, so no
// session lookup happens. It sets accountID and email in the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Fail(c, apperror.ErrUnauthorized, "missing access token")
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Fail(c, apperror.ErrUnauthorized, "invalid access token")
			c.Abort()
			return
		}

		c.Set(CtxAccountIDKey, claims.AccountID)
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}
