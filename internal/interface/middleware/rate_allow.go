package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-forum-auth/internal/domain/apperror"
	"github.com/oksasatya/go-forum-auth/pkg/response"
)

// AllowPrivateIP reports whether the client IP is loopback or in a
// private range (10/8, 172.16/12, 192.168/16, fc00::/7).
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// Restrict rejects requests for which allow returns false.
func Restrict(allow AllowFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allow != nil && !allow(c) {
			response.Error[any](c, http.StatusForbidden, apperror.MsgForbidden, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
