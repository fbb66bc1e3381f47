package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-forum-auth/internal/container"
	handlers "github.com/oksasatya/go-forum-auth/internal/interface/http"
	"github.com/oksasatya/go-forum-auth/internal/interface/middleware"
)

// AuthModule wires sign-up, verification, and login.
// Public: POST /api/auth/sign-up, /api/auth/verify-email, /api/auth/log-in, /api/auth/log-out
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP+path rate limits
	signUpLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	logInLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/sign-up", signUpLimiter, m.Handler.SignUp)
	rg.POST("/auth/verify-email", verifyLimiter, m.Handler.VerifyEmail)
	rg.POST("/auth/log-in", logInLimiter, m.Handler.LogIn)
	rg.POST("/auth/log-out", m.Handler.LogOut)
}
