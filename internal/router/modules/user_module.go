package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-forum-auth/internal/container"
	handlers "github.com/oksasatya/go-forum-auth/internal/interface/http"
	"github.com/oksasatya/go-forum-auth/internal/interface/middleware"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
)

// UserModule wires the account read endpoints behind the access token.
// Protected: GET /api/users/me, GET /api/users/search
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccount(), nil),
	)
	{
		auth.GET("/me", m.Handler.Me)
		auth.GET("/search", m.Handler.Search)
	}
}
