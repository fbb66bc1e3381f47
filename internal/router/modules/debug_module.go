package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/go-forum-auth/internal/container"
	"github.com/oksasatya/go-forum-auth/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

// Register exposes Prometheus metrics to private networks only, rate-limited per IP.
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/metrics", middleware.Restrict(middleware.AllowPrivateIP()), rl, gin.WrapH(promhttp.Handler()))
}
