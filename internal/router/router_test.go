package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-forum-auth/config"
	"github.com/oksasatya/go-forum-auth/internal/container"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
)

func newTestRegistry(t *testing.T, metrics bool) *Registry {
	t.Helper()
	gin.SetMode(gin.TestMode)
	container.SetConfig(&config.Config{DebugMetricsEnabled: metrics, VerifyCodeTTL: 300 * time.Second})
	container.SetLogger(helpers.NewDiscardLogger())
	container.SetJWT(helpers.NewJWTManager("secret", time.Hour, "forum"))

	reg := NewRegistry(gin.New())
	InitModules(reg)
	reg.RegisterAll()
	return reg
}

func routeSet(e *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, r := range e.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func TestInitModules_Routes(t *testing.T) {
	routes := routeSet(newTestRegistry(t, true).Engine)

	for _, want := range []string{
		"POST /api/auth/sign-up",
		"POST /api/auth/verify-email",
		"POST /api/auth/log-in",
		"POST /api/auth/log-out",
		"GET /api/users/me",
		"GET /api/users/search",
		"GET /api/debug/metrics",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestInitModules_MetricsToggle(t *testing.T) {
	routes := routeSet(newTestRegistry(t, false).Engine)
	assert.False(t, routes["GET /api/debug/metrics"])
}

func TestProtectedRouteNeedsToken(t *testing.T) {
	reg := newTestRegistry(t, false)

	w := httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry(gin.New())
	reg.AddHealthCheck("postgres", func(context.Context) error { return nil })
	reg.RegisterAll()

	w := httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","checks":{"postgres":"ok"}}`, w.Body.String())

	reg.AddHealthCheck("redis", func(context.Context) error { return errors.New("connection refused") })
	w = httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}
