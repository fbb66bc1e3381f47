package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-forum-auth/internal/application"
	"github.com/oksasatya/go-forum-auth/internal/domain/apperror"
	"github.com/oksasatya/go-forum-auth/internal/interface/middleware"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
	"github.com/oksasatya/go-forum-auth/pkg/response"
)

// AccountService is the part of application.AccountService the handler needs.
type AccountService interface {
	GetProfile(ctx context.Context, accountID int64) (*application.Profile, error)
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type UserHandler struct {
	Svc    AccountService
	Logger *logrus.Logger
}

func NewUserHandler(svc AccountService, logger *logrus.Logger) *UserHandler {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &UserHandler{Svc: svc, Logger: logger}
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	id := c.GetInt64(middleware.CtxAccountIDKey)
	if id == 0 {
		response.Fail(c, apperror.ErrUnauthorized, nil)
		return
	}
	p, err := h.Svc.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, p, apperror.MsgProfileSuccess, nil)
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.Fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, hits, apperror.MsgSearchSuccess, map[string]any{"count": len(hits)})
}
