package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-forum-auth/internal/application"
	"github.com/oksasatya/go-forum-auth/internal/domain/apperror"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
	"github.com/oksasatya/go-forum-auth/pkg/response"
	"github.com/oksasatya/go-forum-auth/pkg/validation"
)

// HeaderSourcePage names the page that started the request.
const HeaderSourcePage = "X-Source-Page"

// AuthService is the part of application.AuthService the handler needs.
type AuthService interface {
	Register(ctx context.Context, in application.RegisterInput, origin application.OriginPage) (*application.RegisterResult, error)
	VerifyEmail(ctx context.Context, email string, code int) (*application.VerifyResult, error)
	Login(ctx context.Context, email, password string) (*application.LoginResult, error)
}

type AuthHandler struct {
	Svc     AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signUpRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Nickname        string `json:"nickname" binding:"required,nickname"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  int    `json:"code" binding:"required"`
}

type logInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func originFrom(c *gin.Context) application.OriginPage {
	if p := strings.TrimSpace(c.GetHeader(HeaderSourcePage)); p != "" {
		return application.OriginPage(p)
	}
	return application.OriginSignUp
}

// SignUp POST /api/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, apperror.MsgInvalidPayload, validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:           req.Email,
		Nickname:        req.Nickname,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	}, originFrom(c))
	if err != nil {
		if res != nil {
			h.Logger.WithError(err).WithField("email", res.Email).Warn("account created but verification mail failed")
		}
		response.Fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusCreated, res, apperror.MsgSignUpSuccess, nil)
}

// VerifyEmail POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, apperror.MsgInvalidPayload, validation.ToDetails(err))
		return
	}

	res, err := h.Svc.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		response.Fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, res, apperror.MsgVerifySuccess, nil)
}

// LogIn POST /api/auth/log-in
func (h *AuthHandler) LogIn(c *gin.Context) {
	var req logInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, apperror.MsgInvalidPayload, validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err, nil)
		return
	}
	h.Cookies.SetAccess(c, res.AccessToken, res.ExpiresAt)
	response.Success(c, http.StatusOK, res, apperror.MsgLogInSuccess, map[string]any{"access_expires_at": res.ExpiresAt})
}

// LogOut POST /api/auth/log-out
func (h *AuthHandler) LogOut(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, apperror.MsgLogOutSuccess, nil)
}
