package handler

import (
	"net/http"
	"net/url"
	"strings"

	"ecotech_server/internal/dto/request"
	"ecotech_server/internal/service"
	"ecotech_server/internal/session"
	"ecotech_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth flashes.
const (
	MsgLoggedOut  = "You have been logged out successfully."
	MsgLoginError = "An error occurred while logging in. Please try again."
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	view     *View
	auth     service.AuthService
	sessions *session.Manager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(view *View, auth service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{view: view, auth: auth, sessions: sessions}
}

// LoginForm GET /auth/login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if h.view.CurrentAdmin(c) != nil {
		h.view.Redirect(c, "/admin/dashboard")
		return
	}
	h.render(c, http.StatusOK, &request.LoginRequest{}, nil)
}

// Login POST /auth/login
// Unknown users and wrong passwords get the same message.
func (h *AuthHandler) Login(c *gin.Context) {
	if h.view.CurrentAdmin(c) != nil {
		h.view.Redirect(c, "/admin/dashboard")
		return
	}

	var req request.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		fieldErrs, _ := FieldErrors(err)
		h.render(c, http.StatusOK, &req, fieldErrs)
		return
	}

	admin, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		msg := errorx.ErrInvalidCredentials.Msg
		if errorx.GetCode(err) != errorx.CodeUnauthorized {
			zap.L().Error("admin login", zap.String("username", req.Username), zap.Error(err))
			msg = MsgLoginError
		}
		h.view.Flash(c, session.FlashError, msg)
		h.render(c, http.StatusOK, &req, nil)
		return
	}

	if err := h.sessions.Login(c, admin.ID); err != nil {
		zap.L().Error("create session", zap.Uint("admin_id", admin.ID), zap.Error(err))
		h.view.Flash(c, session.FlashError, MsgLoginError)
		h.render(c, http.StatusOK, &req, nil)
		return
	}

	zap.L().Info("admin logged in", zap.String("username", admin.Username))
	h.view.Flash(c, session.FlashSuccess, "Welcome back, "+admin.Username+"!")
	h.view.Redirect(c, SafeNext(c.Query("next"), "/admin/dashboard"))
}

// Logout GET /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c); err != nil {
		zap.L().Error("delete session", zap.Error(err))
	}
	h.view.Flash(c, session.FlashInfo, MsgLoggedOut)
	h.view.Redirect(c, "/")
}

func (h *AuthHandler) render(c *gin.Context, status int, form *request.LoginRequest, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	h.view.HTML(c, status, "login.html", "Admin Login", gin.H{
		"Form":   form,
		"Errors": errs,
		"Next":   SafeNext(c.Query("next"), ""),
	})
}

// SafeNext returns next when it is a path on this site, fallback otherwise.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}
