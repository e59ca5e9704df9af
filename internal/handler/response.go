package handler

import (
	"errors"
	"net/http"
	"time"

	"ecotech_server/internal/model"
	"ecotech_server/internal/service"
	"ecotech_server/internal/session"
	"ecotech_server/pkg/constants"
	"ecotech_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// View renders HTML pages with the data every layout needs.
type View struct {
	AppName  string
	Sessions *session.Manager
	Auth     service.AuthService
}

// NewView creates a View.
func NewView(appName string, sessions *session.Manager, auth service.AuthService) *View {
	return &View{AppName: appName, Sessions: sessions, Auth: auth}
}

// HTML renders the named template with data plus the layout keys:
// Title, AppName, Flashes, CSRFField, CurrentAdmin and Year.
func (v *View) HTML(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["AppName"] = v.AppName
	data["Flashes"] = v.Sessions.Flashes(c)
	data["CSRFField"] = csrf.TemplateField(c.Request)
	data["CurrentAdmin"] = v.CurrentAdmin(c)
	data["Year"] = time.Now().Year()
	c.HTML(status, name, data)
}

// CurrentAdmin returns the logged-in admin or nil. The admin guard stores it on the
// context; on public pages it is looked up from the session cookie.
func (v *View) CurrentAdmin(c *gin.Context) *model.Admin {
	if val, ok := c.Get(constants.CURRENT_ADMIN_KEY); ok {
		admin, _ := val.(*model.Admin)
		return admin
	}
	var admin *model.Admin
	if id, ok := v.Sessions.Current(c); ok && v.Auth != nil {
		a, err := v.Auth.GetAdmin(c.Request.Context(), id)
		if err == nil && a.IsActive {
			admin = a
		}
	}
	c.Set(constants.CURRENT_ADMIN_KEY, admin)
	return admin
}

// Flash queues a message for the next rendered page.
func (v *View) Flash(c *gin.Context, category, message string) {
	v.Sessions.AddFlash(c, category, message)
}

// Redirect answers with 302 Found.
func (v *View) Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// NotFound renders the 404 page.
func (v *View) NotFound(c *gin.Context) {
	v.HTML(c, http.StatusNotFound, "404.html", "Page Not Found", nil)
}

// ServerError renders the 500 page.
func (v *View) ServerError(c *gin.Context) {
	v.HTML(c, http.StatusInternalServerError, "500.html", "Server Error", nil)
}

// HandleSuccess writes data as JSON with 200.
func HandleSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// HandleError writes a JSON error. Known CodeErrors keep their message; anything else
// is logged and reported as ErrServerBusy.
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		c.JSON(statusForCode(codeErr.Code), gin.H{
			"code":  codeErr.Code,
			"error": codeErr.Msg,
		})
		return
	}

	zap.L().Error("system error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":  errorx.ErrServerBusy.Code,
		"error": errorx.ErrServerBusy.Msg,
	})
}

func statusForCode(code int) int {
	switch code {
	case errorx.CodeInvalidParam, errorx.CodeInvalidFile:
		return http.StatusBadRequest
	case errorx.CodeUnauthorized:
		return http.StatusUnauthorized
	case errorx.CodeNotFound, errorx.CodeFileMissing:
		return http.StatusNotFound
	case errorx.CodeEntityTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// isTooLarge reports whether a binding error came from the request body cap.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// tooLarge answers 413 for a body over the configured cap.
func tooLarge(c *gin.Context) {
	c.String(http.StatusRequestEntityTooLarge, "Request Entity Too Large")
}
