package middleware

import (
	"context"
	"net/http"
	"net/url"

	"ecotech_server/internal/model"
	"ecotech_server/internal/session"
	"ecotech_server/pkg/constants"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MsgLoginRequired is flashed when an anonymous visitor hits an admin page.
const MsgLoginRequired = "Please log in to access the admin dashboard."

// AdminLoader loads an admin by id.
type AdminLoader interface {
	GetAdmin(ctx context.Context, id uint) (*model.Admin, error)
}

// RequireAdmin lets the request through only with a valid session for an active admin,
// storing the admin on the context under constants.CURRENT_ADMIN_KEY.
// Anyone else is sent to the login page with the original path in ?next=.
func RequireAdmin(sessions *session.Manager, admins AdminLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := sessions.Current(c); ok {
			admin, err := admins.GetAdmin(c.Request.Context(), id)
			if err == nil && admin.IsActive {
				c.Set(constants.CURRENT_ADMIN_KEY, admin)
				c.Next()
				return
			}
			if err != nil {
				zap.L().Warn("session admin lookup failed", zap.Uint("admin_id", id), zap.Error(err))
			}
		}

		sessions.AddFlash(c, session.FlashInfo, MsgLoginRequired)
		c.Redirect(http.StatusFound, "/auth/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}
