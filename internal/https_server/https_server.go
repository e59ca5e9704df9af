// Package https_server assembles the gin engine and the http.Server around it.
package https_server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"ecotech_server/internal/config"
	"ecotech_server/internal/handler"
	"ecotech_server/internal/infrastructure/logger"
	"ecotech_server/internal/infrastructure/middleware"
	"ecotech_server/internal/router"
	"ecotech_server/internal/session"
	"ecotech_server/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// NewEngine builds the gin engine:
//  1. zap request log and panic recovery (500 page)
//  2. security headers, CORS for the configured origins, body cap
//  3. embedded templates, /static and /favicon.ico
//  4. application routes and the 404 page
func NewEngine(cfg *config.Config, handlers *handler.Handlers, sessions *session.Manager, admins middleware.AdminLoader) (*gin.Engine, error) {
	engine := gin.New()
	engine.MaxMultipartMemory = 8 << 20

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true, handlers.View.ServerError))

	release := cfg.Mode == "release"
	engine.Use(middleware.SecureHeaders(middleware.SecureOptions{
		SSLRedirect: release && cfg.SessionConfig.Secure,
		Development: !release,
	}))

	if len(cfg.AllowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowOrigins
		corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
		corsConfig.AllowCredentials = true
		engine.Use(cors.New(corsConfig))
	}

	engine.Use(middleware.BodyLimit(cfg.MaxContentLength))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	engine.StaticFS("/static", http.FS(web.Static()))
	favicon, err := web.Favicon()
	if err != nil {
		return nil, fmt.Errorf("load favicon: %w", err)
	}
	engine.GET("/favicon.ico", func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=86400")
		c.Data(http.StatusOK, "image/svg+xml", favicon)
	})

	rt := router.NewRouter(handlers, sessions, admins)
	rt.RegisterRoutes(engine)
	engine.NoRoute(handlers.View.NotFound)

	return engine, nil
}

// NewServer wraps engine in an http.Server on cfg.Addr(). With sessionConfig.csrf set,
// every unsafe request must carry the gorilla/csrf token rendered into the forms.
func NewServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           Handler(cfg, engine),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Handler is the full stack served by NewServer. The body cap sits outermost so the
// CSRF check cannot parse an upload past maxContentLength.
func Handler(cfg *config.Config, engine *gin.Engine) http.Handler {
	return middleware.LimitBody(cfg.MaxContentLength, WithCSRF(cfg, engine))
}

// WithCSRF adds gorilla/csrf in front of next when enabled in cfg.
// The 32-byte key is derived from the session secret.
func WithCSRF(cfg *config.Config, next http.Handler) http.Handler {
	if !cfg.SessionConfig.CSRF {
		return next
	}
	key := sha256.Sum256([]byte("csrf:" + cfg.SessionConfig.Secret))
	protect := csrf.Protect(key[:],
		csrf.Secure(cfg.SessionConfig.Secure),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)
	protected := protect(next)
	if cfg.SessionConfig.Secure {
		return protected
	}
	// without TLS the origin check must not demand https referers
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	// the token went missing because the form was cut off at the cap
	if middleware.BodyExceeded(r) {
		zap.L().Warn("request body over limit",
			zap.String("path", r.URL.Path),
			zap.String("ClientIP", r.RemoteAddr),
		)
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return
	}
	zap.L().Warn("csrf check failed",
		zap.String("path", r.URL.Path),
		zap.String("ClientIP", r.RemoteAddr),
		zap.Error(csrf.FailureReason(r)),
	)
	http.Error(w, "The CSRF token is missing or invalid.", http.StatusForbidden)
}
