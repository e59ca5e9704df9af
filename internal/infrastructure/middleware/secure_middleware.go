package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// SecureOptions selects the unrolled/secure behaviour.
type SecureOptions struct {
	SSLRedirect bool   // redirect plain HTTP to SSLHost
	SSLHost     string // e.g. "ecotech.example.com:443"; empty keeps the request host
	Development bool   // disables SSL redirect and HSTS
}

// SecureHeaders adds the standard security headers and, when enabled, the HTTPS redirect.
func SecureHeaders(opts SecureOptions) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:          opts.SSLRedirect,
		SSLHost:              opts.SSLHost,
		SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:           31536000,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		IsDevelopment:        opts.Development,
		STSIncludeSubdomains: true,
	})

	return func(c *gin.Context) {
		// on redirect Process has already written the response and returns an error
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			zap.L().Debug("secure middleware stopped request", zap.Error(err))
			c.Abort()
			return
		}
		c.Next()
	}
}
