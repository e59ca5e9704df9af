package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies at limit bytes. A declared Content-Length over the cap
// is rejected at once; otherwise reads past the cap fail with *http.MaxBytesError.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// LimitBody applies the same cap in front of plain net/http handlers that read the
// body before gin does. gorilla/csrf is one: it parses the posted form to find the token.
// Chunked bodies have no Content-Length, so the cap is enforced while reading and
// BodyExceeded tells later handlers that it fired.
func LimitBody(limit int64, next http.Handler) http.Handler {
	if limit <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > limit {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		if r.Body != nil && r.Body != http.NoBody {
			body := &limitedBody{ReadCloser: http.MaxBytesReader(w, r.Body, limit)}
			r = r.WithContext(context.WithValue(r.Context(), limitedBodyKey{}, body))
			r.Body = body
		}
		next.ServeHTTP(w, r)
	})
}

type limitedBodyKey struct{}

type limitedBody struct {
	io.ReadCloser
	exceeded bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		b.exceeded = true
	}
	return n, err
}

// BodyExceeded reports whether reading r's body already ran past the LimitBody cap.
func BodyExceeded(r *http.Request) bool {
	b, ok := r.Context().Value(limitedBodyKey{}).(*limitedBody)
	return ok && b.exceeded
}
