package handler

import (
	"net/http"

	"ecotech_server/internal/service"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the static marketing pages.
type PageHandler struct {
	view    *View
	content service.ContentService
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(view *View, content service.ContentService) *PageHandler {
	return &PageHandler{view: view, content: content}
}

// Index GET /
func (h *PageHandler) Index(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "index.html", "", nil)
}

// Services GET /services
func (h *PageHandler) Services(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "services.html", "Our Services", gin.H{
		"Services": h.content.Services(),
	})
}

// Internships GET /internships
func (h *PageHandler) Internships(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "internships.html", "Internship Programs", gin.H{
		"Positions": h.content.Internships(),
	})
}

// About GET /about
func (h *PageHandler) About(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "about.html", "About Us", nil)
}
