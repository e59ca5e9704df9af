package handler

import (
	"net/http"

	"ecotech_server/internal/dto/request"
	"ecotech_server/internal/service"
	"ecotech_server/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Contact form flashes.
const (
	MsgContactSuccess = "Your message has been sent successfully!"
	MsgContactFailed  = "An error occurred while sending your message. Please try again."
)

// ContactHandler serves the contact form.
type ContactHandler struct {
	view     *View
	contacts service.ContactService
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(view *View, contacts service.ContactService) *ContactHandler {
	return &ContactHandler{view: view, contacts: contacts}
}

// Form GET /contact
func (h *ContactHandler) Form(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "contact.html", "Contact Us", nil)
}

// Submit POST /contact
// The fields are stored as submitted.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req request.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		if isTooLarge(err) {
			tooLarge(c)
			return
		}
		zap.L().Warn("bind contact form", zap.Error(err))
	}
	if err := h.contacts.Submit(c.Request.Context(), req); err != nil {
		h.view.Flash(c, session.FlashError, MsgContactFailed)
		h.view.Redirect(c, "/contact")
		return
	}
	h.view.Flash(c, session.FlashSuccess, MsgContactSuccess)
	h.view.Redirect(c, "/contact")
}
