package handler

import (
	"net/http"

	"ecotech_server/internal/dto/request"
	"ecotech_server/internal/model"
	"ecotech_server/internal/service"
	"ecotech_server/internal/service/application"
	"ecotech_server/internal/session"
	"ecotech_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MsgApplySuccess is flashed after a stored application.
const MsgApplySuccess = "Your application has been submitted successfully! We will contact you soon."

// ApplyHandler serves the internship application form.
type ApplyHandler struct {
	view *View
	apps service.ApplicationService
}

// NewApplyHandler creates an ApplyHandler.
func NewApplyHandler(view *View, apps service.ApplicationService) *ApplyHandler {
	return &ApplyHandler{view: view, apps: apps}
}

// Form GET /apply
func (h *ApplyHandler) Form(c *gin.Context) {
	h.render(c, http.StatusOK, &request.ApplyRequest{}, nil)
}

// Submit POST /apply
// Field errors re-render the form with 400; a rejected resume is reported under "resume".
// Storage and database failures keep the form and show a generic flash.
func (h *ApplyHandler) Submit(c *gin.Context) {
	var req request.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		if isTooLarge(err) {
			tooLarge(c)
			return
		}
		fieldErrs, ok := FieldErrors(err)
		if !ok {
			zap.L().Warn("bind application form", zap.Error(err))
			fieldErrs = map[string]string{"resume": "The form could not be read. Please try again."}
		}
		h.render(c, http.StatusBadRequest, &req, fieldErrs)
		return
	}

	if _, err := h.apps.Submit(c.Request.Context(), req); err != nil {
		if errorx.GetCode(err) == errorx.CodeInvalidFile {
			h.render(c, http.StatusBadRequest, &req, map[string]string{
				"resume": errorx.Message(err, "Only PDF files are allowed"),
			})
			return
		}
		h.view.Flash(c, session.FlashError, application.MsgSubmitFailed)
		h.render(c, http.StatusOK, &req, nil)
		return
	}

	h.view.Flash(c, session.FlashSuccess, MsgApplySuccess)
	h.view.Redirect(c, "/apply")
}

func (h *ApplyHandler) render(c *gin.Context, status int, form *request.ApplyRequest, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	h.view.HTML(c, status, "apply.html", "Apply for Internship", gin.H{
		"Form":         form,
		"Errors":       errs,
		"YearsOfStudy": model.YearsOfStudy,
		"Domains":      model.Domains,
	})
}
