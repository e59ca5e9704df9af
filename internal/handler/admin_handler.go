package handler

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"ecotech_server/internal/dto/request"
	"ecotech_server/internal/model"
	"ecotech_server/internal/service"
	"ecotech_server/internal/service/application"
	"ecotech_server/internal/session"
	"ecotech_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the review dashboard. Every route sits behind the admin guard.
type AdminHandler struct {
	view *View
	apps service.ApplicationService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(view *View, apps service.ApplicationService) *AdminHandler {
	return &AdminHandler{view: view, apps: apps}
}

// Dashboard GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.apps.Dashboard(c.Request.Context())
	if err != nil {
		zap.L().Error("load dashboard", zap.Error(err))
		h.view.ServerError(c)
		return
	}
	h.view.HTML(c, http.StatusOK, "dashboard.html", "Admin Dashboard", gin.H{
		"Stats":  dash.Stats,
		"Recent": dash.Recent,
	})
}

// Chart GET /admin/api/applications-chart
func (h *AdminHandler) Chart(c *gin.Context) {
	chart, err := h.apps.Chart(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, chart)
}

// List GET /admin/applications?page&status&type&search
func (h *AdminHandler) List(c *gin.Context) {
	var req request.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		zap.L().Warn("bind application filters", zap.String("query", c.Request.URL.RawQuery), zap.Error(err))
	}

	list, err := h.apps.List(c.Request.Context(), req)
	if err != nil {
		zap.L().Error("list applications", zap.Error(err))
		h.view.ServerError(c)
		return
	}
	h.view.HTML(c, http.StatusOK, "applications.html", "Applications", gin.H{
		"List":     list,
		"Statuses": model.Statuses,
		"Domains":  model.Domains,
	})
}

// View GET /admin/application/:id
func (h *AdminHandler) View(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	app, err := h.apps.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.view.HTML(c, http.StatusOK, "view_application.html", "Application - "+app.Name, gin.H{
		"Application": app,
		"Statuses":    model.Statuses,
	})
}

// Update POST /admin/application/:id/update
// An unknown id is a 404 before the form is looked at.
func (h *AdminHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if _, err := h.apps.Get(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	back := detailURL(id)
	var req request.UpdateApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		if isTooLarge(err) {
			tooLarge(c)
			return
		}
		h.view.Flash(c, session.FlashError, application.MsgUpdateFailed)
		h.view.Redirect(c, back)
		return
	}
	if err := h.apps.UpdateReview(c.Request.Context(), id, req); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			h.view.NotFound(c)
			return
		}
		h.view.Flash(c, session.FlashError, application.MsgUpdateFailed)
		h.view.Redirect(c, back)
		return
	}
	h.view.Flash(c, session.FlashSuccess, "Application status updated to "+req.Status)
	h.view.Redirect(c, back)
}

// DownloadResume GET /admin/download-resume/:id
func (h *AdminHandler) DownloadResume(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	file, err := h.apps.OpenResume(c.Request.Context(), id)
	if err != nil {
		switch errorx.GetCode(err) {
		case errorx.CodeNotFound:
			h.view.NotFound(c)
		case errorx.CodeFileMissing:
			h.view.Flash(c, session.FlashError, errorx.Message(err, application.MsgResumeNotFound))
			h.view.Redirect(c, detailURL(id))
		default:
			h.view.Flash(c, session.FlashError, application.MsgResumeNotFound)
			h.view.Redirect(c, detailURL(id))
		}
		return
	}
	defer file.Content.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Name})
	c.DataFromReader(http.StatusOK, file.Size, "application/pdf", file.Content, map[string]string{
		"Content-Disposition": disposition,
	})
}

// parseID reads :id; anything but a positive integer is a 404.
func (h *AdminHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.view.NotFound(c)
		return 0, false
	}
	return uint(id), true
}

func (h *AdminHandler) fail(c *gin.Context, err error) {
	if errorx.GetCode(err) == errorx.CodeNotFound {
		h.view.NotFound(c)
		return
	}
	zap.L().Error("load application", zap.String("path", c.Request.URL.Path), zap.Error(err))
	h.view.ServerError(c)
}

func detailURL(id uint) string {
	return fmt.Sprintf("/admin/application/%d", id)
}
