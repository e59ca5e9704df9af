// Package handler holds the gin handlers. Handlers receive their services through
// constructors so tests can swap in stubs.
package handler

import (
	"ecotech_server/internal/service"
	"ecotech_server/internal/session"
)

// Handlers aggregates every handler; the router reaches them through it.
type Handlers struct {
	View    *View
	Page    *PageHandler
	Apply   *ApplyHandler
	Contact *ContactHandler
	Auth    *AuthHandler
	Admin   *AdminHandler
}

// NewHandlers wires the handlers to svc and the session manager.
func NewHandlers(appName string, svc *service.Services, sessions *session.Manager) *Handlers {
	view := NewView(appName, sessions, svc.Auth)
	return &Handlers{
		View:    view,
		Page:    NewPageHandler(view, svc.Content),
		Apply:   NewApplyHandler(view, svc.Application),
		Contact: NewContactHandler(view, svc.Contact),
		Auth:    NewAuthHandler(view, svc.Auth, sessions),
		Admin:   NewAdminHandler(view, svc.Application),
	}
}
