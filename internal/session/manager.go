package session

import (
	"net/http"
	"strings"
	"time"

	"ecotech_server/pkg/constants"
	"ecotech_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Flash categories understood by the templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
	FlashWarning = "warning"
)

const (
	ctxAdminKey = "session.admin"
	ctxFlashKey = "session.flash"
)

// Manager ties the signed cookies to the Store.
type Manager struct {
	store  Store
	signer *jwt.Signer
	ttl    time.Duration
	secure bool
}

// NewManager creates a Manager. Sessions are always remembered for rememberDays.
func NewManager(store Store, signer *jwt.Signer, rememberDays int, secure bool) *Manager {
	if rememberDays <= 0 {
		rememberDays = constants.REMEMBER_DAYS
	}
	return &Manager{
		store:  store,
		signer: signer,
		ttl:    time.Duration(rememberDays) * 24 * time.Hour,
		secure: secure,
	}
}

// Login creates a fresh session for adminID and sets the session cookie.
func (m *Manager) Login(c *gin.Context, adminID uint) error {
	sessionID := uuid.NewString()
	if err := m.store.Save(c.Request.Context(), sessionID, adminID, m.ttl); err != nil {
		return err
	}
	token, err := m.signer.GenerateSessionToken(sessionID, adminID, m.ttl)
	if err != nil {
		_ = m.store.Delete(c.Request.Context(), sessionID)
		return err
	}
	m.setCookie(c, constants.SESSION_COOKIE_NAME, token, int(m.ttl/time.Second))
	c.Set(ctxAdminKey, adminID)
	return nil
}

// Current returns the logged-in admin id, if any. The result is cached on the context.
func (m *Manager) Current(c *gin.Context) (uint, bool) {
	if v, ok := c.Get(ctxAdminKey); ok {
		id, _ := v.(uint)
		return id, id != 0
	}
	adminID := m.lookup(c)
	c.Set(ctxAdminKey, adminID)
	return adminID, adminID != 0
}

func (m *Manager) lookup(c *gin.Context) uint {
	token, err := c.Cookie(constants.SESSION_COOKIE_NAME)
	if err != nil || token == "" {
		return 0
	}
	claims, err := m.signer.ParseSessionToken(token)
	if err != nil {
		return 0
	}
	adminID, ok, err := m.store.Get(c.Request.Context(), claims.SessionID)
	if err != nil {
		zap.L().Error("session lookup failed", zap.Error(err))
		return 0
	}
	if !ok || adminID != claims.AdminID {
		return 0
	}
	return adminID
}

// Logout deletes the server-side session and clears the cookie.
func (m *Manager) Logout(c *gin.Context) error {
	c.Set(ctxAdminKey, uint(0))
	m.setCookie(c, constants.SESSION_COOKIE_NAME, "", -1)

	token, err := c.Cookie(constants.SESSION_COOKIE_NAME)
	if err != nil || token == "" {
		return nil
	}
	claims, err := m.signer.ParseSessionToken(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(c.Request.Context(), claims.SessionID)
}

type flashState struct {
	incoming []jwt.FlashMessage
	pending  []jwt.FlashMessage
	consumed bool
	dirty    bool // a flash cookie exists on the client or was set in this response
}

func (m *Manager) flashes(c *gin.Context) *flashState {
	if v, ok := c.Get(ctxFlashKey); ok {
		return v.(*flashState)
	}
	state := &flashState{}
	if token, err := c.Cookie(constants.FLASH_COOKIE_NAME); err == nil && token != "" {
		state.dirty = true
		if msgs, err := m.signer.ParseFlashToken(token); err == nil {
			state.incoming = msgs
		}
	}
	c.Set(ctxFlashKey, state)
	return state
}

// AddFlash queues a message for the next rendered page, in this request or after a redirect.
func (m *Manager) AddFlash(c *gin.Context, category, message string) {
	state := m.flashes(c)
	state.pending = append(state.pending, jwt.FlashMessage{Category: category, Message: message})
	m.writeFlashCookie(c, state)
}

// Flashes pops every queued message. Later calls in the same request return nothing.
func (m *Manager) Flashes(c *gin.Context) []jwt.FlashMessage {
	state := m.flashes(c)
	var out []jwt.FlashMessage
	if !state.consumed {
		out = append(out, state.incoming...)
		state.consumed = true
	}
	out = append(out, state.pending...)
	state.pending = nil
	m.writeFlashCookie(c, state)
	return out
}

func (m *Manager) writeFlashCookie(c *gin.Context, state *flashState) {
	var carry []jwt.FlashMessage
	if !state.consumed {
		carry = append(carry, state.incoming...)
	}
	carry = append(carry, state.pending...)

	header := c.Writer.Header()
	existing := append([]string(nil), header.Values("Set-Cookie")...)
	header.Del("Set-Cookie")
	for _, v := range existing {
		if !strings.HasPrefix(v, constants.FLASH_COOKIE_NAME+"=") {
			header.Add("Set-Cookie", v)
		}
	}

	if len(carry) == 0 {
		if state.dirty {
			m.setCookie(c, constants.FLASH_COOKIE_NAME, "", -1)
		}
		return
	}
	token, err := m.signer.GenerateFlashToken(carry)
	if err != nil {
		zap.L().Error("sign flash cookie failed", zap.Error(err))
		return
	}
	state.dirty = true
	m.setCookie(c, constants.FLASH_COOKIE_NAME, token, 0)
}

func (m *Manager) setCookie(c *gin.Context, name, value string, maxAge int) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge > 0 {
		cookie.Expires = time.Now().Add(time.Duration(maxAge) * time.Second)
	}
	http.SetCookie(c.Writer, cookie)
}
