// Package jwt signs the cookies the site hands out: the admin session cookie and the flash cookie.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer         = "ecotech"
	subjectSession = "session"
	subjectFlash   = "flash"
)

// ErrWrongSubject is returned when a valid token is presented for the wrong purpose,
// e.g. a flash token in the session cookie.
var ErrWrongSubject = errors.New("jwt: token subject mismatch")

// Signer holds the HMAC secret. It replaces a package-level config so tests can run with their own secret.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner builds a Signer from the configured secret key.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

// SessionClaims binds a server-side session id to an admin.
type SessionClaims struct {
	SessionID string `json:"sid"`
	AdminID   uint   `json:"admin_id"`
	jwt.RegisteredClaims
}

// FlashMessage is one queued one-shot message.
type FlashMessage struct {
	Category string `json:"category"` // success | error | info | warning
	Message  string `json:"message"`
}

// FlashClaims carries the pending flash messages between a redirect and the next page.
type FlashClaims struct {
	Messages []FlashMessage `json:"messages"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token valid for ttl.
func (s *Signer) GenerateSessionToken(sessionID string, adminID uint, ttl time.Duration) (string, error) {
	now := s.now()
	claims := SessionClaims{
		SessionID: sessionID,
		AdminID:   adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subjectSession,
		},
	}
	return s.sign(claims)
}

// ParseSessionToken verifies signature, expiry and subject.
func (s *Signer) ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Subject != subjectSession || claims.SessionID == "" {
		return nil, ErrWrongSubject
	}
	return claims, nil
}

// GenerateFlashToken signs the pending flash messages. Flashes are short-lived: one minute is plenty
// for the redirect that follows.
func (s *Signer) GenerateFlashToken(messages []FlashMessage) (string, error) {
	now := s.now()
	claims := FlashClaims{
		Messages: messages,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subjectFlash,
		},
	}
	return s.sign(claims)
}

// ParseFlashToken verifies a flash token and returns its messages.
func (s *Signer) ParseFlashToken(tokenString string) ([]FlashMessage, error) {
	claims := &FlashClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Subject != subjectFlash {
		return nil, ErrWrongSubject
	}
	return claims.Messages, nil
}

func (s *Signer) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Signer) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrSignatureInvalid
	}
	return nil
}
