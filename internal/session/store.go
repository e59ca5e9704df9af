// Package session keeps admin login sessions and one-shot flash messages.
//
// The browser holds a signed cookie naming a session id; the store maps that id to an admin.
// Logging out deletes the store entry, so a copied cookie stops working immediately.
package session

import (
	"context"
	"time"
)

// Store maps session ids to admin ids.
type Store interface {
	// Save records sessionID -> adminID for ttl.
	Save(ctx context.Context, sessionID string, adminID uint, ttl time.Duration) error
	// Get returns ok=false when the session is unknown or expired.
	Get(ctx context.Context, sessionID string) (adminID uint, ok bool, err error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, sessionID string) error
}
