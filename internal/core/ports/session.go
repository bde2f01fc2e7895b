package ports

import (
	"context"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

// CredentialRepository defines persistence for sign-in credentials.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	Insert(ctx context.Context, cred *domain.Credential) error
	// UpdatePassword rewrites the password of the credential owned by
	// userID. A missing credential is not an error.
	UpdatePassword(ctx context.Context, userID, password string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// SessionInfo is the in-memory view of an authenticated session handed to
// the transport layer.
type SessionInfo struct {
	SessionID string
	Identity  domain.Identity
}

// SessionService owns the authenticated-identity lifecycle: credential
// matching, per-session idle clocks, and forced sign-out on expiry.
type SessionService interface {
	SignIn(ctx context.Context, email, password string) (*SessionInfo, error)
	// SignOut is idempotent; signing out an unknown session is a no-op.
	SignOut(sessionID string)
	ChangePassword(ctx context.Context, userID, newPassword string) error
	// Touch registers an activity signal, resetting the session's idle
	// clock. It reports whether the session is still alive.
	Touch(sessionID string) bool
	// TimeRemaining returns whole seconds until idle expiry, clamped >= 0.
	TimeRemaining(sessionID string) int
	Lookup(sessionID string) (*SessionInfo, bool)
	// Count returns the number of live sessions.
	Count() int
}
