package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// DefaultSessionTimeout is the idle window after which a session is forced
// out. Five minutes, matching the back office's historical behaviour.
const DefaultSessionTimeout = 300 * time.Second

// sweepInterval is the resolution of the idle check. Expiry jitter of up to
// one interval is accepted.
const sweepInterval = time.Second

// SessionManager authenticates credential pairs and owns every live session:
// one entry per signed-in token, each with its own idle clock. A background
// sweep at 1 Hz forces out sessions whose clock ran down and fires the
// expiry notification exactly once per session.
//
// Activity signals and the sweep contend on one mutex, so a signal that wins
// the lock inside the same tick is applied before the expiry decision; a
// signal arriving after the sweep took the lock loses that tick.
type SessionManager struct {
	creds   ports.CredentialRepository
	log     zerolog.Logger
	timeout time.Duration

	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time

	onExpired func(domain.Identity)

	stopCh chan struct{}
	doneCh chan struct{}
}

type session struct {
	identity     domain.Identity
	lastActivity time.Time
}

// NewSessionManager creates a SessionManager. If timeout <= 0,
// DefaultSessionTimeout is used. Call Start to launch the expiry sweep and
// Close to stop it.
func NewSessionManager(creds ports.CredentialRepository, timeout time.Duration, log zerolog.Logger) *SessionManager {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &SessionManager{
		creds:    creds,
		log:      log,
		timeout:  timeout,
		sessions: make(map[string]*session),
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// OnExpired registers the notification fired once per expired session. Must
// be set before Start.
func (m *SessionManager) OnExpired(fn func(domain.Identity)) {
	m.onExpired = fn
}

// Start launches the background expiry sweep. Non-blocking.
func (m *SessionManager) Start() {
	go m.run()
	m.log.Info().Dur("timeout", m.timeout).Msg("session expiry sweep started")
}

// Close stops the sweep and blocks until it has finished. Sessions created
// after Close are never expired, so Close ends the manager's useful life.
func (m *SessionManager) Close() {
	close(m.stopCh)
	<-m.doneCh
	m.log.Info().Msg("session expiry sweep stopped")
}

func (m *SessionManager) run() {
	defer close(m.doneCh)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stopCh:
			return
		}
	}
}

// SignIn matches email and password exactly (case-sensitive) against the
// credential store. On success a new session with a full idle clock is
// created; the caller's existing sessions are untouched. Unknown email and
// wrong password are indistinguishable to the caller.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*ports.SessionInfo, error) {
	cred, err := m.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if cred.Password != password {
		return nil, domain.ErrInvalidCredentials
	}

	identity := domain.Identity{
		ID:    cred.ID,
		Email: cred.Email,
		Role:  domain.ParseRole(string(cred.Role)),
	}

	sid := ulid.Make().String()
	m.mu.Lock()
	m.sessions[sid] = &session{identity: identity, lastActivity: m.now()}
	m.mu.Unlock()

	m.log.Info().Str("email", identity.Email).Str("role", string(identity.Role)).Msg("sign-in")

	return &ports.SessionInfo{SessionID: sid, Identity: identity}, nil
}

// SignOut removes the session and stops its clock. Idempotent: signing out
// an unknown or already-expired session does nothing.
func (m *SessionManager) SignOut(sessionID string) {
	m.mu.Lock()
	_, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if ok {
		m.log.Info().Msg("sign-out")
	}
}

// ChangePassword rewrites the credential's password unconditionally. There
// is no current-password check here; minimum length is a caller-side rule.
// No session transitions: existing sessions stay signed in.
func (m *SessionManager) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if err := m.creds.UpdatePassword(ctx, userID, newPassword); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Touch resets the session's idle clock and reports whether the session is
// still alive.
func (m *SessionManager) Touch(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if ok {
		s.lastActivity = m.now()
	}
	return ok
}

// TimeRemaining returns whole seconds until idle expiry, clamped >= 0. An
// unknown session reports 0.
func (m *SessionManager) TimeRemaining(sessionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return 0
	}
	remaining := m.timeout - m.now().Sub(s.lastActivity)
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}

// Lookup returns the session's identity without touching its clock.
func (m *SessionManager) Lookup(sessionID string) (*ports.SessionInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return &ports.SessionInfo{SessionID: sessionID, Identity: s.identity}, true
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweep removes every session whose idle clock ran down and fires the expiry
// notification for each, exactly once: removal and notification happen in
// the same pass, so a session can never expire twice.
func (m *SessionManager) sweep() {
	now := m.now()

	var expired []domain.Identity
	m.mu.Lock()
	for id, s := range m.sessions {
		if now.Sub(s.lastActivity) >= m.timeout {
			expired = append(expired, s.identity)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, identity := range expired {
		m.log.Info().Str("email", identity.Email).Msg("session expired by inactivity")
		if m.onExpired != nil {
			m.onExpired(identity)
		}
	}
}
