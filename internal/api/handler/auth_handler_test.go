package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/logicem/callcenter-api/internal/api/metrics"
	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

type stubSessionService struct {
	signInFn  func(ctx context.Context, email, password string) (*ports.SessionInfo, error)
	changeFn  func(ctx context.Context, userID, newPassword string) error
	signedOut []string
	remaining int
	count     int
}

func (s *stubSessionService) SignIn(ctx context.Context, email, password string) (*ports.SessionInfo, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubSessionService) SignOut(sessionID string) {
	s.signedOut = append(s.signedOut, sessionID)
}

func (s *stubSessionService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if s.changeFn != nil {
		return s.changeFn(ctx, userID, newPassword)
	}
	return nil
}

func (s *stubSessionService) Touch(string) bool { return true }

func (s *stubSessionService) TimeRemaining(string) int { return s.remaining }

func (s *stubSessionService) Lookup(string) (*ports.SessionInfo, bool) { return nil, false }

func (s *stubSessionService) Count() int { return s.count }

func newAuthEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func authedContext(e *echo.Echo, method, path string, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("sid", "sess-1")
	c.Set("user_id", "demo-admin")
	c.Set("email", "admin@logicem.com")
	c.Set("role", "admin")
	return c, rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newAuthEcho()
	stub := &stubSessionService{
		signInFn: func(ctx context.Context, email, password string) (*ports.SessionInfo, error) {
			if email != "admin@logicem.com" || password != "LogicemAdmin2024!" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.SessionInfo{
				SessionID: "sess-1",
				Identity:  domain.Identity{ID: "demo-admin", Email: email, Role: domain.RoleAdmin},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, "secret", 24*time.Hour)

	body := `{"email":"admin@logicem.com","password":"LogicemAdmin2024!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	tokenStr, _ := resp["token"].(string)
	if tokenStr == "" {
		t.Fatalf("expected token in response")
	}
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if claims["sid"] != "sess-1" {
		t.Fatalf("token must carry the session id, got %v", claims["sid"])
	}

	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "admin@logicem.com" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newAuthEcho()
	stub := &stubSessionService{
		signInFn: func(ctx context.Context, email, password string) (*ports.SessionInfo, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, "secret", 24*time.Hour)

	body := `{"email":"admin@logicem.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	if err == nil {
		t.Fatalf("expected error to propagate to the error handler")
	}
	if !strings.Contains(err.Error(), domain.ErrInvalidCredentials.Error()) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newAuthEcho()
	stub := &stubSessionService{
		signInFn: func(ctx context.Context, email, password string) (*ports.SessionInfo, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, "secret", 24*time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingEmail(t *testing.T) {
	e := newAuthEcho()
	handler := NewAuthHandler(&stubSessionService{
		signInFn: func(ctx context.Context, email, password string) (*ports.SessionInfo, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}, "secret", 24*time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newAuthEcho()
	stub := &stubSessionService{}
	handler := NewAuthHandler(stub, "secret", 24*time.Hour)

	c, rec := authedContext(e, http.MethodPost, "/auth/logout", "")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(stub.signedOut) != 1 || stub.signedOut[0] != "sess-1" {
		t.Fatalf("session not signed out: %v", stub.signedOut)
	}
}

func TestAuthHandler_SessionGaugeFollowsManagerCount(t *testing.T) {
	e := newAuthEcho()
	stub := &stubSessionService{
		count: 3,
		signInFn: func(ctx context.Context, email, password string) (*ports.SessionInfo, error) {
			if password == "wrong" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.SessionInfo{
				SessionID: "sess-1",
				Identity:  domain.Identity{ID: "demo-admin", Email: email, Role: domain.RoleAdmin},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, "secret", 24*time.Hour)

	body := `{"email":"admin@logicem.com","password":"LogicemAdmin2024!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := handler.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got := testutil.ToFloat64(metrics.ActiveSessions); got != 3 {
		t.Fatalf("expected gauge to match manager count 3, got %v", got)
	}

	// A rejected sign-in must leave the gauge alone.
	stub.count = 99
	body = `{"email":"admin@logicem.com","password":"wrong"}`
	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if err := handler.Login(e.NewContext(req, httptest.NewRecorder())); err == nil {
		t.Fatalf("expected sign-in rejection")
	}
	if got := testutil.ToFloat64(metrics.ActiveSessions); got != 3 {
		t.Fatalf("gauge moved on failed sign-in: %v", got)
	}

	stub.count = 2
	c, _ := authedContext(e, http.MethodPost, "/auth/logout", "")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if got := testutil.ToFloat64(metrics.ActiveSessions); got != 2 {
		t.Fatalf("expected gauge to match manager count 2 after logout, got %v", got)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	e := newAuthEcho()
	var gotUser, gotPassword string
	stub := &stubSessionService{
		changeFn: func(ctx context.Context, userID, newPassword string) error {
			gotUser, gotPassword = userID, newPassword
			return nil
		},
	}
	handler := NewAuthHandler(stub, "secret", 24*time.Hour)

	body := `{"new_password":"NuevaClave2024!","confirm_password":"NuevaClave2024!"}`
	c, rec := authedContext(e, http.MethodPost, "/auth/change-password", body)
	if err := handler.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotUser != "demo-admin" || gotPassword != "NuevaClave2024!" {
		t.Fatalf("unexpected change: %s %s", gotUser, gotPassword)
	}
}

func TestAuthHandler_ChangePassword_TooShort(t *testing.T) {
	e := newAuthEcho()
	stub := &stubSessionService{
		changeFn: func(ctx context.Context, userID, newPassword string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub, "secret", 24*time.Hour)

	body := `{"new_password":"corta","confirm_password":"corta"}`
	c, rec := authedContext(e, http.MethodPost, "/auth/change-password", body)
	if err := handler.ChangePassword(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword_Mismatch(t *testing.T) {
	e := newAuthEcho()
	stub := &stubSessionService{
		changeFn: func(ctx context.Context, userID, newPassword string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub, "secret", 24*time.Hour)

	body := `{"new_password":"NuevaClave2024!","confirm_password":"OtraClave2024!"}`
	c, rec := authedContext(e, http.MethodPost, "/auth/change-password", body)
	if err := handler.ChangePassword(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Session_WarningLevels(t *testing.T) {
	cases := []struct {
		remaining int
		warning   string
	}{
		{300, "normal"},
		{121, "normal"},
		{120, "warning"},
		{61, "warning"},
		{60, "critical"},
		{0, "critical"},
	}

	e := newAuthEcho()
	for _, tc := range cases {
		handler := NewAuthHandler(&stubSessionService{remaining: tc.remaining}, "secret", 24*time.Hour)

		c, rec := authedContext(e, http.MethodGet, "/auth/session", "")
		if err := handler.Session(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}

		var resp sessionResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.SecondsRemaining != tc.remaining || resp.Warning != tc.warning {
			t.Fatalf("remaining %d: got %+v, expected warning %q", tc.remaining, resp, tc.warning)
		}
	}
}

func TestAuthHandler_Menu_ByRole(t *testing.T) {
	e := newAuthEcho()
	handler := NewAuthHandler(&stubSessionService{}, "secret", 24*time.Hour)

	c, rec := authedContext(e, http.MethodGet, "/auth/menu", "")
	c.Set("role", "agent")
	if err := handler.Menu(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var sections []domain.MenuSection
	if err := json.Unmarshal(rec.Body.Bytes(), &sections); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("agents see the transactional section only, got %d sections", len(sections))
	}
}
