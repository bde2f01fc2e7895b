package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/api/metrics"
	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// AuthHandler handles sign-in, sign-out, the session heartbeat, and the
// role-scoped menu.
type AuthHandler struct {
	sessions  ports.SessionService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(sessions ports.SessionService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

type changePasswordRequest struct {
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type sessionResponse struct {
	User             domain.Identity `json:"user"`
	SecondsRemaining int             `json:"seconds_remaining"`
	Warning          string          `json:"warning"`
}

// Login authenticates a credential and opens a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Sign-in credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	info, err := h.sessions.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues("success").Inc()

	token, err := h.signToken(info.SessionID)
	if err != nil {
		h.sessions.SignOut(info.SessionID)
		return err
	}
	// The gauge tracks the manager's own count so a failed token signing
	// or a background expiry never leaves it drifted.
	metrics.ActiveSessions.Set(float64(h.sessions.Count()))

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: info.Identity})
}

// Logout closes the session. Always succeeds.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	act, err := ctxActor(c)
	if err != nil {
		return err
	}

	h.sessions.SignOut(act.SessionID)
	metrics.ActiveSessions.Set(float64(h.sessions.Count()))
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword replaces the caller's password. The new password takes
// effect on the next sign-in; the current session stays open.
//
// @Summary      Change own password
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "New password, entered twice"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /v1/auth/password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	act, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.ChangePassword(c.Request().Context(), act.UserID, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the idle clock of the caller's session. The front end
// polls this to drive the countdown and its colour thresholds.
//
// @Summary      Session heartbeat
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	act, err := ctxActor(c)
	if err != nil {
		return err
	}

	remaining := h.sessions.TimeRemaining(act.SessionID)
	warning := "normal"
	switch {
	case remaining <= 60:
		warning = "critical"
	case remaining <= 120:
		warning = "warning"
	}

	return c.JSON(http.StatusOK, sessionResponse{
		User:             domain.Identity{ID: act.UserID, Email: act.Email, Role: act.Role},
		SecondsRemaining: remaining,
		Warning:          warning,
	})
}

// Menu returns the navigation sections the caller's role may see.
//
// @Summary      Role-scoped menu
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.MenuSection
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/menu [get]
func (h *AuthHandler) Menu(c echo.Context) error {
	act, err := ctxActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.MenuFor(act.Role))
}

// signToken issues the HS256 JWT carrying the session id. The sessions own
// the real lifetime; the token expiry is only an upper bound.
func (h *AuthHandler) signToken(sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(h.tokenTTL).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}
