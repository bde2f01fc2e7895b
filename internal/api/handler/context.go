package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

// actor is the authenticated identity extracted from context, as injected
// by the Auth middleware.
type actor struct {
	SessionID string
	UserID    string
	Email     string
	Role      domain.Role
}

// ctxActor extracts the authenticated actor and fast-fails when the Auth
// middleware did not run: a handler reached without claims is a wiring bug,
// answered with 401 rather than a panic downstream.
func ctxActor(c echo.Context) (actor, error) {
	email, _ := c.Get("email").(string)
	if email == "" {
		return actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	sid, _ := c.Get("sid").(string)
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)

	return actor{
		SessionID: sid,
		UserID:    userID,
		Email:     email,
		Role:      domain.ParseRole(role),
	}, nil
}
