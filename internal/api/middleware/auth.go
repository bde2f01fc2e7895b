package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/core/ports"
)

// Sessions is the slice of the session service the middleware needs.
type Sessions interface {
	Touch(sessionID string) bool
	Lookup(sessionID string) (*ports.SessionInfo, bool)
}

// Auth validates the JWT, touches the session's idle clock, and injects the
// authenticated identity into context. Every authenticated request counts as
// activity; a request on an expired session gets 401 regardless of the
// token's own validity.
func Auth(jwtSecret string, sessions Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session id")
			}
			if !sessions.Touch(sid) {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			info, ok := sessions.Lookup(sid)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set("sid", sid)
			c.Set("user_id", info.Identity.ID)
			c.Set("email", info.Identity.Email)
			c.Set("role", string(info.Identity.Role))

			return next(c)
		}
	}
}
