package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/markaai/booking-gateway/internal/core/ports"
)

// Session parses the gateway session token and attaches session facts to the
// request context: "session_id" whenever the token is valid, plus "role" and
// "credential" when the session is still live in storage.
//
// It never rejects a request itself; unauthenticated requests pass through
// with an empty context and the access gate decides what happens to them.
// Checking storage on every request is what makes logout immediate: once the
// credential is gone, an otherwise valid token no longer authenticates.
func Session(jwtSecret string, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return next(c)
			}

			sessionID, _ := claims["sid"].(string)
			if sessionID == "" {
				return next(c)
			}
			c.Set("session_id", sessionID)

			credential, err := sessions.Credential(c.Request().Context(), sessionID)
			if err != nil {
				// Logged out or expired: the token alone proves nothing.
				return next(c)
			}
			c.Set("role", claims["role"])
			c.Set("credential", credential)

			return next(c)
		}
	}
}
