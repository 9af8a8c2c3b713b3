package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSession extracts the session facts injected by the Session middleware
// and performs a fast-fail check before any service call:
//   - session_id must be non-empty (the token parsed).
//   - credential must be non-empty (the session is still live in storage);
//     a token that outlived its session is structurally valid but
//     operationally dead — reject with 401.
func ctxSession(c echo.Context) (sessionID, credential string, err error) {
	sessionID, _ = c.Get("session_id").(string)
	if sessionID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	credential, _ = c.Get("credential").(string)
	if credential == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	}

	return sessionID, credential, nil
}

// ctxSessionID extracts only the session id, for operations that remain
// meaningful after the credential is gone (logout, resume).
func ctxSessionID(c echo.Context) (string, error) {
	sessionID, _ := c.Get("session_id").(string)
	if sessionID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return sessionID, nil
}
