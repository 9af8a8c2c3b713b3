package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/markaai/booking-gateway/internal/api/metrics"
	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=owner client"`
}

type sessionResponse struct {
	Token     string           `json:"token,omitempty"`
	State     string           `json:"state"`
	User      *domain.Identity `json:"user,omitempty"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	resp := sessionResponse{
		Token: s.Token,
		State: string(s.State),
		User:  s.Identity,
	}
	if !s.ExpiresAt.IsZero() {
		expiresAt := s.ExpiresAt
		resp.ExpiresAt = &expiresAt
	}
	return resp
}

// Login authenticates against the upstream auth service and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Register creates a new account upstream and opens a session for it.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	sess, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, toSessionResponse(sess))
}

// Me resolves the identity behind the caller's session. A session whose
// credential no longer resolves comes back anonymous with its stored state
// cleared; the 401 here is the signal to re-authenticate, not an error leak.
//
// @Summary      Resolve the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *SessionHandler) Me(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	sess, err := h.sessions.Resume(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}

	if sess.State != domain.StateAuthenticated {
		metrics.SessionResumesTotal.WithLabelValues("anonymous").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	}

	metrics.SessionResumesTotal.WithLabelValues("authenticated").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Logout destroys the caller's session.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
