package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leadbook/crm-api/internal/api/metrics"
	"github.com/leadbook/crm-api/internal/core/ports"
)

const tokenCookie = "token"

// CookieOptions controls the session cookie set on register and login.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieOptions
	now         func() time.Time
}

func NewAuthHandler(authService ports.AuthService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, now: time.Now}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := h.authService.Register(c.Request().Context(), req)
	metrics.AuthAttemptsTotal.WithLabelValues("register", metrics.AuthResult(err)).Inc()
	if err != nil {
		return err
	}

	return h.sendSession(c, http.StatusCreated, sess)
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.LoginInput  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := h.authService.Login(c.Request().Context(), req)
	metrics.AuthAttemptsTotal.WithLabelValues("login", metrics.AuthResult(err)).Inc()
	if err != nil {
		return err
	}

	return h.sendSession(c, http.StatusOK, sess)
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=userResponse}
// @Failure      401  {object}  envelope
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), u.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{Success: true, Data: toUserResponse(user, true)})
}

// sendSession writes the token both as an http-only cookie and in the body.
func (h *AuthHandler) sendSession(c echo.Context, status int, sess *ports.Session) error {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  h.now().Add(h.cookie.TTL),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
	})

	return c.JSON(status, authResponse{
		Success: true,
		Token:   sess.Token,
		User:    toUserResponse(sess.User, false),
	})
}
