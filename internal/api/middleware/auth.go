package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
	"github.com/leadbook/crm-api/pkg/logger"
)

const tokenCookie = "token"

// Auth resolves the caller's identity from a bearer token, falling back to
// the token cookie, and stores the user under "user" in the echo context.
// Requests without a valid identity fail with domain.ErrUnauthenticated.
func Auth(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFrom(c)
			if token == "" {
				return domain.ErrUnauthenticated
			}

			req := c.Request()
			user, err := resolver.Resolve(req.Context(), token)
			if err != nil {
				return err
			}

			c.Set("user", user)

			log := logger.FromContext(req.Context()).With().Str("user_id", user.ID).Logger()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context(), log)))

			return next(c)
		}
	}
}

func tokenFrom(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if ck, err := c.Cookie(tokenCookie); err == nil {
		return ck.Value
	}
	return ""
}
