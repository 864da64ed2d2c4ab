package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/leadbook/crm-api/internal/core/domain"
)

// currentUser returns the identity attached by the Auth middleware. Its
// absence means the route was mounted without the middleware, which is
// reported as unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := c.Get("user").(*domain.User)
	if !ok || u == nil || u.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u, nil
}
