package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forohub/forum-api/internal/api/middleware"
	"github.com/forohub/forum-api/internal/core/domain"
)

// currentIdentity extracts the identity injected by the Authenticate
// middleware. Protected routes are additionally guarded by RequireIdentity,
// so hitting the 401 here means a route was wired without that guard.
func currentIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return identity, nil
}
