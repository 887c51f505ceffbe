package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/forohub/forum-api/internal/api/metrics"
	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
)

// IdentityKey is the echo context key under which Authenticate stores the
// request's domain.Identity.
const IdentityKey = "identity"

// Authenticate is the authentication gate. It looks for a bearer token,
// verifies it, and resolves the subject against the user store. The role is
// taken from the stored record, not from the token's claims, so a role change
// takes effect on the next request rather than at token expiry.
//
// The gate fails open to anonymous: a missing, malformed, invalid or expired
// token leaves the request unauthenticated and the request proceeds. Routes
// that need an identity reject later via RequireIdentity.
func Authenticate(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return next(c)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
				default:
					metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				}
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("unknown_subject").Inc()
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(IdentityKey, domain.Identity{Username: user.Username, Role: user.Role})
			return next(c)
		}
	}
}

// RequireIdentity rejects anonymous requests with 401. It must run after
// Authenticate.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(IdentityKey).(domain.Identity); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
