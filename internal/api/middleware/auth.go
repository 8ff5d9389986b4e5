package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// Sessions is the subset of the session registry the middleware needs.
type Sessions interface {
	UserByToken(ctx context.Context, token string) (*domain.User, bool)
}

// Auth validates the bearer session token against the registry and injects
// the token and the user's identity into the request context.
func Auth(sessions Sessions) echo.MiddlewareFunc {
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

			token := parts[1]
			user, ok := sessions.UserByToken(c.Request().Context(), token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			c.Set("token", token)
			c.Set("username", user.Username)
			c.Set("role", user.Role)

			return next(c)
		}
	}
}
