package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxToken extracts the session token injected by the Auth middleware and
// fast-fails before any service call: an empty token means the middleware
// did not run on this route.
func ctxToken(c echo.Context) (string, error) {
	token, _ := c.Get("token").(string)
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
	}
	return token, nil
}
