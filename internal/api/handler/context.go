package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiblog/blog-platform/internal/api/middleware"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty user ID
// proves the middleware ran on this route.
func ctxClaims(c echo.Context) (userID, email, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ = c.Get(middleware.CtxEmail).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	return userID, email, role, nil
}

// optionalClaims reads whatever claims OptionalAuth may have injected.
// Anonymous requests yield empty strings.
func optionalClaims(c echo.Context) (userID, role string) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	return userID, role
}
