package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: all three claims
// must be present, otherwise the token was minted without an identity
// and is operationally unusable.
func ctxClaims(c echo.Context) (userID, email, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	email, _ = c.Get("email").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || email == "" || role == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, email, role, nil
}
