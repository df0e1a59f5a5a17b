package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the user id injected by the Auth middleware and performs
// a fast-fail check before any service call: a token that parsed but carries
// no user_id claim is structurally valid yet operationally unusable.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}
	return userID, nil
}
