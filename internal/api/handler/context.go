package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the user id and a
// role from the closed enumeration must be present, proving the middleware
// ran and the token carries a usable identity.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	rawRole, _ := c.Get("role").(string)
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token carries unknown role")
	}

	return ports.Actor{ID: userID, Role: role}, nil
}
