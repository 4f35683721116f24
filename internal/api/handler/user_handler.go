package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contractflow/review-api/internal/core/ports"
)

// UserHandler handles user lookups. Responses never include the password
// hash (excluded at the domain type level).
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// GetByID handles GET /users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.authService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetByEmail handles GET /users/email/:email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Param        email  path  string  true  "User email"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /users/email/{email} [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.authService.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
