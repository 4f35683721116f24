package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

// AuthHandler handles token issuance and user creation.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token handles POST /token — OAuth2-password-style form login.
//
// @Summary      Exchange credentials for a bearer token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "User email"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  errorResponse
// @Router       /token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	email := c.FormValue("username")
	password := c.FormValue("password")

	token, err := h.authService.Login(c.Request().Context(), email, password)
	if err != nil {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// CreateUser handles POST /users/.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/ [post]
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	if _, err := h.authService.CreateUser(c.Request().Context(), req.Email, req.Password, role); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "User created successfully"})
}
