package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contractflow/review-api/internal/core/ports"
)

// ClauseHandler handles clause reference data CRUD.
type ClauseHandler struct {
	service ports.ClauseService
}

func NewClauseHandler(service ports.ClauseService) *ClauseHandler {
	return &ClauseHandler{service: service}
}

// List handles GET /api/clauses.
//
// @Summary      List clauses
// @Tags         clauses
// @Produce      json
// @Param        domain  query  string  false  "Legal domain filter"
// @Success      200  {array}  domain.Clause
// @Router       /api/clauses [get]
func (h *ClauseHandler) List(c echo.Context) error {
	clauses, err := h.service.List(c.Request().Context(), c.QueryParam("domain"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clauses)
}

// Create handles POST /api/clauses.
//
// @Summary      Create a clause
// @Tags         clauses
// @Accept       json
// @Produce      json
// @Param        body  body      clauseRequest  true  "Clause fields"
// @Success      201   {object}  domain.Clause
// @Failure      400   {object}  errorResponse
// @Router       /api/clauses [post]
func (h *ClauseHandler) Create(c echo.Context) error {
	var req clauseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clause, err := h.service.Create(c.Request().Context(), ports.ClauseInput{
		Title:       req.Title,
		Description: req.Description,
		Domain:      req.Domain,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, clause)
}

// Update handles PUT /api/clauses/:id.
//
// @Summary      Update a clause
// @Tags         clauses
// @Accept       json
// @Produce      json
// @Param        id    path  string         true  "Clause id"
// @Param        body  body  clauseRequest  true  "Clause fields"
// @Success      200  {object}  domain.Clause
// @Failure      404  {object}  errorResponse
// @Router       /api/clauses/{id} [put]
func (h *ClauseHandler) Update(c echo.Context) error {
	var req clauseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clause, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.ClauseInput{
		Title:       req.Title,
		Description: req.Description,
		Domain:      req.Domain,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clause)
}

// Delete handles DELETE /api/clauses/:id. A missing id yields 404, not a
// generic error.
//
// @Summary      Delete a clause
// @Tags         clauses
// @Produce      json
// @Param        id  path  string  true  "Clause id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/clauses/{id} [delete]
func (h *ClauseHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Clause deleted successfully"})
}
