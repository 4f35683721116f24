package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

// DocumentHandler handles the review workflow endpoints.
type DocumentHandler struct {
	service ports.DocumentService
}

func NewDocumentHandler(service ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Create handles POST /documents/.
//
// @Summary      Create a new document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDocumentRequest  true  "Document details"
// @Success      201   {object}  domain.Document
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /documents/ [post]
func (h *DocumentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	doc, err := h.service.Create(c.Request().Context(), actor, ports.CreateDocumentInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, doc)
}

// List handles GET /documents/ — the caller's assigned documents, optionally
// filtered by status.
//
// @Summary      List documents assigned to the caller
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Status filter"
// @Success      200  {array}   domain.Document
// @Failure      400  {object}  errorResponse
// @Router       /documents/ [get]
func (h *DocumentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var status domain.DocumentStatus
	if raw := c.QueryParam("status"); raw != "" {
		status, err = domain.ParseStatus(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status filter")
		}
	}

	docs, err := h.service.List(c.Request().Context(), actor, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

// Get handles GET /documents/:id. The first authorized read of a new or
// pending document moves it to in_progress.
//
// @Summary      Get a document by id
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Document id"
// @Success      200  {object}  domain.Document
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /documents/{id} [get]
func (h *DocumentHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	doc, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Update handles PUT /documents/:id — the workflow mutation endpoint.
//
// @Summary      Update a document through the review workflow
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Document id"
// @Param        body  body  updateDocumentRequest  true  "Mutation payload"
// @Success      200  {object}  domain.Document
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /documents/{id} [put]
func (h *DocumentHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateDocumentInput{
		Content:        req.Content,
		Notes:          req.Notes,
		ChangesSummary: req.ChangesSummary,
	}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
		}
		in.Status = &status
	}

	doc, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// AddApprovers handles POST /documents/:id/approvers. The body is a JSON
// array of user ids, all of which must belong to approver users.
//
// @Summary      Assign approvers to a document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string    true  "Document id"
// @Param        body  body  []string  true  "Approver user ids"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /documents/{id}/approvers [post]
func (h *DocumentHandler) AddApprovers(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var approverIDs []string
	if err := c.Bind(&approverIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(approverIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "approver list cannot be empty")
	}

	if err := h.service.AddApprovers(c.Request().Context(), actor, c.Param("id"), approverIDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Approvers added successfully"})
}

// SendEmail handles POST /api/documents/send-email.
//
// @Summary      E-mail a document to a recipient
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body      sendDocumentEmailRequest  true  "Delivery details"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/documents/send-email [post]
func (h *DocumentHandler) SendEmail(c echo.Context) error {
	var req sendDocumentEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SendByEmail(c.Request().Context(), ports.SendDocumentEmailInput{
		DocumentID:     req.DocumentID,
		RecipientEmail: req.RecipientEmail,
		Subject:        req.Subject,
		Message:        req.Message,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Email sent successfully"})
}
