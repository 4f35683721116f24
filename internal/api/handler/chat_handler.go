package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/api/metrics"
	"github.com/contractflow/review-api/internal/core/ports"
)

// ChatHandler handles the retrieval-augmented chat endpoints.
type ChatHandler struct {
	service ports.ChatService
	log     zerolog.Logger
}

func NewChatHandler(service ports.ChatService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{service: service, log: log}
}

// Chat handles POST /api/chat — batched question answering.
//
// @Summary      Ask a question about a document
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest  true  "Query"
// @Success      200  {object}  chatResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return err
	}

	start := time.Now()
	answer, err := h.service.Ask(c.Request().Context(), toChatInput(req))
	metrics.ChatRequestDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("batch", "error").Inc()
		return err
	}
	metrics.ChatRequestsTotal.WithLabelValues("batch", "ok").Inc()

	return c.JSON(http.StatusOK, chatResponse{Response: answer})
}

// Stream handles POST /api/chat/stream — the SSE variant. Each generated
// token is framed as "data: <token>\n\n"; the stream ends when the upstream
// completion finishes or the client disconnects.
//
// @Summary      Ask a question about a document, streamed
// @Tags         chat
// @Accept       json
// @Produce      text/event-stream
// @Param        body  body  chatRequest  true  "Query"
// @Success      200  {string}  string  "SSE token stream"
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/chat/stream [post]
func (h *ChatHandler) Stream(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return err
	}

	res := c.Response()
	started := false
	start := time.Now()

	emit := func(token string) error {
		if !started {
			res.Header().Set(echo.HeaderContentType, "text/event-stream")
			res.Header().Set("Cache-Control", "no-cache")
			res.Header().Set("Connection", "keep-alive")
			res.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := fmt.Fprintf(res, "data: %s\n\n", token); err != nil {
			return err
		}
		res.Flush()
		return nil
	}

	err = h.service.AskStream(c.Request().Context(), toChatInput(req), emit)
	metrics.ChatRequestDuration.WithLabelValues("stream").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("stream", "error").Inc()
		if !started {
			// Nothing written yet, the central handler can render the error.
			return err
		}
		h.log.Error().Err(err).Str("document_id", req.DocumentID).Msg("chat stream aborted")
		return nil
	}

	metrics.ChatRequestsTotal.WithLabelValues("stream", "ok").Inc()
	if !started {
		// Upstream produced no tokens; still commit an empty event stream.
		return emit("")
	}
	return nil
}

func (h *ChatHandler) bind(c echo.Context) (chatRequest, error) {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

func toChatInput(req chatRequest) ports.ChatInput {
	return ports.ChatInput{
		Query:      req.Query,
		DocumentID: req.DocumentID,
		Filetype:   req.Filetype,
		TopK:       req.TopK,
	}
}
