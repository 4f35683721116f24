package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

type stubChatService struct {
	askFn    func(ctx context.Context, in ports.ChatInput) (string, error)
	streamFn func(ctx context.Context, in ports.ChatInput, emit func(string) error) error
}

func (s *stubChatService) Ask(ctx context.Context, in ports.ChatInput) (string, error) {
	return s.askFn(ctx, in)
}

func (s *stubChatService) AskStream(ctx context.Context, in ports.ChatInput, emit func(string) error) error {
	return s.streamFn(ctx, in, emit)
}

func TestChatHandler_Chat_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubChatService{
		askFn: func(ctx context.Context, in ports.ChatInput) (string, error) {
			if in.Query != "what is the term?" || in.DocumentID != "doc-1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "Two years.", nil
		},
	}
	handler := NewChatHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"query":"what is the term?","document_id":"doc-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Chat(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Two years.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestChatHandler_Chat_MissingQuery(t *testing.T) {
	e := newTestEcho()
	handler := NewChatHandler(&stubChatService{}, zerolog.Nop())

	body := strings.NewReader(`{"document_id":"doc-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Chat(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestChatHandler_Stream_FramesTokensAsSSE(t *testing.T) {
	e := newTestEcho()
	stub := &stubChatService{
		streamFn: func(ctx context.Context, in ports.ChatInput, emit func(string) error) error {
			for _, tok := range []string{"The ", "term ", "is two years."} {
				if err := emit(tok); err != nil {
					return err
				}
			}
			return nil
		},
	}
	handler := NewChatHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"query":"term?","document_id":"doc-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/stream", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Stream(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != "text/event-stream" {
		t.Fatalf("expected SSE content type, got %q", got)
	}
	want := "data: The \n\ndata: term \n\ndata: is two years.\n\n"
	if rec.Body.String() != want {
		t.Fatalf("unexpected framing:\n%q\nwant:\n%q", rec.Body.String(), want)
	}
}

func TestChatHandler_Stream_ErrorBeforeFirstTokenPropagates(t *testing.T) {
	e := newTestEcho()
	stub := &stubChatService{
		streamFn: func(ctx context.Context, in ports.ChatInput, emit func(string) error) error {
			return domain.ErrDocumentNotFound
		},
	}
	handler := NewChatHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"query":"term?","document_id":"ghost"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/stream", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Stream(c); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestChatHandler_Stream_ErrorMidStreamEndsQuietly(t *testing.T) {
	e := newTestEcho()
	stub := &stubChatService{
		streamFn: func(ctx context.Context, in ports.ChatInput, emit func(string) error) error {
			if err := emit("partial"); err != nil {
				return err
			}
			return errors.New("upstream hiccup")
		},
	}
	handler := NewChatHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"query":"term?","document_id":"doc-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/stream", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Headers are already committed, so the handler must not bubble the
	// error into a second response.
	if err := handler.Stream(c); err != nil {
		t.Fatalf("expected nil after committed stream, got %v", err)
	}
	if !strings.Contains(rec.Body.String(), "data: partial\n\n") {
		t.Fatalf("expected partial tokens kept, got %q", rec.Body.String())
	}
}
