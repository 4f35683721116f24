// Package ai wraps the OpenAI embedding and chat completion APIs behind the
// core ports. All upstream failures surface as domain.ErrUpstreamUnavailable
// so the HTTP layer never leaks raw provider error text.
package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/core/domain"
)

// Config captures the OpenAI settings.
type Config struct {
	APIKey         string
	EmbeddingModel string
	ChatModel      string
}

// Client implements ports.Embedder and ports.Completer.
type Client struct {
	api            *openai.Client
	embeddingModel string
	chatModel      string
	log            zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		api:            openai.NewClient(cfg.APIKey),
		embeddingModel: cfg.EmbeddingModel,
		chatModel:      cfg.ChatModel,
		log:            log,
	}
}

// Embed generates an embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		c.log.Error().Err(err).Msg("embedding request failed")
		return nil, fmt.Errorf("%w: embedding", domain.ErrUpstreamUnavailable)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: embedding response empty", domain.ErrUpstreamUnavailable)
	}
	return resp.Data[0].Embedding, nil
}

// Complete runs a single batched chat completion.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: messages(systemPrompt, userPrompt),
	})
	if err != nil {
		c.log.Error().Err(err).Msg("completion request failed")
		return "", fmt.Errorf("%w: completion", domain.ErrUpstreamUnavailable)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion response empty", domain.ErrUpstreamUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream runs a streaming chat completion, invoking emit per token. A
// cancelled ctx (client disconnect) aborts the upstream stream.
func (c *Client) Stream(ctx context.Context, systemPrompt, userPrompt string, emit func(token string) error) error {
	stream, err := c.api.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: messages(systemPrompt, userPrompt),
		Stream:   true,
	})
	if err != nil {
		c.log.Error().Err(err).Msg("completion stream request failed")
		return fmt.Errorf("%w: completion stream", domain.ErrUpstreamUnavailable)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error().Err(err).Msg("completion stream interrupted")
			return fmt.Errorf("%w: completion stream", domain.ErrUpstreamUnavailable)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if token := resp.Choices[0].Delta.Content; token != "" {
			if err := emit(token); err != nil {
				return err
			}
		}
	}
}

func messages(systemPrompt, userPrompt string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}
}
