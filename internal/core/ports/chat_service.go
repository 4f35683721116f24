package ports

import "context"

// ChatInput is a retrieval-augmented chat query scoped to one document.
type ChatInput struct {
	Query      string
	DocumentID string
	Filetype   string // informational, defaults to "contract"
	TopK       int    // number of chunks to retrieve, defaults to 3
}

// RetrievedChunk is a single vector-search hit forwarded to the LLM.
type RetrievedChunk struct {
	ID      string         `json:"id"`
	Score   float32        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// Embedder turns text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorSearcher performs a nearest-neighbour search scoped to one source
// file via a payload filter.
type VectorSearcher interface {
	Search(ctx context.Context, vector []float32, filename string, topK int) ([]RetrievedChunk, error)
}

// Completer wraps the LLM completion API.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Stream invokes emit once per generated token. It returns when the
	// upstream stream ends, emit fails, or ctx is cancelled.
	Stream(ctx context.Context, systemPrompt, userPrompt string, emit func(token string) error) error
}

// AnswerCache stores recent batched chat answers keyed by (document, query).
type AnswerCache interface {
	Get(ctx context.Context, documentID, query string) (string, bool, error)
	Set(ctx context.Context, documentID, query, answer string) error
}

// ChatService orchestrates embed → retrieve → complete.
type ChatService interface {
	Ask(ctx context.Context, in ChatInput) (string, error)
	AskStream(ctx context.Context, in ChatInput, emit func(token string) error) error
}
