package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

const (
	defaultTopK     = 3
	defaultFiletype = "contract"
)

// systemPrompt instructs the model to answer from retrieved chunks without
// exposing anything about the backing store.
const systemPrompt = `You are a helpful, professional legal document analyzer assistant. You will be provided with data in a JSON array format retrieved from a document index, together with a user query.
Your task is to analyze the data and provide a detailed and structured response.
The data can be from an invoice, contract, purchase order, or any other legal document.
Use proper formatting and structure in your response.
If you face a conflict while deciding, ask for clarification and state the conflict you are facing.
When answering questions involving tables, consider the column names and data types, and note that some cells can be empty.
Do not cite the source of the data in your response or give any indication of the backend data.
As this is a client-facing application, do not include any internal information about the database or the data source.`

// ChatService orchestrates the retrieval-augmented chat path:
// cache lookup → embed query → filtered vector search → completion.
type ChatService struct {
	docs     ports.DocumentRepository
	embedder ports.Embedder
	searcher ports.VectorSearcher
	llm      ports.Completer
	cache    ports.AnswerCache // optional
	log      zerolog.Logger
}

func NewChatService(
	docs ports.DocumentRepository,
	embedder ports.Embedder,
	searcher ports.VectorSearcher,
	llm ports.Completer,
	cache ports.AnswerCache,
	log zerolog.Logger,
) *ChatService {
	return &ChatService{docs: docs, embedder: embedder, searcher: searcher, llm: llm, cache: cache, log: log}
}

// Ask answers a query in one shot. Recent answers are served from the cache
// without touching the embedding, search, or completion services.
func (s *ChatService) Ask(ctx context.Context, in ports.ChatInput) (string, error) {
	in = withDefaults(in)
	if in.Query == "" || in.DocumentID == "" {
		return "", domain.ErrValidation
	}

	if s.cache != nil {
		if answer, ok, err := s.cache.Get(ctx, in.DocumentID, in.Query); err != nil {
			s.log.Warn().Err(err).Msg("answer cache lookup failed, querying upstream")
		} else if ok {
			s.log.Debug().Str("document_id", in.DocumentID).Msg("chat answer served from cache")
			return answer, nil
		}
	}

	userPrompt, err := s.retrieve(ctx, in)
	if err != nil {
		return "", err
	}

	answer, err := s.llm.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, in.DocumentID, in.Query, answer); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache chat answer")
		}
	}

	return answer, nil
}

// AskStream answers a query token by token via emit. Streamed answers are
// not cached.
func (s *ChatService) AskStream(ctx context.Context, in ports.ChatInput, emit func(token string) error) error {
	in = withDefaults(in)
	if in.Query == "" || in.DocumentID == "" {
		return domain.ErrValidation
	}

	userPrompt, err := s.retrieve(ctx, in)
	if err != nil {
		return err
	}

	return s.llm.Stream(ctx, systemPrompt, userPrompt, emit)
}

// retrieve resolves the document's index filename, embeds the query, runs the
// filtered vector search and renders the user prompt.
func (s *ChatService) retrieve(ctx context.Context, in ports.ChatInput) (string, error) {
	doc, err := s.docs.FindByID(ctx, in.DocumentID)
	if err != nil {
		return "", err
	}

	// The vector index stores converted documents under their .docx name.
	filename := strings.ReplaceAll(doc.Title, ".sfdt", ".docx")

	vector, err := s.embedder.Embed(ctx, in.Query)
	if err != nil {
		return "", err
	}

	chunks, err := s.searcher.Search(ctx, vector, filename, in.TopK)
	if err != nil {
		return "", err
	}

	s.log.Debug().
		Str("document_id", in.DocumentID).
		Str("filename", filename).
		Int("chunks", len(chunks)).
		Msg("retrieval complete")

	data, err := json.Marshal(chunks)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Here is the data from the index:\n%s\nHere is the query:\n%s", data, in.Query), nil
}

func withDefaults(in ports.ChatInput) ports.ChatInput {
	if in.TopK <= 0 {
		in.TopK = defaultTopK
	}
	if in.Filetype == "" {
		in.Filetype = defaultFiletype
	}
	return in
}
