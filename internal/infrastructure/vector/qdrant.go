// Package vector implements ports.VectorSearcher on Qdrant.
package vector

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

// Config captures the Qdrant connection settings.
type Config struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
}

// Searcher performs filtered nearest-neighbour queries against one collection.
type Searcher struct {
	client     *qdrant.Client
	collection string
	log        zerolog.Logger
}

// NewSearcher establishes a Qdrant client for the configured collection.
func NewSearcher(cfg Config, log zerolog.Logger) (*Searcher, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant connect: %w", err)
	}
	return &Searcher{client: client, collection: cfg.Collection, log: log}, nil
}

// Search returns the topK nearest chunks whose payload filename matches.
func (s *Searcher) Search(ctx context.Context, vec []float32, filename string, topK int) ([]ports.RetrievedChunk, error) {
	limit := uint64(topK)

	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vec...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("filename", filename),
			},
		},
		Limit:       &limit,
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		s.log.Error().Err(err).Str("filename", filename).Msg("vector search failed")
		return nil, fmt.Errorf("%w: vector search", domain.ErrUpstreamUnavailable)
	}

	chunks := make([]ports.RetrievedChunk, 0, len(points))
	for _, p := range points {
		chunks = append(chunks, ports.RetrievedChunk{
			ID:      pointID(p.GetId()),
			Score:   p.GetScore(),
			Payload: payloadToMap(p.GetPayload()),
		})
	}
	return chunks, nil
}

// Close releases the underlying gRPC connection.
func (s *Searcher) Close() error {
	return s.client.Close()
}

// Healthy reports whether the Qdrant endpoint answers a health probe.
func (s *Searcher) Healthy(ctx context.Context) error {
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health: %w", err)
	}
	return nil
}

func pointID(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if uuid := id.GetUuid(); uuid != "" {
		return uuid
	}
	return fmt.Sprintf("%d", id.GetNum())
}

func payloadToMap(payload map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = valueToAny(v)
	}
	return out
}

// valueToAny flattens a qdrant payload value into plain JSON-friendly types.
func valueToAny(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_ListValue:
		items := kind.ListValue.GetValues()
		list := make([]any, 0, len(items))
		for _, item := range items {
			list = append(list, valueToAny(item))
		}
		return list
	case *qdrant.Value_StructValue:
		return payloadToMap(kind.StructValue.GetFields())
	default:
		return nil
	}
}
