package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const answerTTL = 15 * time.Minute

// AnswerCache stores recent batched chat answers in Redis.
// Key format: chat:<document_id>:<sha256(query)>
type AnswerCache struct {
	client *redis.Client
}

// NewAnswerCache creates an AnswerCache wrapping the given Redis client.
func NewAnswerCache(client *redis.Client) *AnswerCache {
	return &AnswerCache{client: client}
}

// Get returns the cached answer for (document, query), if any.
func (c *AnswerCache) Get(ctx context.Context, documentID, query string) (string, bool, error) {
	answer, err := c.client.Get(ctx, c.key(documentID, query)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("answer cache get: %w", err)
	}
	return answer, true, nil
}

// Set records the answer for (document, query), expiring after answerTTL.
func (c *AnswerCache) Set(ctx context.Context, documentID, query, answer string) error {
	return c.client.Set(ctx, c.key(documentID, query), answer, answerTTL).Err()
}

func (c *AnswerCache) key(documentID, query string) string {
	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("chat:%s:%s", documentID, hex.EncodeToString(sum[:]))
}
