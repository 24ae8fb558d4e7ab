package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/researchnotes/portal-api/internal/core/ports"
)

const flashTTL = 10 * time.Minute

// FlashStore queues one-shot messages per browser in Redis lists.
// Key format: flash:<flash_id>. Pop reads and deletes atomically so each
// message is rendered at most once, even across concurrent tabs.
type FlashStore struct {
	client *redis.Client
}

func NewFlashStore(client *redis.Client) *FlashStore {
	return &FlashStore{client: client}
}

func (s *FlashStore) Push(ctx context.Context, flashID string, flash ports.Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}

	key := flashKey(flashID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, flashTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store flash: %w", err)
	}
	return nil
}

func (s *FlashStore) Pop(ctx context.Context, flashID string) ([]ports.Flash, error) {
	key := flashKey(flashID)

	pipe := s.client.TxPipeline()
	entries := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("pop flashes: %w", err)
	}

	raw, err := entries.Result()
	if err != nil {
		return nil, fmt.Errorf("read flashes: %w", err)
	}

	flashes := make([]ports.Flash, 0, len(raw))
	for _, entry := range raw {
		var flash ports.Flash
		if err := json.Unmarshal([]byte(entry), &flash); err != nil {
			continue
		}
		flashes = append(flashes, flash)
	}
	return flashes, nil
}

func flashKey(id string) string {
	return "flash:" + id
}
