package roadmap

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Source with a Redis-backed snapshot. Redis failures never fail
// a read; the cache falls back to the wrapped source.
type Cache struct {
	base  Source
	redis *redis.Client
	ttl   time.Duration
	key   string
}

// NewCache creates a caching Source. A nil client or zero TTL disables caching.
func NewCache(base Source, client *redis.Client, ttl time.Duration, boardID string) *Cache {
	if base == nil {
		panic("roadmap.NewCache: base source is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{
		base:  base,
		redis: client,
		ttl:   ttl,
		key:   boardCacheKey(boardID),
	}
}

func (c *Cache) FetchBoard(ctx context.Context) (Board, error) {
	if board, ok := c.load(ctx); ok {
		return board, nil
	}
	return c.Refresh(ctx)
}

// Refresh skips the cached copy, fetches a new snapshot and stores it.
func (c *Cache) Refresh(ctx context.Context) (Board, error) {
	board, err := c.base.FetchBoard(ctx)
	if err != nil {
		return Board{}, err
	}
	c.store(ctx, board)
	return board, nil
}

func (c *Cache) load(ctx context.Context) (Board, bool) {
	if c.redis == nil {
		return Board{}, false
	}
	data, err := c.redis.Get(ctx, c.key).Bytes()
	if err != nil {
		return Board{}, false
	}
	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		// corrupt entry
		_ = c.redis.Del(ctx, c.key).Err()
		return Board{}, false
	}
	return board, true
}

func (c *Cache) store(ctx context.Context, board Board) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(board)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, c.key, data, c.ttl).Err()
}

func boardCacheKey(boardID string) string {
	return "roadmap:board:" + boardID
}
