package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jakescarcare/valet-api/internal/models"
)

// DayCache keeps the per-date booking list in Redis for the public
// availability endpoints. It is strictly a read-side optimisation: the
// booking submission path always re-reads the store, so a stale entry can
// only make a taken slot look free for one optimistic pre-check, never let
// a conflicting booking commit.
//
// A nil *DayCache (Redis not configured) disables caching.
type DayCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr string) *DayCache {
	if addr == "" {
		return nil
	}
	return &DayCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: 30 * time.Second,
	}
}

func key(date string) string {
	return "bookings:day:" + date
}

func (c *DayCache) GetDay(ctx context.Context, date string) ([]models.Booking, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("day cache get error:", err)
		}
		return nil, false
	}

	var bookings []models.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		log.Println("day cache decode error:", err)
		return nil, false
	}
	return bookings, true
}

func (c *DayCache) SetDay(ctx context.Context, date string, bookings []models.Booking) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(bookings)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(date), raw, c.ttl).Err(); err != nil {
		log.Println("day cache set error:", err)
	}
}

// InvalidateDay drops the cached list after any booking mutation on that
// date.
func (c *DayCache) InvalidateDay(ctx context.Context, date string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, key(date)).Err(); err != nil {
		log.Println("day cache invalidate error:", err)
	}
}
