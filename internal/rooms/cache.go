package rooms

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/staywell/reservation-service/internal/models"
)

const roomCacheTTL = 5 * time.Minute

// cachedCatalog adds a Redis read-through cache in front of room lookups.
// A nil client, or any Redis error, degrades to the inner catalog so a cache
// outage never blocks bookings. Availability and lock calls are never
// cached.
type cachedCatalog struct {
	Catalog
	rdb *redis.Client
}

// WithCache wraps a catalog with a Redis room cache. Passing a nil client
// returns the inner catalog unchanged.
func WithCache(inner Catalog, rdb *redis.Client) Catalog {
	if rdb == nil {
		return inner
	}
	return &cachedCatalog{Catalog: inner, rdb: rdb}
}

func (c *cachedCatalog) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	key := "room:" + roomID
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var room models.Room
		if err := json.Unmarshal(raw, &room); err == nil {
			return &room, nil
		}
	}

	room, err := c.Catalog.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(room); err == nil {
		if err := c.rdb.Set(ctx, key, raw, roomCacheTTL).Err(); err != nil {
			log.Printf("[RoomCache] set %s: %v", key, err)
		}
	}
	return room, nil
}
