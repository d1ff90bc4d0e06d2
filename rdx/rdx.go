package rdx

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"bizbook/models"

	"github.com/redis/go-redis/v9"
)

const serviceTTL = 10 * time.Minute

// Cache is a best-effort read-through cache for service documents. A nil
// Cache (redis not configured) is valid and turns every call into a no-op,
// so a dead redis never fails a request.
type Cache struct {
	Conn *redis.Client
}

// New connects to redis at REDIS_ADDR. Returns nil when the variable is
// unset so callers fall back to hitting the store directly.
func New() *Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return &Cache{
		Conn: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *Cache) GetService(ctx context.Context, id string) (*models.Service, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.Conn.Get(ctx, "service:"+id).Result()
	if err != nil {
		return nil, false
	}
	var svc models.Service
	if err := json.Unmarshal([]byte(raw), &svc); err != nil {
		log.Println("Cache unmarshal error for service", id, ":", err)
		return nil, false
	}
	return &svc, true
}

func (c *Cache) SetService(ctx context.Context, svc *models.Service) {
	if c == nil {
		return
	}
	data, err := json.Marshal(svc)
	if err != nil {
		return
	}
	if err := c.Conn.Set(ctx, "service:"+svc.ID.Hex(), data, serviceTTL).Err(); err != nil {
		log.Println("Cache set error for service", svc.ID.Hex(), ":", err)
	}
}

func (c *Cache) DelService(ctx context.Context, id string) {
	if c == nil {
		return
	}
	if err := c.Conn.Del(ctx, "service:"+id).Err(); err != nil {
		log.Printf("Cache deletion failed for service ID: %s. Error: %v", id, err)
	}
}
