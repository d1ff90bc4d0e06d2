package rdx

import (
	"context"
	"testing"

	"bizbook/models"
)

// A nil cache (redis not configured) must behave as a permanent miss and
// swallow writes without panicking.
func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache

	if _, ok := c.GetService(context.Background(), "abc"); ok {
		t.Error("nil cache reported a hit")
	}
	c.SetService(context.Background(), &models.Service{Name: "Haircut"})
	c.DelService(context.Background(), "abc")
}
