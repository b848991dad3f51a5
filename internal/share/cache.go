package share

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	campaignKeyPrefix = "share:campaign:" // cached projection: share:campaign:{token}
	proofKeyPrefix    = "share:proof:"    // cached projection: share:proof:{token}
	projectionTTL     = 60 * time.Second  // bounds staleness after edits, not access
)

// Cache holds rendered share projections keyed by token. A nil client
// disables it: every lookup is a miss and writes are dropped.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) get(ctx context.Context, key string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	body, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return body
}

func (c *Cache) set(ctx context.Context, key string, body []byte) {
	if c == nil || c.client == nil {
		return
	}
	// best effort: a failed cache write never fails the request
	_ = c.client.Set(ctx, key, body, projectionTTL).Err()
}

func (c *Cache) GetCampaign(ctx context.Context, token string) []byte {
	return c.get(ctx, campaignKeyPrefix+token)
}

func (c *Cache) SetCampaign(ctx context.Context, token string, body []byte) {
	c.set(ctx, campaignKeyPrefix+token, body)
}

func (c *Cache) GetProof(ctx context.Context, token string) []byte {
	return c.get(ctx, proofKeyPrefix+token)
}

func (c *Cache) SetProof(ctx context.Context, token string, body []byte) {
	c.set(ctx, proofKeyPrefix+token, body)
}
