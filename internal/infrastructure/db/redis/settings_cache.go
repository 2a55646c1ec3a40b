package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

const (
	settingsCacheKey = "settings:site"
	settingsCacheTTL = 5 * time.Minute
)

// SettingsCache stores the site-settings document as JSON under a single key.
type SettingsCache struct {
	client *redis.Client
}

func NewSettingsCache(client *redis.Client) *SettingsCache {
	return &SettingsCache{client: client}
}

// Get returns the cached settings, or (nil, nil) on a miss.
func (c *SettingsCache) Get(ctx context.Context) (*domain.SiteSettings, error) {
	raw, err := c.client.Get(ctx, settingsCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("settings cache get: %w", err)
	}

	var s domain.SiteSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		// Corrupt entry: treat as a miss so the caller re-populates it.
		return nil, nil
	}
	return &s, nil
}

func (c *SettingsCache) Set(ctx context.Context, s *domain.SiteSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings cache marshal: %w", err)
	}
	return c.client.Set(ctx, settingsCacheKey, raw, settingsCacheTTL).Err()
}

func (c *SettingsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, settingsCacheKey).Err()
}
