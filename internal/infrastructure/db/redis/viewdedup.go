package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewDedupTTL = time.Hour

// ViewDeduper collapses repeat views of a post by the same viewer within
// viewDedupTTL into a single counted view.
// Key format: view:<post_id>:<viewer_hash>
type ViewDeduper struct {
	client *redis.Client
}

// NewViewDeduper creates a ViewDeduper wrapping the given Redis client.
func NewViewDeduper(client *redis.Client) *ViewDeduper {
	return &ViewDeduper{client: client}
}

// IsDuplicate reports whether this viewer already counted a view recently.
func (d *ViewDeduper) IsDuplicate(ctx context.Context, postID, viewerHash string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(postID, viewerHash)).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this viewer's view has been counted (expires after viewDedupTTL).
func (d *ViewDeduper) Mark(ctx context.Context, postID, viewerHash string) error {
	return d.client.Set(ctx, d.key(postID, viewerHash), "1", viewDedupTTL).Err()
}

func (d *ViewDeduper) key(postID, viewerHash string) string {
	return fmt.Sprintf("view:%s:%s", postID, viewerHash)
}
