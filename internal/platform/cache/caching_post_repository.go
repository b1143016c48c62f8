// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
)

// CachingPostRepository decorates a PostRepository with Redis caching of the
// home listing. It implements the decorator pattern, transparently adding
// caching without modifying the underlying repository.
type CachingPostRepository struct {
	inner     usecase.PostRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure the decorator still satisfies PostRepository.
var _ usecase.PostRepository = (*CachingPostRepository)(nil)

// NewCachingPostRepository decorates a PostRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "posts".
func NewCachingPostRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PostRepository, namespace string) *CachingPostRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "posts"
	}
	return &CachingPostRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// listKey is the cache key for the recent-first listing.
func (c *CachingPostRepository) listKey() string {
	return fmt.Sprintf("%s:recent", c.namespace)
}

// Create inserts the post and invalidates the listing cache so the new post
// is visible on the next page load.
func (c *CachingPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Create(ctx, post); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.rdb.Del(ctx, c.listKey()).Err() // Best effort: don't fail the write if invalidation fails
	return nil
}

// ListRecentFirst retrieves the listing, checking cache first then falling
// back to the database.
func (c *CachingPostRepository) ListRecentFirst(ctx context.Context) ([]entity.PostWithAuthor, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListRecentFirst(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PostWithAuthor
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListRecentFirst(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}
