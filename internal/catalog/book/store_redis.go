// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/shelf/internal/platform/constants"
	"github.com/taibuivan/shelf/internal/platform/ctxutil"
	"github.com/taibuivan/shelf/internal/platform/metrics"
)

const cacheName = "book"

// CachedBookRepository is a read-through Redis cache in front of another [BookRepository].
//
// Only single-book lookups are cached. Redis failures degrade to the inner
// repository; they are logged and counted but never surface to the caller.
type CachedBookRepository struct {
	inner   BookRepository
	client  redis.Cmdable
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewCachedBookRepository wraps inner with a cache whose entries live for ttl.
func NewCachedBookRepository(inner BookRepository, client redis.Cmdable, ttl time.Duration, m *metrics.Metrics) *CachedBookRepository {
	return &CachedBookRepository{inner: inner, client: client, ttl: ttl, metrics: m}
}

func cacheKey(id string) string {
	return constants.RedisPrefixBook + id
}

/*
FindByID serves from Redis when possible and populates it on a miss.

Description: Unknown books are not cached, so a book added to the catalog
becomes visible immediately.
*/
func (repository *CachedBookRepository) FindByID(ctx context.Context, id string) (*Book, error) {
	logger := ctxutil.GetLogger(ctx)
	key := cacheKey(id)

	// 1. Cache lookup
	payload, err := repository.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var book Book
		if jsonErr := json.Unmarshal(payload, &book); jsonErr == nil {
			repository.metrics.RecordCache(cacheName, "hit")
			return &book, nil
		}
		logger.WarnContext(ctx, "book_cache_corrupt_entry", slog.String("key", key))
		repository.metrics.RecordCache(cacheName, "error")
	case errors.Is(err, redis.Nil):
		repository.metrics.RecordCache(cacheName, "miss")
	default:
		logger.WarnContext(ctx, "book_cache_get_failed", slog.String("key", key), slog.Any("error", err))
		repository.metrics.RecordCache(cacheName, "error")
	}

	// 2. Source of truth
	book, err := repository.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Populate
	if encoded, err := json.Marshal(book); err == nil {
		if err := repository.client.Set(ctx, key, encoded, repository.ttl).Err(); err != nil {
			logger.WarnContext(ctx, "book_cache_set_failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return book, nil
}

func (repository *CachedBookRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*Book, error) {
	return repository.inner.FindByIDs(ctx, ids)
}

func (repository *CachedBookRepository) List(ctx context.Context, filter Filter) ([]*Book, int, error) {
	return repository.inner.List(ctx, filter)
}
