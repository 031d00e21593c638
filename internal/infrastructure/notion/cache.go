package notion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/property"
	"notion-config-tool/pkg/logx"
	"notion-config-tool/pkg/metrics"
)

const cacheKeyPrefix = "notion:query:"

type Querier interface {
	QueryAll(ctx context.Context, databaseID string, query entity.Query) ([]property.Page, error)
}

type keyValueStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Cache keeps query results in Redis for a short time so that a diff
// followed by a sync hits Notion once. Cache failures fall through to the
// wrapped querier.
type Cache struct {
	next  Querier
	store keyValueStore
	ttl   time.Duration
}

func NewCache(next Querier, store keyValueStore, ttl time.Duration) *Cache {
	return &Cache{next: next, store: store, ttl: ttl}
}

func (c *Cache) QueryAll(ctx context.Context, databaseID string, query entity.Query) ([]property.Page, error) {
	key, err := cacheKey(databaseID, query)
	if err != nil {
		return nil, err
	}

	data, err := c.store.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		var pages []property.Page
		if err := jsoniter.Unmarshal(data, &pages); err == nil {
			metrics.NotionCacheHits.WithLabelValues(databaseID).Inc()

			return pages, nil
		}

		logger(ctx).Warn("drop unreadable cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		logger(ctx).Error("notion cache get", slog.String("key", key), logx.Error(err))
	}

	pages, err := c.next.QueryAll(ctx, databaseID, query)
	if err != nil {
		return nil, err
	}

	data, err = jsoniter.Marshal(pages)
	if err != nil {
		logger(ctx).Error("notion cache encode", logx.Error(err))

		return pages, nil
	}

	if err := c.store.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger(ctx).Error("notion cache set", slog.String("key", key), logx.Error(err))
	}

	return pages, nil
}

func cacheKey(databaseID string, query entity.Query) (string, error) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(query)
	if err != nil {
		return "", fmt.Errorf("encode query: %w", err)
	}

	sum := sha256.Sum256(data)

	return cacheKeyPrefix + databaseID + ":" + hex.EncodeToString(sum[:]), nil
}
