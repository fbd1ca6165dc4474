// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/netinv/internal/platform/constants"
	"github.com/taibuivan/netinv/internal/platform/metrics"
	"github.com/taibuivan/netinv/internal/serializer"
)

// CachedResolver is a Redis read-through cache in front of another resolver.
//
// Only hits are cached, so a row created after a miss is found on the next
// lookup. Redis failures degrade to the underlying resolver.
type CachedResolver struct {
	next     serializer.ObjectResolver
	client   *redis.Client
	ttl      time.Duration
	logger   *slog.Logger
	observer LookupObserver
}

// NewCachedResolver wraps next. observer may be nil.
func NewCachedResolver(next serializer.ObjectResolver, client *redis.Client, ttl time.Duration, logger *slog.Logger, observer LookupObserver) *CachedResolver {
	return &CachedResolver{next: next, client: client, ttl: ttl, logger: logger, observer: observer}
}

func cacheKey(contentType string, id int64) string {
	return fmt.Sprintf("%s%s:%d", constants.RedisPrefixResolvedObject, contentType, id)
}

// FindByKey implements [serializer.ObjectResolver].
func (resolver *CachedResolver) FindByKey(ctx context.Context, contentType string, id int64) (*serializer.Object, bool, error) {
	key := cacheKey(contentType, id)

	raw, err := resolver.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		obj := &serializer.Object{}
		if jsonErr := json.Unmarshal(raw, obj); jsonErr == nil {
			if resolver.observer != nil {
				resolver.observer.ObserveLookup(contentType, metrics.LookupCacheHit)
			}
			return obj, true, nil
		}
		resolver.logger.WarnContext(ctx, "object_cache_corrupt", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		resolver.logger.WarnContext(ctx, "object_cache_unavailable",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	obj, found, err := resolver.next.FindByKey(ctx, contentType, id)
	if err != nil || !found {
		return obj, found, err
	}

	payload, err := json.Marshal(obj)
	if err == nil {
		err = resolver.client.Set(ctx, key, payload, resolver.ttl).Err()
	}
	if err != nil {
		resolver.logger.WarnContext(ctx, "object_cache_store_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	return obj, true, nil
}

// Invalidate drops the cached brief form of one row. Services call it after
// updating or deleting a record that can be referenced.
func (resolver *CachedResolver) Invalidate(ctx context.Context, contentType string, id int64) error {
	if err := resolver.client.Del(ctx, cacheKey(contentType, id)).Err(); err != nil {
		return fmt.Errorf("contenttype: invalidate %s %d: %w", contentType, id, err)
	}
	return nil
}
