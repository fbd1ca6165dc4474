// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the managed client for volatile data.

Netinv keeps only rebuildable state in Redis: resolved generic references
(see contenttype.CachedResolver). Losing the instance costs latency, never
correctness.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second

	defaultPoolSize = 10
)

// ClientConfig selects the server and sizes the connection pool.
type ClientConfig struct {
	URL string
	// PoolSize caps open connections. Zero means 10.
	PoolSize int
}

// NewClient parses cfg.URL and returns a connected client. Idle connections
// are kept between a fifth and a half of the pool size.
func NewClient(ctx context.Context, cfg ClientConfig, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = cfg.PoolSize
	if options.PoolSize <= 0 {
		options.PoolSize = defaultPoolSize
	}
	options.MinIdleConns = max(1, options.PoolSize/5)
	options.MaxIdleConns = max(options.MinIdleConns, options.PoolSize/2)

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis client connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(ctx context.Context, client *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
