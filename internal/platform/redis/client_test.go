// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/netinv/internal/platform/redis"
)

/*
TestNewClient_ConnectsAndPings dials an in-process Redis server.
*/
func TestNewClient_ConnectsAndPings(t *testing.T) {
	server := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := redisstore.NewClient(context.Background(), redisstore.ClientConfig{URL: "redis://" + server.Addr() + "/2"}, logger)
	require.NoError(t, err)
	defer client.Close()

	options := client.Options()
	assert.Equal(t, 2, options.DB)
	assert.Equal(t, 10, options.PoolSize)
	assert.Equal(t, 2, options.MinIdleConns)
	assert.Equal(t, 5, options.MaxIdleConns)

	assert.NoError(t, redisstore.Ping(context.Background(), client))

	server.Close()
	assert.Error(t, redisstore.Ping(context.Background(), client))
}

/*
TestNewClient_SmallPool keeps at least one idle connection.
*/
func TestNewClient_SmallPool(t *testing.T) {
	server := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := redisstore.NewClient(context.Background(), redisstore.ClientConfig{URL: "redis://" + server.Addr(), PoolSize: 2}, logger)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 1, client.Options().MinIdleConns)
	assert.Equal(t, 1, client.Options().MaxIdleConns)
}

/*
TestNewClient_InvalidURL rejects malformed URLs before dialing.
*/
func TestNewClient_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := redisstore.NewClient(context.Background(), redisstore.ClientConfig{URL: "not-a-url"}, logger)
	assert.Error(t, err)
}
