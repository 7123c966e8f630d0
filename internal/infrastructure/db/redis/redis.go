// Package redis holds the optional shared Redis connection and the
// rate-limit window store built on it. Deployments without Redis skip this
// package entirely and fall back to in-process stores.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	connectTimeout = 5 * time.Second
	// commandTimeout caps per-command latency. The rate limiter sits on the
	// login path and fails open on error, so a slow Redis must turn into a
	// fast error rather than a stalled request.
	commandTimeout = time.Second
)

// Config captures the settings for the shared Redis instance. An empty Addr
// means the deployment runs without one.
type Config struct {
	Addr string
	DB   int
}

// Connect initialises a Redis client with the short command timeouts the
// rate limiter expects and verifies connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis: no address configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  connectTimeout,
		ReadTimeout:  commandTimeout,
		WriteTimeout: commandTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
