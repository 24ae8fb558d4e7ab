// Package redis backs the portal's ephemeral state: session records and
// pending flash messages. Everything stored here expires on its own, so a
// flushed instance only logs users out.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Config captures the settings for the portal's Redis connection.
type Config struct {
	Addr string
	DB   int
}

// Connect opens a client against cfg and verifies it is reachable before
// handing it out. Callers own closing the client.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		DB:         cfg.DB,
		ClientName: "portal-api",
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
