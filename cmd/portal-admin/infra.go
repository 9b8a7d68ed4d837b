package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/BeauMercier/drasticClientPortal/config"
	"github.com/BeauMercier/drasticClientPortal/internal/bootstrap"
)

var errRedisNotConfigured = errors.New("redis not configured")

// withRedis connects to the configured Redis deployment for the duration of f.
func withRedis(ctx context.Context, cmdCtx *commandContext, f func(redis.UniversalClient) error) error {
	if !hasRedisConfig(&cmdCtx.Config.Redis) {
		return errRedisNotConfigured
	}
	client, err := bootstrap.ConnectRedis(ctx, bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			cmdCtx.Logger.WarnContext(ctx, "redis close failed", "error", cerr)
		}
	}()
	return f(client)
}

func hasRedisConfig(cfg *config.RedisConfig) bool {
	if cfg == nil {
		return false
	}
	if cfg.UseCluster {
		return len(cfg.ClusterNodes) > 0 || cfg.URI != ""
	}
	if cfg.UseSentinel {
		return len(cfg.SentinelNodes) > 0
	}
	return cfg.URI != ""
}
