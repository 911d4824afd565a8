// Package cache holds the Redis connection and a cache-aside helper for the
// read-only directory listings.
package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"incubator/internal/observability"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// DefaultAddr is used when no Redis URL is configured.
const DefaultAddr = "redis:6379"

type metricsHook struct{}

func (metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrorRate.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrorRate.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// ParseRedisURL accepts either host:port or a redis:// / rediss:// URL and
// returns its address, password, database number and whether TLS is wanted.
func ParseRedisURL(raw string) (addr, password string, db int, useTLS bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultAddr, "", 0, false
	}
	if !strings.HasPrefix(raw, "redis://") && !strings.HasPrefix(raw, "rediss://") {
		return raw, "", 0, false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw, "", 0, false
	}
	addr = u.Host
	useTLS = u.Scheme == "rediss"
	if u.User != nil {
		password, _ = u.User.Password()
	}
	if p := strings.Trim(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	return addr, password, db, useTLS
}

// Options builds client options for raw. Maintenance notifications are
// disabled since most servers do not implement the handshake.
func Options(raw string) *redis.Options {
	addr, password, db, useTLS := ParseRedisURL(raw)
	opts := &redis.Options{
		Addr:                     addr,
		Password:                 password,
		DB:                       db,
		MaintNotificationsConfig: &maintnotifications.Config{Mode: maintnotifications.ModeDisabled},
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}

// Connect dials Redis and verifies it with a ping. The caller decides whether
// an error is fatal; the server runs without a cache when it is not.
func Connect(ctx context.Context, raw string) (*redis.Client, error) {
	client := redis.NewClient(Options(raw))
	client.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", client.Options().Addr, err)
	}
	return client, nil
}
