package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"incubator/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextMiddleware_PropagatesRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(ContextMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(observability.ExtractCorrelationID(c.UserContext()))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.Equal(t, "req-123", buf.String())
}

func TestContextMiddleware_GeneratesID(t *testing.T) {
	app := fiber.New()
	app.Use(ContextMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(observability.ExtractCorrelationID(c.UserContext()))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.Len(t, buf.String(), 36)
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := observability.GlobalLogger
	observability.SetGlobalLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { observability.GlobalLogger = prev })

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(ContextMiddleware())
	app.Use(StructuredLogger())
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/teapot", nil)
	req.Header.Set("X-Request-ID", "abc")
	_, err := app.Test(req)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request processed", entry["msg"])
	assert.Equal(t, float64(fiber.StatusTeapot), entry["status"])
	assert.Equal(t, "/teapot", entry["path"])
	assert.Equal(t, "abc", entry["correlation_id"])
}

func TestTracingMiddleware_SetsTraceHeader(t *testing.T) {
	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := c.Locals("traceID").(string)
		assert.True(t, ok)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestInitMetrics_Shared(t *testing.T) {
	a := InitMetrics("incubator-test")
	b := InitMetrics("incubator-test")
	assert.Same(t, a, b)
	assert.NotNil(t, MetricsMiddleware(a))
}

func TestExempt(t *testing.T) {
	for _, env := range []string{"", "test", "development", "stress"} {
		assert.True(t, Exempt(env), env)
	}
	assert.False(t, Exempt("production"))
}

func TestCheckRateLimit(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := CheckRateLimit(ctx, rdb, "post", "ip:1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := CheckRateLimit(ctx, rdb, "post", "ip:1", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("rl:post:ip:1"))

	mr.FastForward(time.Minute + time.Second)
	ok, err = CheckRateLimit(ctx, rdb, "post", "ip:1", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = CheckRateLimit(ctx, nil, "post", "ip:1", 2, time.Minute)
	assert.Error(t, err)
}

func TestCheckRateLimit_RepairsCounterWithoutWindow(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	// A counter stranded without a TTL must not lock the client out forever.
	require.NoError(t, mr.Set("rl:post:ip:9", "5"))
	ok, err := CheckRateLimit(context.Background(), rdb, "post", "ip:9", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("rl:post:ip:9"))

	mr.FastForward(time.Minute + time.Second)
	ok, err = CheckRateLimit(context.Background(), rdb, "post", "ip:9", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckRateLimit_WindowNotExtendedByLaterHits(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	_, err = CheckRateLimit(ctx, rdb, "post", "ip:2", 5, time.Minute)
	require.NoError(t, err)
	mr.FastForward(30 * time.Second)
	_, err = CheckRateLimit(ctx, rdb, "post", "ip:2", 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL("rl:post:ip:2"))
}

func TestWritePolicy(t *testing.T) {
	assert.Equal(t, FailOpen, WritePolicy(nil))
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer rdb.Close()
	assert.Equal(t, FailClosed, WritePolicy(rdb))
}

func rateLimitedApp(env string, rdb *redis.Client, policy FailPolicy) *fiber.App {
	app := fiber.New()
	app.Post("/", RateLimitWithPolicy(env, rdb, 1, time.Minute, policy, "write"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func TestRateLimit_Middleware(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	app := rateLimitedApp("production", rdb, FailOpen)
	resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	dev := rateLimitedApp("development", rdb, FailOpen)
	for i := 0; i < 3; i++ {
		resp, err = dev.Test(httptest.NewRequest("POST", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
}

func TestRateLimit_FailurePolicies(t *testing.T) {
	resp, err := rateLimitedApp("production", nil, FailOpen).Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = rateLimitedApp("production", nil, FailClosed).Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
