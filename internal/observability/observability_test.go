package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := GlobalLogger
	var buf bytes.Buffer
	SetGlobalLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { GlobalLogger = prev })
	return &buf
}

func TestCorrelationID_RoundTrip(t *testing.T) {
	id := GenerateCorrelationID()
	require.NotEmpty(t, id)

	ctx := WithCorrelationID(context.Background(), id)
	assert.Equal(t, id, ExtractCorrelationID(ctx))
	assert.Empty(t, ExtractCorrelationID(context.Background()))
}

func TestStoreLogger_LogMutation(t *testing.T) {
	buf := captureLogs(t)
	ctx := WithCorrelationID(context.Background(), "corr-1")

	NewStoreLogger("research").LogMutation(ctx, "post_research", map[string]interface{}{"post_id": 12})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store mutation", entry["msg"])
	assert.Equal(t, "research", entry["store"])
	assert.Equal(t, "post_research", entry["operation"])
	assert.Equal(t, "corr-1", entry["correlation_id"])
	assert.Equal(t, float64(12), entry["post_id"])
}

func TestStoreLogger_Disabled(t *testing.T) {
	buf := captureLogs(t)
	Config.EnableStoreLogging = false
	defer func() { Config.EnableStoreLogging = true }()

	NewStoreLogger("profiles").LogSkipped(context.Background(), "create_profile", "no current user")
	assert.Zero(t, buf.Len())
}

func TestLogAsyncOperationError(t *testing.T) {
	buf := captureLogs(t)
	LogAsyncOperationError(context.Background(), "profile_save", errors.New("offline"), nil)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "async_error", entry["type"])
	assert.Equal(t, "offline", entry["error"])
}

func TestRecordCollectionSizes(t *testing.T) {
	RecordCollectionSizes(CollectionSizes{Profiles: 2, Research: 1, Startups: 3})
	assert.Equal(t, float64(2), testutil.ToFloat64(StoreCollectionSize.WithLabelValues("profiles")))
	assert.Equal(t, float64(3), testutil.ToFloat64(StoreCollectionSize.WithLabelValues("startups")))
	assert.Equal(t, float64(0), testutil.ToFloat64(StoreCollectionSize.WithLabelValues("interests")))
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "incubator-test"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	span, ctx := NewSpan(context.Background(), "noop")
	require.NotNil(t, ctx)
	span.SetError(errors.New("ignored"))
	assert.Empty(t, span.TraceID())
	span.End()
}
