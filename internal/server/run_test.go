package server

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"incubator/internal/editor"
	"incubator/internal/forms"
	"incubator/internal/models"
	"incubator/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_DrainsSavesAndStopHooksBeforeReturning(t *testing.T) {
	cfg := testConfig()
	cfg.EditorSaveDelay = time.Hour
	srv, err := NewServerWithDeps(cfg, seed.Demo(), nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var stopped atomic.Bool
	var saveAtStop atomic.Value
	hook := func(context.Context) error {
		saveAtStop.Store(srv.editor.Status("arivera@uoguelph.ca").State)
		stopped.Store(true)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	result := make(chan error, 1)
	go func() { result <- srv.Run(ctx, ln, hook) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://" + ln.Addr().String() + "/health/live")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	user := srv.Store().Login(context.Background(), "arivera@uoguelph.ca", models.RoleStudent)
	_, err = srv.editor.Submit(srv.baseCtx, user, forms.ProfileForm{Name: "Alex Rivera", Year: "3rd Year", Program: "Computer Science"}, nil)
	require.NoError(t, err)
	require.Equal(t, editor.StateSaving, srv.editor.Status(user.Email).State)

	cancel()
	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	assert.True(t, stopped.Load())
	assert.Equal(t, editor.StateFailed, saveAtStop.Load())
	assert.Equal(t, "canceled", srv.editor.Status(user.Email).Error)
}
