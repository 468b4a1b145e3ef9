package worker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLease struct {
	granted bool
	err     error
	calls   int
}

func (l *fakeLease) TryAcquire(context.Context) (bool, error) {
	l.calls++
	return l.granted, l.err
}

func pingCounter() (*httptest.Server, *atomic.Int32) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("ok"))
	}))
	return server, &hits
}

func TestRunPingsWithoutLease(t *testing.T) {
	server, hits := pingCounter()
	defer server.Close()

	NewKeepAliveWorker(server.URL, "*/10 * * * *", nil).Run()
	assert.EqualValues(t, 1, hits.Load())
}

func TestRunRespectsLease(t *testing.T) {
	server, hits := pingCounter()
	defer server.Close()

	held := &fakeLease{granted: false}
	NewKeepAliveWorker(server.URL, "*/10 * * * *", held).Run()
	assert.EqualValues(t, 0, hits.Load())
	assert.Equal(t, 1, held.calls)

	won := &fakeLease{granted: true}
	NewKeepAliveWorker(server.URL, "*/10 * * * *", won).Run()
	assert.EqualValues(t, 1, hits.Load())

	broken := &fakeLease{err: errors.New("redis down")}
	NewKeepAliveWorker(server.URL, "*/10 * * * *", broken).Run()
	assert.EqualValues(t, 2, hits.Load(), "lease errors fall back to pinging")
}

func TestPingErrorsAreReturnedNotPanicked(t *testing.T) {
	server, _ := pingCounter()
	server.Close()

	w := NewKeepAliveWorker(server.URL, "*/10 * * * *", nil)
	assert.Error(t, w.Ping(context.Background()))
	assert.NotPanics(t, w.Run)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	err := NewKeepAliveWorker("http://localhost", "not a schedule", nil).Start(context.Background())
	assert.Error(t, err)
}

func TestStartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewKeepAliveWorker("http://localhost", "*/10 * * * *", nil).Start(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestLeaseTTL(t *testing.T) {
	ttl, err := LeaseTTL("*/10 * * * *", time.Date(2024, 1, 1, 12, 3, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute-5*time.Second, ttl)

	_, err = LeaseTTL("bogus", time.Now())
	assert.Error(t, err)
}
