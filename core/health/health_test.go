package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wsbroker/core/broker"
	"github.com/dmitrymomot/wsbroker/core/health"
)

func get(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func runLoop(t *testing.T) *broker.Loop {
	t.Helper()
	loop := broker.NewLoop(8)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})
	return loop
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	rec := get(t, http.HandlerFunc(health.Liveness))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestNoContent(t *testing.T) {
	t.Parallel()

	rec := get(t, http.HandlerFunc(health.NoContent))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("down") }

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		rec := get(t, health.Readiness(nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()
		rec := get(t, health.Readiness(nil, ok, ok))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("one fails", func(t *testing.T) {
		t.Parallel()
		rec := get(t, health.Readiness(nil, ok, fail))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("running loop", func(t *testing.T) {
		t.Parallel()
		rec := get(t, health.Readiness(nil, health.LoopCheck(runLoop(t))))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("stopped loop", func(t *testing.T) {
		t.Parallel()
		loop := broker.NewLoop(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.NoError(t, loop.Run(ctx))

		rec := get(t, health.Readiness(nil, health.LoopCheck(loop)))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

type sink struct{ id string }

func (s sink) ID() string                  { return s.id }
func (s sink) Write(p []byte) (int, error) { return len(p), nil }
func (s sink) RequestWritable()            {}

func TestStats(t *testing.T) {
	t.Parallel()

	loop := runLoop(t)
	d := broker.New(broker.WithCapacity(4))
	pub, sub := sink{id: "pub"}, sink{id: "sub"}
	require.NoError(t, loop.Do(context.Background(), func() {
		d.OnEstablish(sub, "/")
		d.OnEstablish(pub, "/publisher")
		_ = d.OnMessage(pub, []byte("x"))
	}))

	rec := get(t, health.Stats(nil, loop, d))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var st broker.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, 1, st.Subscribers)
	assert.Equal(t, 1, st.Publishers)
	assert.Equal(t, 4, st.Capacity)
	assert.Equal(t, 1, st.Buffered)
	assert.Equal(t, uint64(1), st.Published)
}
