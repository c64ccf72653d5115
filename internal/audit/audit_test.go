package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/BruksfildServices01/escala-voluntarios/internal/audit"
	"github.com/BruksfildServices01/escala-voluntarios/internal/db/dbtest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
	fail   bool
}

func (s *memorySink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("sink down")
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *memorySink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	sink := &memorySink{}
	d := audit.NewDispatcher(sink, nil)

	d.Dispatch(audit.Event{Action: "booking_created"})
	d.Dispatch(audit.Event{Action: "booking_deleted"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Equal(t, []string{"booking_created", "booking_deleted"}, sink.actions())
}

func TestDispatcher_DispatchAfterCloseIsIgnored(t *testing.T) {
	sink := &memorySink{}
	d := audit.NewDispatcher(sink, nil)
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() { d.Dispatch(audit.Event{Action: "late"}) })
	assert.Empty(t, sink.actions())
}

func TestDispatcher_SinkFailureDoesNotStopWorker(t *testing.T) {
	sink := &memorySink{fail: true}
	d := audit.NewDispatcher(sink, nil)

	d.Dispatch(audit.Event{Action: "area_created"})
	require.NoError(t, d.Close(context.Background()))
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *audit.Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(audit.Event{Action: "x"}) })
}

func TestLogger_WritesAndLists(t *testing.T) {
	gdb := dbtest.New(t)
	l := audit.New(gdb)
	ctx := context.Background()

	id := uint(7)
	require.NoError(t, l.Log(ctx, audit.Event{
		Actor: "admin", Action: "area_created", Entity: "area", EntityID: &id,
		Metadata: map[string]any{"name": "Welcome"},
	}))
	require.NoError(t, l.Log(ctx, audit.Event{Actor: "public", Action: "booking_created", Entity: "booking"}))

	logs, total, err := l.List(ctx, audit.Filter{Action: "area_created", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.JSONEq(t, `{"name":"Welcome"}`, logs[0].Metadata)
	assert.Equal(t, &id, logs[0].EntityID)
}
