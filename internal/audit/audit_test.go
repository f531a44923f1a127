package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbpkg "github.com/BruksfildServices01/receptionist/internal/db"
)

func newLogger(t *testing.T) *Logger {
	t.Helper()
	gdb, err := dbpkg.Open(dbpkg.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(gdb))
	return New(gdb)
}

func TestDispatcherPersists(t *testing.T) {
	logger := newLogger(t)
	d := NewDispatcher(logger)

	id := uint(42)
	d.Dispatch(Event{Actor: "voice-agent", Action: ActionAppointmentCreated, Entity: "appointment", EntityID: &id, Metadata: map[string]string{"time": "15:00"}})
	d.Dispatch(Event{Actor: "voice-agent", Action: ActionAppointmentConflict, Entity: "appointment"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	logs, total, err := logger.List(context.Background(), Filter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)

	created, _, err := logger.List(context.Background(), Filter{Action: ActionAppointmentCreated, Limit: 10})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.JSONEq(t, `{"time":"15:00"}`, created[0].Metadata)
	require.NotNil(t, created[0].EntityID)
	assert.Equal(t, id, *created[0].EntityID)
}

type blockingSink struct {
	release chan struct{}
	mu      sync.Mutex
	seen    int
}

func (s *blockingSink) Log(ctx context.Context, ev Event) error {
	<-s.release
	s.mu.Lock()
	s.seen++
	s.mu.Unlock()
	return errors.New("sink down")
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	d := NewDispatcherSize(sink, 1)

	for i := 0; i < 5; i++ {
		d.Dispatch(Event{Action: "x"})
	}
	close(sink.release)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.GreaterOrEqual(t, sink.seen, 1)
	assert.LessOrEqual(t, sink.seen, 2)
}

type countingSink struct {
	mu   sync.Mutex
	seen int
}

func (s *countingSink) Log(ctx context.Context, ev Event) error {
	s.mu.Lock()
	s.seen++
	s.mu.Unlock()
	return nil
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	sink := &countingSink{}
	d := NewDispatcher(sink)

	d.Dispatch(Event{Action: ActionAppointmentCreated})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionAppointmentConflict})
	})
	require.NoError(t, d.Close(ctx))

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, 1, sink.seen)
}

func TestDispatchRacingClose(t *testing.T) {
	d := NewDispatcher(&countingSink{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Dispatch(Event{Action: "x"})
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	wg.Wait()
}
