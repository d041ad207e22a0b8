package syncbridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecraft/concierge/backend/internal/domain"
)

// fakeClient records pushes and returns a configurable error.
type fakeClient struct {
	mu     sync.Mutex
	pushes []pushBody
	err    error
}

func (f *fakeClient) Push(_ context.Context, email string, state domain.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, pushBody{Email: email, TripsState: state})
	return f.err
}

func (f *fakeClient) Pull(context.Context, string) (domain.StatePatch, error) {
	return domain.StatePatch{}, nil
}

func (f *fakeClient) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

func (f *fakeClient) lastPush() pushBody {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes[len(f.pushes)-1]
}

var _ Client = (*fakeClient)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stateWithTrip(title string) domain.State {
	state := domain.NewState()
	state.Trips = []domain.Trip{{ID: "t1", Title: title}}
	return state
}

// ---- debounce --------------------------------------------------------------

func TestSchedule_BurstCollapsesToOnePush(t *testing.T) {
	client := &fakeClient{}
	bridge := New(client, 30*time.Millisecond, testLogger(), nil)

	for i := 0; i < 10; i++ {
		bridge.Schedule("user@x.com", stateWithTrip("v"))
	}

	require.Eventually(t, func() bool { return client.pushCount() == 1 },
		time.Second, 5*time.Millisecond)

	// Settle beyond another window: no second push may arrive.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, client.pushCount())
}

func TestSchedule_NewestStateWins(t *testing.T) {
	client := &fakeClient{}
	bridge := New(client, 30*time.Millisecond, testLogger(), nil)

	bridge.Schedule("user@x.com", stateWithTrip("old"))
	bridge.Schedule("user@x.com", stateWithTrip("new"))

	require.Eventually(t, func() bool { return client.pushCount() == 1 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, "new", client.lastPush().TripsState.Trips[0].Title)
}

func TestSchedule_ResetsTimerOnEachCall(t *testing.T) {
	client := &fakeClient{}
	bridge := New(client, 50*time.Millisecond, testLogger(), nil)

	// Keep resetting within the window; nothing must fire meanwhile.
	for i := 0; i < 4; i++ {
		bridge.Schedule("user@x.com", stateWithTrip("v"))
		time.Sleep(20 * time.Millisecond)
		assert.Zero(t, client.pushCount(), "push fired before the burst settled")
	}

	require.Eventually(t, func() bool { return client.pushCount() == 1 },
		time.Second, 5*time.Millisecond)
}

// ---- failure handling ------------------------------------------------------

func TestPush_FailureIsSwallowed(t *testing.T) {
	client := &fakeClient{err: errors.New("remote store down")}
	bridge := New(client, 10*time.Millisecond, testLogger(), nil)

	bridge.Schedule("user@x.com", stateWithTrip("v"))

	require.Eventually(t, func() bool { return client.pushCount() == 1 },
		time.Second, 5*time.Millisecond)

	// A later burst schedules again as if nothing happened.
	client.err = nil
	bridge.Schedule("user@x.com", stateWithTrip("v2"))
	require.Eventually(t, func() bool { return client.pushCount() == 2 },
		time.Second, 5*time.Millisecond)
}

// ---- flush -----------------------------------------------------------------

func TestFlush_PushesPendingImmediately(t *testing.T) {
	client := &fakeClient{}
	bridge := New(client, time.Hour, testLogger(), nil)

	bridge.Schedule("user@x.com", stateWithTrip("pending"))
	bridge.Flush()

	assert.Equal(t, 1, client.pushCount())
	assert.Equal(t, "pending", client.lastPush().TripsState.Trips[0].Title)
}

func TestFlush_NothingPendingIsNoOp(t *testing.T) {
	client := &fakeClient{}
	bridge := New(client, time.Hour, testLogger(), nil)

	bridge.Flush()

	assert.Zero(t, client.pushCount())
}

func TestNew_ZeroWindowSelectsDefault(t *testing.T) {
	bridge := New(&fakeClient{}, 0, testLogger(), nil)
	assert.Equal(t, DebounceWindow, bridge.window)
}
