package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/client/session"
	"github.com/aureapp/aure/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeState struct {
	mu   sync.Mutex
	snap session.Snapshot
}

func (f *fakeState) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeState) set(snap session.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
}

func authenticatedState() *fakeState {
	return &fakeState{snap: session.Snapshot{
		Status: session.StatusAuthenticated,
		User:   &api.User{ID: "u1"},
	}}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func jobLoader(state SessionState, fetch func(ctx context.Context) ([]api.Job, error)) *Loader[api.Job] {
	return NewLoader(state, testLogger(), "jobs", fetch, func(j api.Job) string { return j.UserID })
}

func TestLoadRefusedWhenNotAuthenticated(t *testing.T) {
	state := &fakeState{snap: session.Snapshot{Status: session.StatusNotAuthenticated}}

	var fetched bool
	l := jobLoader(state, func(context.Context) ([]api.Job, error) {
		fetched = true
		return nil, nil
	})

	err := l.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, fetched, "fetch must not run without an authenticated session")
}

func TestLoadFiltersForeignRecords(t *testing.T) {
	l := jobLoader(authenticatedState(), func(context.Context) ([]api.Job, error) {
		return []api.Job{
			{ID: "j1", UserID: "u1"},
			{ID: "j2", UserID: "intruder"},
			{ID: "j3", UserID: "u1"},
		}, nil
	})

	require.NoError(t, l.Load(context.Background()))

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "j1", items[0].ID)
	assert.Equal(t, "j3", items[1].ID)
}

func TestLoadErrorLeavesEmptyListWithFlag(t *testing.T) {
	l := jobLoader(authenticatedState(), func(context.Context) ([]api.Job, error) {
		return nil, errors.New("boom")
	})

	err := l.Load(context.Background())
	require.Error(t, err)

	assert.Empty(t, l.Items())
	assert.True(t, l.LoadFailed(), "error must be distinguishable from an empty list")
}

func TestManualRetryClearsFailureFlag(t *testing.T) {
	var fail bool
	l := jobLoader(authenticatedState(), func(context.Context) ([]api.Job, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return []api.Job{{ID: "j1", UserID: "u1"}}, nil
	})

	fail = true
	require.Error(t, l.Load(context.Background()))
	assert.True(t, l.LoadFailed())

	fail = false
	require.NoError(t, l.Load(context.Background()))
	assert.False(t, l.LoadFailed())
	assert.Len(t, l.Items(), 1)
}

func TestLoadIsIdempotent(t *testing.T) {
	l := jobLoader(authenticatedState(), func(context.Context) ([]api.Job, error) {
		return []api.Job{{ID: "j1", UserID: "u1"}}, nil
	})

	require.NoError(t, l.Load(context.Background()))
	require.NoError(t, l.Load(context.Background()))

	assert.Len(t, l.Items(), 1)
}

func TestStaleCompletionDoesNotOverwrite(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	l := jobLoader(authenticatedState(), func(context.Context) ([]api.Job, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			// first load finishes after the second
			<-release
			return []api.Job{{ID: "stale", UserID: "u1"}}, nil
		}
		return []api.Job{{ID: "fresh", UserID: "u1"}}, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Load(context.Background())
	}()

	// let the first load reach the fetch before issuing the second
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, l.Load(context.Background()))
	close(release)
	wg.Wait()

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].ID)
}

func TestItemsHiddenAfterDeauthentication(t *testing.T) {
	state := authenticatedState()
	l := jobLoader(state, func(context.Context) ([]api.Job, error) {
		return []api.Job{{ID: "j1", UserID: "u1"}}, nil
	})

	require.NoError(t, l.Load(context.Background()))
	require.Len(t, l.Items(), 1)

	state.set(session.Snapshot{Status: session.StatusNotAuthenticated})
	assert.Nil(t, l.Items())
}

func TestWatchDiscardsOnDeauthAndReloadsOnSignal(t *testing.T) {
	state := authenticatedState()

	var mu sync.Mutex
	var fetches int
	l := jobLoader(state, func(context.Context) ([]api.Job, error) {
		mu.Lock()
		fetches++
		mu.Unlock()
		return []api.Job{{ID: "j1", UserID: "u1"}}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan session.Snapshot, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Watch(ctx, snapshots)
	}()

	// sign-in snapshot: exactly one fetch
	snapshots <- session.Snapshot{Status: session.StatusAuthenticated, User: &api.User{ID: "u1"}, RefreshSeq: 1}
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fetches == 1
	}, time.Second, time.Millisecond)

	// same signal again: no extra fetch
	snapshots <- session.Snapshot{Status: session.StatusAuthenticated, User: &api.User{ID: "u1"}, RefreshSeq: 1}
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 1, fetches)
	mu.Unlock()

	// bumped signal: reload
	snapshots <- session.Snapshot{Status: session.StatusAuthenticated, User: &api.User{ID: "u1"}, RefreshSeq: 2}
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fetches == 2
	}, time.Second, time.Millisecond)

	// deauth snapshot: stores empty on next render
	state.set(session.Snapshot{Status: session.StatusNotAuthenticated})
	snapshots <- session.Snapshot{Status: session.StatusNotAuthenticated}
	assert.Eventually(t, func() bool { return l.Items() == nil }, time.Second, time.Millisecond)

	close(snapshots)
	<-done
}
