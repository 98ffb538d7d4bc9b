// Package services holds the client-side data stores. Every store is gated
// on the session: it refuses to fetch while unauthenticated, re-checks
// record ownership after every fetch, and discards itself on sign-out.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/aureapp/aure/internal/client/session"
	"github.com/aureapp/aure/internal/logging"
)

// ErrNotAuthenticated is returned when a load is attempted without an
// authenticated session.
var ErrNotAuthenticated = errors.New("not authenticated")

// SessionState is the read surface stores need from the session manager.
type SessionState interface {
	Snapshot() session.Snapshot
}

// Loader fetches and holds one kind of user-owned record.
//
// Ownership filtering is defense in depth: the server already scopes every
// query by user, but fetched records are still checked against the session
// user and violators are dropped and logged, invisible to the UI.
type Loader[T any] struct {
	session SessionState
	logger  logging.Logger
	kind    string
	fetch   func(ctx context.Context) ([]T, error)
	ownerOf func(T) string

	mu         sync.Mutex
	issued     uint64
	applied    uint64
	items      []T
	loadFailed bool
}

func NewLoader[T any](
	state SessionState,
	logger logging.Logger,
	kind string,
	fetch func(ctx context.Context) ([]T, error),
	ownerOf func(T) string,
) *Loader[T] {
	return &Loader[T]{
		session: state,
		logger:  logger.With("store", kind),
		kind:    kind,
		fetch:   fetch,
		ownerOf: ownerOf,
	}
}

// Load fetches the full list and replaces the store contents. Each call
// takes a sequence number; a completion that lost the race to a newer one
// does not overwrite its result. On fetch error the store holds an empty
// list with LoadFailed set, so callers can tell failure from genuinely
// empty. No automatic retry.
func (l *Loader[T]) Load(ctx context.Context) error {

	snap := l.session.Snapshot()
	if !snap.Authenticated() {
		return ErrNotAuthenticated
	}
	userID := snap.User.ID

	l.mu.Lock()
	l.issued++
	seq := l.issued
	l.mu.Unlock()

	items, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq <= l.applied {
		// a newer load already finished
		return nil
	}
	l.applied = seq

	if err != nil {
		l.items = []T{}
		l.loadFailed = true
		l.logger.Error(ctx, "load failed", "error", err.Error())
		return err
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if owner := l.ownerOf(item); owner != userID {
			l.logger.Warn(ctx, "dropping record with foreign owner", "owner", owner)
			continue
		}
		filtered = append(filtered, item)
	}

	l.items = filtered
	l.loadFailed = false
	return nil
}

// Items returns the current list. While the session is not authenticated it
// always returns nil, regardless of what was loaded before.
func (l *Loader[T]) Items() []T {
	if !l.session.Snapshot().Authenticated() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// LoadFailed reports whether the last completed load errored.
func (l *Loader[T]) LoadFailed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadFailed
}

// Discard drops the in-memory list.
func (l *Loader[T]) Discard() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.loadFailed = false
}

// Watch consumes session snapshots: discard on deauthentication, reload when
// the refresh signal moves. Runs until ctx is cancelled or the channel
// closes; intended as a goroutine per mounted store.
func (l *Loader[T]) Watch(ctx context.Context, snapshots <-chan session.Snapshot) {

	var lastRefresh uint64

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			if !snap.Authenticated() {
				l.Discard()
				continue
			}
			if snap.RefreshSeq != lastRefresh {
				lastRefresh = snap.RefreshSeq
				_ = l.Load(ctx)
			}

		case <-ctx.Done():
			return
		}
	}
}
