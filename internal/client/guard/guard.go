// Package guard decides what an authentication-gated screen may render for
// a given session snapshot.
package guard

import (
	"sync"
	"time"

	"github.com/aureapp/aure/internal/client/session"
)

// Mode selects how a screen reacts to an unauthenticated session.
type Mode int

const (
	// RedirectMode sends the user back to the authentication phase.
	RedirectMode Mode = iota
	// EmptyStateMode renders a placeholder instead (e.g. optional panels).
	EmptyStateMode
)

// Decision is what the screen should render right now.
type Decision int

const (
	RenderContent Decision = iota
	RenderLoading
	RenderRedirect
	RenderEmptyState
)

// redirectDelay is how long the redirect placeholder shows before the
// phase flips to authentication.
const redirectDelay = 2 * time.Second

// Guard evaluates session snapshots for one screen. On any transition away
// from Authenticated it fires OnDeauthenticated synchronously, before the
// caller can render, so stale user data never gets a frame.
type Guard struct {
	mode  Mode
	delay time.Duration

	// OnDeauthenticated lets the screen discard in-memory data.
	OnDeauthenticated func()
	// Redirect flips the app to the authentication phase after the delay.
	Redirect func()

	mu               sync.Mutex
	wasAuthenticated bool
	redirectArmed    bool
	timer            *time.Timer
}

func New(mode Mode) *Guard {
	return &Guard{mode: mode, delay: redirectDelay}
}

// WithDelay overrides the redirect delay, for tests.
func (g *Guard) WithDelay(d time.Duration) *Guard {
	g.delay = d
	return g
}

// Evaluate maps a snapshot to a render decision.
func (g *Guard) Evaluate(snap session.Snapshot) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if snap.Authenticated() {
		g.wasAuthenticated = true
		g.redirectArmed = false
		if g.timer != nil {
			g.timer.Stop()
			g.timer = nil
		}
		return RenderContent
	}

	if g.wasAuthenticated {
		g.wasAuthenticated = false
		if g.OnDeauthenticated != nil {
			g.OnDeauthenticated()
		}
	}

	if snap.Status == session.StatusLoading {
		return RenderLoading
	}

	if g.mode == EmptyStateMode {
		return RenderEmptyState
	}

	if !g.redirectArmed {
		g.redirectArmed = true
		if g.Redirect != nil {
			g.timer = time.AfterFunc(g.delay, g.Redirect)
		}
	}
	return RenderRedirect
}
