// Package session owns the client's authentication state. A single Manager
// is constructed in main and injected everywhere; all mutation goes through
// it, and reads propagate as immutable snapshots.
package session

import (
	"time"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/common"
)

// Status is the authentication state of the client.
type Status string

const (
	StatusNotAuthenticated Status = "not_authenticated"
	StatusLoading          Status = "loading"
	StatusAuthenticated    Status = "authenticated"
	StatusExpired          Status = "expired"
)

// Phase is the top-level UI phase. Transitions are forward-only except for
// the sign-out return to PhaseAuthentication.
type Phase string

const (
	PhaseSplash         Phase = "splash"
	PhaseOnboarding     Phase = "onboarding"
	PhaseAuthentication Phase = "authentication"
	PhaseMain           Phase = "main"
)

// Snapshot is an immutable view of the session state. RefreshSeq increases
// on sign-in and on every data mutation; stores reload when it moves.
type Snapshot struct {
	Status     Status
	Phase      Phase
	User       *api.User
	RefreshSeq uint64
	Toast      string
}

// Authenticated reports whether user-scoped data may be read right now.
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// Clipboard abstracts the system clipboard so sign-out can clear it.
type Clipboard interface {
	Clear() error
}

// ValidationInterval is how often the armed validator re-checks the session
// with the backend.
const ValidationInterval = common.SessionValidationIntervalSeconds * time.Second
