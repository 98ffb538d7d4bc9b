package session

import (
	"context"
	"sync"
	"time"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/client/apiclient"
	"github.com/aureapp/aure/internal/logging"
)

// Mirror is the local persistent store wiped on sign-out. Implemented by the
// sqlite metadata repository.
type Mirror interface {
	Clear(ctx context.Context) error
}

type Manager struct {
	api       apiclient.Client
	logger    logging.Logger
	clipboard Clipboard
	mirror    Mirror
	interval  time.Duration

	mu         sync.Mutex
	status     Status
	phase      Phase
	user       *api.User
	refreshSeq uint64
	toast      string

	subs    map[int]chan Snapshot
	nextSub int

	stopValidator context.CancelFunc
}

// Option configures a Manager.
type Option func(*Manager)

// WithValidationInterval overrides the validator tick interval.
func WithValidationInterval(d time.Duration) Option {
	return func(m *Manager) { m.interval = d }
}

// WithMirror sets the local store wiped on sign-out.
func WithMirror(mirror Mirror) Option {
	return func(m *Manager) { m.mirror = mirror }
}

// WithClipboard sets the clipboard cleared on sign-out.
func WithClipboard(c Clipboard) Option {
	return func(m *Manager) { m.clipboard = c }
}

func NewManager(client apiclient.Client, logger logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		api:      client,
		logger:   logger.With("module", "session"),
		interval: ValidationInterval,
		status:   StatusNotAuthenticated,
		phase:    PhaseSplash,
		subs:     make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:     m.status,
		Phase:      m.phase,
		RefreshSeq: m.refreshSeq,
		Toast:      m.toast,
	}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}

// Subscribe registers a snapshot channel. Every mutation publishes one
// snapshot; slow subscribers miss intermediate states, never the latest.
// The returned cancel must be called to release the subscription.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++

	ch := make(chan Snapshot, 16)
	m.subs[id] = ch
	ch <- m.snapshotLocked()

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (m *Manager) publishLocked() {
	snap := m.snapshotLocked()
	for _, ch := range m.subs {
		select {
		case ch <- snap:
		default:
			// drop for slow subscribers; the next publish supersedes
		}
	}
}

// RefreshSignal returns the current refresh sequence number.
func (m *Manager) RefreshSignal() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshSeq
}

// NotifyDataChanged bumps the refresh signal so all mounted stores reload.
func (m *Manager) NotifyDataChanged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshSeq++
	m.publishLocked()
}

// SignIn authenticates against the backend. On success the status becomes
// Authenticated, the refresh signal bumps exactly once, and the validator is
// armed. On failure the status returns to NotAuthenticated with a toast; no
// automatic retry.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {

	m.mu.Lock()
	m.status = StatusLoading
	m.toast = ""
	m.publishLocked()
	m.mu.Unlock()

	session, err := m.api.SignIn(ctx, email, password)
	if err != nil {
		m.mu.Lock()
		m.status = StatusNotAuthenticated
		m.user = nil
		m.toast = err.Error()
		m.publishLocked()
		m.mu.Unlock()
		return err
	}

	m.completeAuth(session.User)
	return nil
}

// SignUp registers an account; the flow mirrors SignIn.
func (m *Manager) SignUp(ctx context.Context, displayName, email, password string) error {

	m.mu.Lock()
	m.status = StatusLoading
	m.toast = ""
	m.publishLocked()
	m.mu.Unlock()

	session, err := m.api.SignUp(ctx, displayName, email, password)
	if err != nil {
		m.mu.Lock()
		m.status = StatusNotAuthenticated
		m.user = nil
		m.toast = err.Error()
		m.publishLocked()
		m.mu.Unlock()
		return err
	}

	m.completeAuth(session.User)
	return nil
}

// Restore validates a token pair carried over from a previous run. When the
// backend confirms the session is still live the manager enters Authenticated
// without asking for credentials; on any failure it stays signed out and the
// normal sign-in flow takes over.
func (m *Manager) Restore(ctx context.Context) error {

	m.mu.Lock()
	m.status = StatusLoading
	m.publishLocked()
	m.mu.Unlock()

	user, err := m.api.CheckSession(ctx)
	if err != nil {
		m.mu.Lock()
		m.status = StatusNotAuthenticated
		m.user = nil
		m.publishLocked()
		m.mu.Unlock()
		return err
	}

	m.completeAuth(*user)
	return nil
}

func (m *Manager) completeAuth(user api.User) {
	m.mu.Lock()
	m.status = StatusAuthenticated
	m.user = &user
	m.phase = PhaseMain
	m.refreshSeq++
	m.publishLocked()
	m.mu.Unlock()

	m.armValidator()
}

// SignOut revokes the session. The API call is best-effort; local state is
// always torn down: validator disarmed, mirror wiped, clipboard cleared.
func (m *Manager) SignOut(ctx context.Context) {

	m.disarmValidator()

	if err := m.api.SignOut(ctx); err != nil {
		m.logger.Warn(ctx, "server sign-out failed", "error", err.Error())
	}

	if m.mirror != nil {
		if err := m.mirror.Clear(ctx); err != nil {
			m.logger.Warn(ctx, "mirror wipe failed", "error", err.Error())
		}
	}

	if m.clipboard != nil {
		if err := m.clipboard.Clear(); err != nil {
			m.logger.Warn(ctx, "clipboard clear failed", "error", err.Error())
		}
	}

	m.mu.Lock()
	m.status = StatusNotAuthenticated
	m.user = nil
	m.phase = PhaseAuthentication
	m.toast = ""
	m.publishLocked()
	m.mu.Unlock()
}

// AdvancePhase moves the UI phase one step forward. Backward moves are
// ignored; sign-out is the only way back to PhaseAuthentication.
func (m *Manager) AdvancePhase() {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhaseSplash:
		m.phase = PhaseOnboarding
	case PhaseOnboarding:
		m.phase = PhaseAuthentication
	case PhaseAuthentication:
		// PhaseMain is entered by successful auth only
		return
	default:
		return
	}
	m.publishLocked()
}

// CompleteOnboarding moves from onboarding to authentication.
func (m *Manager) CompleteOnboarding() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseOnboarding {
		return
	}
	m.phase = PhaseAuthentication
	m.publishLocked()
}

// armValidator starts the single session validator. Arming again replaces
// the previous one, so at most one runs per process.
func (m *Manager) armValidator() {
	m.mu.Lock()
	if m.stopValidator != nil {
		m.stopValidator()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.stopValidator = cancel
	interval := m.interval
	m.mu.Unlock()

	go m.validate(ctx, interval)
}

func (m *Manager) disarmValidator() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopValidator != nil {
		m.stopValidator()
		m.stopValidator = nil
	}
}

func (m *Manager) validate(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			_, err := m.api.CheckSession(checkCtx)
			cancel()

			if err == nil {
				continue
			}
			if ctx.Err() != nil {
				return
			}

			m.logger.Info(ctx, "session check failed, signing out", "error", err.Error())
			m.expire()
			return

		case <-ctx.Done():
			return
		}
	}
}

// expire marks the session Expired, then drops to NotAuthenticated so the
// guard redirects to authentication.
func (m *Manager) expire() {
	m.disarmValidator()

	m.mu.Lock()
	m.status = StatusExpired
	m.publishLocked()

	m.status = StatusNotAuthenticated
	m.user = nil
	m.phase = PhaseAuthentication
	m.toast = "Your session has expired. Please sign in again."
	m.publishLocked()
	m.mu.Unlock()
}
