package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/common"
	"github.com/aureapp/aure/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu           sync.Mutex
	session      *api.Session
	signInErr    error
	checkErr     error
	signInCalls  int
	checkCalls   int
	signOutCalls int
}

func (f *fakeAPI) SignIn(_ context.Context, _, _ string) (*api.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signInCalls++
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeAPI) SignUp(_ context.Context, _, _, _ string) (*api.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeAPI) CheckSession(_ context.Context) (*api.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkCalls++
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return &f.session.User, nil
}

func (f *fakeAPI) SignOut(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOutCalls++
	return nil
}

func (f *fakeAPI) ListJobs(context.Context) ([]api.Job, error)             { return nil, nil }
func (f *fakeAPI) CreateJob(context.Context, api.Job) (*api.Job, error)    { return nil, nil }
func (f *fakeAPI) UpdateJob(context.Context, api.Job) error                { return nil }
func (f *fakeAPI) DeleteJob(context.Context, string) error                 { return nil }
func (f *fakeAPI) ListPayments(context.Context) ([]api.Payment, error)     { return nil, nil }
func (f *fakeAPI) CreatePayment(context.Context, api.Payment) (*api.Payment, error) {
	return nil, nil
}
func (f *fakeAPI) UpdatePayment(context.Context, api.Payment) error        { return nil }
func (f *fakeAPI) DeletePayment(context.Context, string) error             { return nil }
func (f *fakeAPI) ListAgencies(context.Context) ([]api.Agency, error)      { return nil, nil }
func (f *fakeAPI) CreateAgency(context.Context, api.Agency) (*api.Agency, error) {
	return nil, nil
}
func (f *fakeAPI) UpdateAgency(context.Context, api.Agency) error          { return nil }
func (f *fakeAPI) DeleteAgency(context.Context, string) error              { return nil }
func (f *fakeAPI) ListDocuments(context.Context) ([]api.Document, error)   { return nil, nil }
func (f *fakeAPI) RequestUpload(context.Context, api.UploadRequest) (*api.UploadResponse, error) {
	return nil, nil
}
func (f *fakeAPI) MarkUploaded(context.Context, string) error            { return nil }
func (f *fakeAPI) DownloadURL(context.Context, string) (string, error)   { return "", nil }
func (f *fakeAPI) Tokens() (string, string)                              { return "", "" }
func (f *fakeAPI) SetTokens(string, string)                              {}

type fakeClipboard struct {
	cleared bool
}

func (f *fakeClipboard) Clear() error {
	f.cleared = true
	return nil
}

type fakeMirror struct {
	cleared bool
}

func (f *fakeMirror) Clear(context.Context) error {
	f.cleared = true
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		session: &api.Session{
			User:      api.User{ID: "u1", Email: "a@b.c", DisplayName: "Ana"},
			TokenPair: api.TokenPair{AccessToken: "at", RefreshToken: "rt"},
		},
	}
}

// waitFor drains snapshots until cond matches or the timeout hits.
func waitFor(t *testing.T, ch <-chan Snapshot, cond func(Snapshot) bool) Snapshot {
	t.Helper()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case snap := <-ch:
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("condition not reached before timeout")
		}
	}
}

func TestSignInSuccess(t *testing.T) {
	f := newFakeAPI()
	m := NewManager(f, testLogger())

	seqBefore := m.RefreshSignal()

	err := m.SignIn(context.Background(), "a@b.c", "password1")
	require.NoError(t, err)
	defer m.SignOut(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.Equal(t, PhaseMain, snap.Phase)
	require.NotNil(t, snap.User)
	assert.Equal(t, "u1", snap.User.ID)
	// the refresh signal bumps exactly once per sign-in
	assert.Equal(t, seqBefore+1, snap.RefreshSeq)
}

func TestSignInFailure(t *testing.T) {
	f := newFakeAPI()
	f.signInErr = common.ErrUnauthorized
	m := NewManager(f, testLogger())

	err := m.SignIn(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)

	snap := m.Snapshot()
	assert.Equal(t, StatusNotAuthenticated, snap.Status)
	assert.Nil(t, snap.User)
	assert.NotEmpty(t, snap.Toast)
	assert.Equal(t, uint64(0), snap.RefreshSeq)
}

func TestRestoreEntersAuthenticatedWithoutCredentials(t *testing.T) {
	f := newFakeAPI()
	m := NewManager(f, testLogger())

	require.NoError(t, m.Restore(context.Background()))
	defer m.SignOut(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.Equal(t, PhaseMain, snap.Phase)
	require.NotNil(t, snap.User)
	assert.Equal(t, "u1", snap.User.ID)
	assert.Equal(t, uint64(1), snap.RefreshSeq)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, 1, f.checkCalls)
	assert.Equal(t, 0, f.signInCalls)
}

func TestRestoreFailureStaysSignedOut(t *testing.T) {
	f := newFakeAPI()
	f.checkErr = common.ErrUnauthorized
	m := NewManager(f, testLogger())

	err := m.Restore(context.Background())
	require.Error(t, err)

	snap := m.Snapshot()
	assert.Equal(t, StatusNotAuthenticated, snap.Status)
	assert.Nil(t, snap.User)
	assert.Equal(t, uint64(0), snap.RefreshSeq)
}

func TestRestoreArmsValidator(t *testing.T) {
	f := newFakeAPI()
	m := NewManager(f, testLogger(), WithValidationInterval(10*time.Millisecond))

	require.NoError(t, m.Restore(context.Background()))
	defer m.SignOut(context.Background())

	assert.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.checkCalls > 1
	}, time.Second, 5*time.Millisecond)
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	m := NewManager(newFakeAPI(), testLogger())

	ch, cancel := m.Subscribe()
	defer cancel()

	snap := <-ch
	assert.Equal(t, StatusNotAuthenticated, snap.Status)
	assert.Equal(t, PhaseSplash, snap.Phase)
}

func TestValidatorExpiresSessionOnFailedCheck(t *testing.T) {
	f := newFakeAPI()
	m := NewManager(f, testLogger(), WithValidationInterval(10*time.Millisecond))

	require.NoError(t, m.SignIn(context.Background(), "a@b.c", "password1"))

	ch, cancel := m.Subscribe()
	defer cancel()

	f.mu.Lock()
	f.checkErr = common.ErrSessionRevoked
	f.mu.Unlock()

	sawExpired := false
	snap := waitFor(t, ch, func(s Snapshot) bool {
		if s.Status == StatusExpired {
			sawExpired = true
		}
		return s.Status == StatusNotAuthenticated
	})

	assert.True(t, sawExpired, "expected an Expired snapshot before NotAuthenticated")
	assert.Equal(t, PhaseAuthentication, snap.Phase)
	assert.Nil(t, snap.User)

	// the validator disarmed itself: no further checks accumulate
	f.mu.Lock()
	calls := f.checkCalls
	f.mu.Unlock()
	time.Sleep(50 * time.Millisecond)
	f.mu.Lock()
	assert.Equal(t, calls, f.checkCalls)
	f.mu.Unlock()
}

func TestValidatorStopsOnSignOut(t *testing.T) {
	f := newFakeAPI()
	m := NewManager(f, testLogger(), WithValidationInterval(10*time.Millisecond))

	require.NoError(t, m.SignIn(context.Background(), "a@b.c", "password1"))
	m.SignOut(context.Background())

	f.mu.Lock()
	calls := f.checkCalls
	f.mu.Unlock()
	time.Sleep(50 * time.Millisecond)
	f.mu.Lock()
	assert.Equal(t, calls, f.checkCalls)
	f.mu.Unlock()
}

func TestSignOutTearsDownLocalState(t *testing.T) {
	f := newFakeAPI()
	clip := &fakeClipboard{}
	mirror := &fakeMirror{}
	m := NewManager(f, testLogger(), WithClipboard(clip), WithMirror(mirror))

	require.NoError(t, m.SignIn(context.Background(), "a@b.c", "password1"))
	m.SignOut(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, StatusNotAuthenticated, snap.Status)
	assert.Equal(t, PhaseAuthentication, snap.Phase)
	assert.Nil(t, snap.User)
	assert.True(t, clip.cleared)
	assert.True(t, mirror.cleared)
	assert.Equal(t, 1, f.signOutCalls)
}

func TestNotifyDataChangedBumpsSignal(t *testing.T) {
	m := NewManager(newFakeAPI(), testLogger())

	before := m.RefreshSignal()
	m.NotifyDataChanged()
	assert.Equal(t, before+1, m.RefreshSignal())
}

func TestPhaseAdvancesForwardOnly(t *testing.T) {
	m := NewManager(newFakeAPI(), testLogger())

	assert.Equal(t, PhaseSplash, m.Snapshot().Phase)

	m.AdvancePhase()
	assert.Equal(t, PhaseOnboarding, m.Snapshot().Phase)

	m.CompleteOnboarding()
	assert.Equal(t, PhaseAuthentication, m.Snapshot().Phase)

	// no backward move, no skip into main
	m.AdvancePhase()
	assert.Equal(t, PhaseAuthentication, m.Snapshot().Phase)
	m.CompleteOnboarding()
	assert.Equal(t, PhaseAuthentication, m.Snapshot().Phase)
}
