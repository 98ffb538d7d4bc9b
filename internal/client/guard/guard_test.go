package guard

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/client/session"
	"github.com/stretchr/testify/assert"
)

func authenticated() session.Snapshot {
	return session.Snapshot{
		Status: session.StatusAuthenticated,
		Phase:  session.PhaseMain,
		User:   &api.User{ID: "u1"},
	}
}

func notAuthenticated() session.Snapshot {
	return session.Snapshot{Status: session.StatusNotAuthenticated, Phase: session.PhaseAuthentication}
}

func TestAuthenticatedRendersContent(t *testing.T) {
	g := New(RedirectMode)
	assert.Equal(t, RenderContent, g.Evaluate(authenticated()))
}

func TestLoadingRendersLoading(t *testing.T) {
	g := New(RedirectMode)
	snap := session.Snapshot{Status: session.StatusLoading}
	assert.Equal(t, RenderLoading, g.Evaluate(snap))
}

func TestRedirectModeRendersRedirect(t *testing.T) {
	g := New(RedirectMode)
	assert.Equal(t, RenderRedirect, g.Evaluate(notAuthenticated()))
}

func TestEmptyStateModeRendersEmptyState(t *testing.T) {
	g := New(EmptyStateMode)
	assert.Equal(t, RenderEmptyState, g.Evaluate(notAuthenticated()))
}

func TestDeauthenticationFiresCallbackBeforeReturn(t *testing.T) {
	g := New(RedirectMode)

	discarded := false
	g.OnDeauthenticated = func() { discarded = true }

	g.Evaluate(authenticated())
	decision := g.Evaluate(notAuthenticated())

	assert.Equal(t, RenderRedirect, decision)
	assert.True(t, discarded, "OnDeauthenticated must fire synchronously during Evaluate")
}

func TestDeauthenticationCallbackFiresOnce(t *testing.T) {
	g := New(RedirectMode)

	var calls int
	g.OnDeauthenticated = func() { calls++ }

	g.Evaluate(authenticated())
	g.Evaluate(notAuthenticated())
	g.Evaluate(notAuthenticated())

	assert.Equal(t, 1, calls)
}

func TestRedirectFiresAfterDelay(t *testing.T) {
	g := New(RedirectMode).WithDelay(20 * time.Millisecond)

	var redirected atomic.Bool
	g.Redirect = func() { redirected.Store(true) }

	g.Evaluate(notAuthenticated())

	assert.False(t, redirected.Load())
	assert.Eventually(t, redirected.Load, time.Second, 5*time.Millisecond)
}

func TestReauthenticationCancelsPendingRedirect(t *testing.T) {
	g := New(RedirectMode).WithDelay(50 * time.Millisecond)

	var redirected atomic.Bool
	g.Redirect = func() { redirected.Store(true) }

	g.Evaluate(notAuthenticated())
	g.Evaluate(authenticated())

	time.Sleep(100 * time.Millisecond)
	assert.False(t, redirected.Load())
}
