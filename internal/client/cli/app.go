// Package cli is the interactive terminal frontend. Every data screen is a
// guard-wrapped store; what gets printed is decided by the guard, never by
// looking at raw session fields.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/client/apiclient"
	"github.com/aureapp/aure/internal/client/config"
	"github.com/aureapp/aure/internal/client/guard"
	"github.com/aureapp/aure/internal/client/repositories/metadata"
	"github.com/aureapp/aure/internal/client/services"
	"github.com/aureapp/aure/internal/client/session"
	"github.com/aureapp/aure/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	api     apiclient.Client
	session *session.Manager
	mirror  metadata.Repository

	jobs      *services.Loader[api.Job]
	payments  *services.Loader[api.Payment]
	agencies  *services.Loader[api.Agency]
	documents *services.Loader[api.Document]

	screenGuard *guard.Guard

	reader *bufio.Reader
}

// oscClipboard clears the terminal clipboard with an OSC 52 escape.
type oscClipboard struct {
	w io.Writer
}

func (c *oscClipboard) Clear() error {
	_, err := fmt.Fprint(c.w, "\x1b]52;c;!\a")
	return err
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	ctx := context.Background()

	db, err := metadata.InitDatabase(ctx, c.DBFileName)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	mirror := metadata.NewSQLiteRepository(db)

	apiClient := apiclient.NewHTTPClient(c.ServerURL)

	// a mirrored token pair means a previous run left an open session
	restored := false
	if access, err := mirror.Get(ctx, metadata.KeyAccessToken); err == nil && len(access) > 0 {
		refresh, _ := mirror.Get(ctx, metadata.KeyRefreshToken)
		apiClient.SetTokens(string(access), string(refresh))
		restored = true
	}

	sm := session.NewManager(apiClient, logger,
		session.WithMirror(mirror),
		session.WithClipboard(&oscClipboard{w: os.Stdout}),
		session.WithValidationInterval(c.SessionValidationInterval),
	)

	a := &App{
		config:      c,
		logger:      logger,
		api:         apiClient,
		session:     sm,
		mirror:      mirror,
		jobs:        services.NewJobStore(sm, logger, apiClient),
		payments:    services.NewPaymentStore(sm, logger, apiClient),
		agencies:    services.NewAgencyStore(sm, logger, apiClient),
		documents:   services.NewDocumentStore(sm, logger, apiClient),
		screenGuard: guard.New(guard.RedirectMode),
		reader:      bufio.NewReader(os.Stdin),
	}

	a.screenGuard.OnDeauthenticated = func() {
		a.jobs.Discard()
		a.payments.Discard()
		a.agencies.Discard()
		a.documents.Discard()
	}
	a.screenGuard.Redirect = func() {
		fmt.Println("Please sign in to continue.")
	}

	if restored {
		if err := sm.Restore(ctx); err != nil {
			logger.Info(ctx, "mirrored session is no longer valid", "error", err.Error())
		} else {
			// the restore may have rotated the pair via refresh
			a.persistSession(ctx)
		}
	}

	return a, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

// persistSession mirrors the token pair locally. Both keys are written in
// one transaction so a crash cannot leave half a pair behind.
func (a *App) persistSession(ctx context.Context) {
	access, refresh := a.api.Tokens()
	err := a.mirror.SetAll(ctx, map[string][]byte{
		metadata.KeyAccessToken:  []byte(access),
		metadata.KeyRefreshToken: []byte(refresh),
	})
	if err != nil {
		a.logger.Warn(ctx, "failed to mirror token pair", "error", err.Error())
	}
}

// Run starts the store watchers and enters the REPL.
func (a *App) Run(ctx context.Context) {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, start := range []func(context.Context){
		a.watch(a.jobs.Watch),
		a.watch(a.payments.Watch),
		a.watch(a.agencies.Watch),
		a.watch(a.documents.Watch),
	} {
		go start(ctx)
	}

	a.Root(ctx)
}

func (a *App) watch(w func(context.Context, <-chan session.Snapshot)) func(context.Context) {
	return func(ctx context.Context) {
		snapshots, unsubscribe := a.session.Subscribe()
		defer unsubscribe()
		w(ctx, snapshots)
	}
}
