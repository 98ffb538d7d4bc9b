// Package httpapi exposes the Aure services over a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/aureapp/aure/internal/logging"
	"github.com/aureapp/aure/internal/server/documents"
	"github.com/aureapp/aure/internal/server/records"
	"github.com/aureapp/aure/internal/server/users"
	"github.com/go-chi/chi/v5"

	srvmetrics "github.com/aureapp/aure/internal/server/metrics"
)

// UserService is the auth surface the handlers call.
type UserService interface {
	SignUp(ctx context.Context, displayName, email string, password []byte) (*users.User, *users.TokenPair, error)
	SignIn(ctx context.Context, email string, password []byte) (*users.User, *users.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*users.TokenPair, error)
	CheckSession(ctx context.Context, userID, sessionID string) (*users.User, error)
	SignOut(ctx context.Context, userID, sessionID string) error
}

// RecordService is the domain-record surface the handlers call.
type RecordService interface {
	ListJobs(ctx context.Context, userID string) ([]*records.Job, error)
	CreateJob(ctx context.Context, userID string, job *records.Job) (*records.Job, error)
	UpdateJob(ctx context.Context, userID string, job *records.Job) error
	DeleteJob(ctx context.Context, userID, id string) error
	DeleteAllJobs(ctx context.Context, userID string) error

	ListPayments(ctx context.Context, userID string) ([]*records.Payment, error)
	CreatePayment(ctx context.Context, userID string, payment *records.Payment) (*records.Payment, error)
	UpdatePayment(ctx context.Context, userID string, payment *records.Payment) error
	DeletePayment(ctx context.Context, userID, id string) error
	DeleteAllPayments(ctx context.Context, userID string) error

	ListAgencies(ctx context.Context, userID string) ([]*records.Agency, error)
	CreateAgency(ctx context.Context, userID string, agency *records.Agency) (*records.Agency, error)
	UpdateAgency(ctx context.Context, userID string, agency *records.Agency) error
	DeleteAgency(ctx context.Context, userID, id string) error
	DeleteAllAgencies(ctx context.Context, userID string) error
}

// DocumentService is the tax-document surface the handlers call.
type DocumentService interface {
	RequestUpload(ctx context.Context, userID, fileName, contentType string, sizeBytes int64, year int) (*documents.Document, string, error)
	MarkUploaded(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*documents.Document, error)
	DownloadURL(ctx context.Context, userID, id string) (string, error)
	Delete(ctx context.Context, userID, id string) error
}

type Server struct {
	address        string
	logger         logging.Logger
	users          UserService
	records        RecordService
	documents      DocumentService
	sessions       users.SessionIndex
	metrics        srvmetrics.Recorder
	metricsHandler http.Handler
	jwtSecret      []byte
}

func NewServer(
	address string,
	logger logging.Logger,
	us UserService,
	rs RecordService,
	ds DocumentService,
	sessions users.SessionIndex,
	rec srvmetrics.Recorder,
	metricsHandler http.Handler,
	secretKey string,
) *Server {
	return &Server{
		address:        address,
		logger:         logger.With("module", "httpapi"),
		users:          us,
		records:        rs,
		documents:      ds,
		sessions:       sessions,
		metrics:        rec,
		metricsHandler: metricsHandler,
		jwtSecret:      []byte(secretKey),
	}
}

// Router assembles the chi route tree with the middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(Recoverer(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignUp)
		r.Post("/auth/signin", s.handleSignIn)
		r.Post("/auth/refresh", s.handleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(s.Authenticator)

			r.Get("/auth/session", s.handleSession)
			r.Post("/auth/signout", s.handleSignOut)

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", s.handleListJobs)
				r.Post("/", s.handleCreateJob)
				r.Put("/{id}", s.handleUpdateJob)
				r.Delete("/{id}", s.handleDeleteJob)
				r.Delete("/", s.handleDeleteAllJobs)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", s.handleListPayments)
				r.Post("/", s.handleCreatePayment)
				r.Put("/{id}", s.handleUpdatePayment)
				r.Delete("/{id}", s.handleDeletePayment)
				r.Delete("/", s.handleDeleteAllPayments)
			})

			r.Route("/agencies", func(r chi.Router) {
				r.Get("/", s.handleListAgencies)
				r.Post("/", s.handleCreateAgency)
				r.Put("/{id}", s.handleUpdateAgency)
				r.Delete("/{id}", s.handleDeleteAgency)
				r.Delete("/", s.handleDeleteAllAgencies)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", s.handleListDocuments)
				r.Post("/", s.handleRequestUpload)
				r.Post("/{id}/uploaded", s.handleMarkUploaded)
				r.Get("/{id}/url", s.handleDownloadURL)
				r.Delete("/{id}", s.handleDeleteDocument)
			})
		})
	})

	return r
}

// Run serves until ctx is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
