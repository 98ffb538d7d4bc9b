// Package apiclient talks to the Aure backend over its JSON HTTP API.
package apiclient

import (
	"context"
	"errors"

	"github.com/aureapp/aure/internal/api"
)

// ErrUnavailable is returned when the backend cannot be reached.
var ErrUnavailable = errors.New("server unavailable")

// Client is the backend surface the session manager and the data loaders
// consume. The HTTP implementation holds the token pair; callers never see
// raw tokens except through Tokens/SetTokens for the offline mirror.
type Client interface {
	SignUp(ctx context.Context, displayName, email, password string) (*api.Session, error)
	SignIn(ctx context.Context, email, password string) (*api.Session, error)
	CheckSession(ctx context.Context) (*api.User, error)
	SignOut(ctx context.Context) error

	ListJobs(ctx context.Context) ([]api.Job, error)
	CreateJob(ctx context.Context, job api.Job) (*api.Job, error)
	UpdateJob(ctx context.Context, job api.Job) error
	DeleteJob(ctx context.Context, id string) error

	ListPayments(ctx context.Context) ([]api.Payment, error)
	CreatePayment(ctx context.Context, payment api.Payment) (*api.Payment, error)
	UpdatePayment(ctx context.Context, payment api.Payment) error
	DeletePayment(ctx context.Context, id string) error

	ListAgencies(ctx context.Context) ([]api.Agency, error)
	CreateAgency(ctx context.Context, agency api.Agency) (*api.Agency, error)
	UpdateAgency(ctx context.Context, agency api.Agency) error
	DeleteAgency(ctx context.Context, id string) error

	ListDocuments(ctx context.Context) ([]api.Document, error)
	RequestUpload(ctx context.Context, req api.UploadRequest) (*api.UploadResponse, error)
	MarkUploaded(ctx context.Context, id string) error
	DownloadURL(ctx context.Context, id string) (string, error)

	// Tokens exposes the current pair so it can be mirrored locally;
	// SetTokens restores a mirrored pair on startup.
	Tokens() (access, refresh string)
	SetTokens(access, refresh string)
}
