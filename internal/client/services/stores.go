package services

import (
	"context"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/client/apiclient"
	"github.com/aureapp/aure/internal/logging"
)

// NewJobStore builds the loader for booked jobs.
func NewJobStore(state SessionState, logger logging.Logger, client apiclient.Client) *Loader[api.Job] {
	return NewLoader(state, logger, "jobs",
		func(ctx context.Context) ([]api.Job, error) { return client.ListJobs(ctx) },
		func(j api.Job) string { return j.UserID },
	)
}

// NewPaymentStore builds the loader for payments.
func NewPaymentStore(state SessionState, logger logging.Logger, client apiclient.Client) *Loader[api.Payment] {
	return NewLoader(state, logger, "payments",
		func(ctx context.Context) ([]api.Payment, error) { return client.ListPayments(ctx) },
		func(p api.Payment) string { return p.UserID },
	)
}

// NewAgencyStore builds the loader for agencies.
func NewAgencyStore(state SessionState, logger logging.Logger, client apiclient.Client) *Loader[api.Agency] {
	return NewLoader(state, logger, "agencies",
		func(ctx context.Context) ([]api.Agency, error) { return client.ListAgencies(ctx) },
		func(a api.Agency) string { return a.UserID },
	)
}

// NewDocumentStore builds the loader for tax documents.
func NewDocumentStore(state SessionState, logger logging.Logger, client apiclient.Client) *Loader[api.Document] {
	return NewLoader(state, logger, "documents",
		func(ctx context.Context) ([]api.Document, error) { return client.ListDocuments(ctx) },
		func(d api.Document) string { return d.UserID },
	)
}
