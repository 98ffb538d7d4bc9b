package records

import (
	"context"
	"fmt"

	"github.com/aureapp/aure/internal/common"
)

// Service enforces ownership stamping and value defaults in front of the
// repositories. The owner always comes from the authenticated request, never
// from the payload.
type Service struct {
	jobs     JobRepository
	payments PaymentRepository
	agencies AgencyRepository
}

func NewService(jobs JobRepository, payments PaymentRepository, agencies AgencyRepository) *Service {
	return &Service{jobs: jobs, payments: payments, agencies: agencies}
}

func validJobStatus(s JobStatus) bool {
	switch s {
	case JobPending, JobConfirmed, JobCompleted, JobCancelled:
		return true
	}
	return false
}

func validPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentExpected, PaymentInvoiced, PaymentReceived, PaymentOverdue:
		return true
	}
	return false
}

func (s *Service) ListJobs(ctx context.Context, userID string) ([]*Job, error) {
	return s.jobs.ListByUser(ctx, userID)
}

func (s *Service) CreateJob(ctx context.Context, userID string, job *Job) (*Job, error) {
	job.UserID = userID
	if job.Status == "" {
		job.Status = JobPending
	}
	if !validJobStatus(job.Status) {
		return nil, fmt.Errorf("%w: job status %q", common.ErrValidation, job.Status)
	}
	return s.jobs.Create(ctx, job)
}

func (s *Service) UpdateJob(ctx context.Context, userID string, job *Job) error {
	job.UserID = userID
	if !validJobStatus(job.Status) {
		return fmt.Errorf("%w: job status %q", common.ErrValidation, job.Status)
	}
	return s.jobs.Update(ctx, job)
}

func (s *Service) DeleteJob(ctx context.Context, userID, id string) error {
	return s.jobs.Delete(ctx, userID, id)
}

func (s *Service) DeleteAllJobs(ctx context.Context, userID string) error {
	return s.jobs.DeleteAllForUser(ctx, userID)
}

func (s *Service) ListPayments(ctx context.Context, userID string) ([]*Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

func (s *Service) CreatePayment(ctx context.Context, userID string, payment *Payment) (*Payment, error) {
	payment.UserID = userID
	if payment.Status == "" {
		payment.Status = PaymentExpected
	}
	if !validPaymentStatus(payment.Status) {
		return nil, fmt.Errorf("%w: payment status %q", common.ErrValidation, payment.Status)
	}
	if payment.Currency == "" {
		payment.Currency = "USD"
	}
	return s.payments.Create(ctx, payment)
}

func (s *Service) UpdatePayment(ctx context.Context, userID string, payment *Payment) error {
	payment.UserID = userID
	if !validPaymentStatus(payment.Status) {
		return fmt.Errorf("%w: payment status %q", common.ErrValidation, payment.Status)
	}
	return s.payments.Update(ctx, payment)
}

func (s *Service) DeletePayment(ctx context.Context, userID, id string) error {
	return s.payments.Delete(ctx, userID, id)
}

func (s *Service) DeleteAllPayments(ctx context.Context, userID string) error {
	return s.payments.DeleteAllForUser(ctx, userID)
}

func (s *Service) ListAgencies(ctx context.Context, userID string) ([]*Agency, error) {
	return s.agencies.ListByUser(ctx, userID)
}

func (s *Service) CreateAgency(ctx context.Context, userID string, agency *Agency) (*Agency, error) {
	agency.UserID = userID
	return s.agencies.Create(ctx, agency)
}

func (s *Service) UpdateAgency(ctx context.Context, userID string, agency *Agency) error {
	agency.UserID = userID
	return s.agencies.Update(ctx, agency)
}

func (s *Service) DeleteAgency(ctx context.Context, userID, id string) error {
	return s.agencies.Delete(ctx, userID, id)
}

func (s *Service) DeleteAllAgencies(ctx context.Context, userID string) error {
	return s.agencies.DeleteAllForUser(ctx, userID)
}
