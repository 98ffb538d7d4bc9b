package records

import (
	"context"
	"strconv"
	"testing"

	"github.com/aureapp/aure/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobRepo struct {
	jobs   map[string]*Job
	nextID int
}

func newFakeJobRepo() *fakeJobRepo { return &fakeJobRepo{jobs: map[string]*Job{}} }

func (r *fakeJobRepo) ListByUser(_ context.Context, userID string) ([]*Job, error) {
	var out []*Job
	for _, j := range r.jobs {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) Create(_ context.Context, job *Job) (*Job, error) {
	r.nextID++
	j := *job
	j.ID = strconv.Itoa(r.nextID)
	r.jobs[j.ID] = &j
	return &j, nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *Job) error {
	existing, ok := r.jobs[job.ID]
	if !ok || existing.UserID != job.UserID {
		return common.ErrNotFound
	}
	j := *job
	r.jobs[j.ID] = &j
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, userID, id string) error {
	existing, ok := r.jobs[id]
	if !ok || existing.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) DeleteAllForUser(_ context.Context, userID string) error {
	for id, j := range r.jobs {
		if j.UserID == userID {
			delete(r.jobs, id)
		}
	}
	return nil
}

type fakePaymentRepo struct {
	payments map[string]*Payment
	nextID   int
}

func newFakePaymentRepo() *fakePaymentRepo { return &fakePaymentRepo{payments: map[string]*Payment{}} }

func (r *fakePaymentRepo) ListByUser(_ context.Context, userID string) ([]*Payment, error) {
	var out []*Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *Payment) (*Payment, error) {
	r.nextID++
	p := *payment
	p.ID = strconv.Itoa(r.nextID)
	r.payments[p.ID] = &p
	return &p, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *Payment) error {
	existing, ok := r.payments[payment.ID]
	if !ok || existing.UserID != payment.UserID {
		return common.ErrNotFound
	}
	p := *payment
	r.payments[p.ID] = &p
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, userID, id string) error {
	existing, ok := r.payments[id]
	if !ok || existing.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.payments, id)
	return nil
}

func (r *fakePaymentRepo) DeleteAllForUser(_ context.Context, userID string) error {
	for id, p := range r.payments {
		if p.UserID == userID {
			delete(r.payments, id)
		}
	}
	return nil
}

type fakeAgencyRepo struct {
	agencies map[string]*Agency
	nextID   int
}

func newFakeAgencyRepo() *fakeAgencyRepo { return &fakeAgencyRepo{agencies: map[string]*Agency{}} }

func (r *fakeAgencyRepo) ListByUser(_ context.Context, userID string) ([]*Agency, error) {
	var out []*Agency
	for _, a := range r.agencies {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAgencyRepo) Create(_ context.Context, agency *Agency) (*Agency, error) {
	r.nextID++
	a := *agency
	a.ID = strconv.Itoa(r.nextID)
	r.agencies[a.ID] = &a
	return &a, nil
}

func (r *fakeAgencyRepo) Update(_ context.Context, agency *Agency) error {
	existing, ok := r.agencies[agency.ID]
	if !ok || existing.UserID != agency.UserID {
		return common.ErrNotFound
	}
	a := *agency
	r.agencies[a.ID] = &a
	return nil
}

func (r *fakeAgencyRepo) Delete(_ context.Context, userID, id string) error {
	existing, ok := r.agencies[id]
	if !ok || existing.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.agencies, id)
	return nil
}

func (r *fakeAgencyRepo) DeleteAllForUser(_ context.Context, userID string) error {
	for id, a := range r.agencies {
		if a.UserID == userID {
			delete(r.agencies, id)
		}
	}
	return nil
}

func newTestService() *Service {
	return NewService(newFakeJobRepo(), newFakePaymentRepo(), newFakeAgencyRepo())
}

func TestCreateJobStampsOwnerAndDefaultsStatus(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	created, err := s.CreateJob(ctx, "u1", &Job{Title: "Runway", UserID: "spoofed"})
	require.NoError(t, err)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, JobPending, created.Status)
}

func TestCreateJobRejectsUnknownStatus(t *testing.T) {
	s := newTestService()

	_, err := s.CreateJob(context.Background(), "u1", &Job{Title: "Runway", Status: "paused"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateJobScopedToOwner(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	created, err := s.CreateJob(ctx, "u1", &Job{Title: "Runway"})
	require.NoError(t, err)

	created.Title = "Editorial"
	created.Status = JobConfirmed
	require.NoError(t, s.UpdateJob(ctx, "u1", created))

	// another user cannot update it even with the right ID
	err = s.UpdateJob(ctx, "u2", &Job{ID: created.ID, Title: "Hijacked", Status: JobConfirmed})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListJobsOnlyReturnsOwn(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.CreateJob(ctx, "u1", &Job{Title: "Mine"})
	require.NoError(t, err)
	_, err = s.CreateJob(ctx, "u2", &Job{Title: "Theirs"})
	require.NoError(t, err)

	jobs, err := s.ListJobs(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Mine", jobs[0].Title)
}

func TestCreatePaymentDefaults(t *testing.T) {
	s := newTestService()

	created, err := s.CreatePayment(context.Background(), "u1", &Payment{AmountCents: 125000})
	require.NoError(t, err)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, PaymentExpected, created.Status)
	assert.Equal(t, "USD", created.Currency)
}

func TestCreatePaymentRejectsUnknownStatus(t *testing.T) {
	s := newTestService()

	_, err := s.CreatePayment(context.Background(), "u1", &Payment{AmountCents: 100, Status: "pending"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestDeleteAllScopedToOwner(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.CreateAgency(ctx, "u1", &Agency{Name: "Elite"})
	require.NoError(t, err)
	_, err = s.CreateAgency(ctx, "u2", &Agency{Name: "Other"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAllAgencies(ctx, "u1"))

	mine, err := s.ListAgencies(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := s.ListAgencies(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestDeleteJobUnknownID(t *testing.T) {
	s := newTestService()

	err := s.DeleteJob(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
