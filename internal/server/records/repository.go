package records

import "context"

// JobRepository persists jobs. Update and Delete match on (id, user_id) and
// return common.ErrNotFound when nothing matches, so one user can never
// touch another user's rows.
type JobRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*Job, error)
	Create(ctx context.Context, job *Job) (*Job, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

type PaymentRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*Payment, error)
	Create(ctx context.Context, payment *Payment) (*Payment, error)
	Update(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

type AgencyRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*Agency, error)
	Create(ctx context.Context, agency *Agency) (*Agency, error)
	Update(ctx context.Context, agency *Agency) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
