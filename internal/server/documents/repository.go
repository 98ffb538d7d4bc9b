package documents

import "context"

// Repository persists document metadata. All lookups are scoped by user_id;
// a document id from another account behaves as if it does not exist.
type Repository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, userID, id string) (*Document, error)
	ListByUser(ctx context.Context, userID string) ([]*Document, error)
	MarkUploaded(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
}
