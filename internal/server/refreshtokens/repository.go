// Package refreshtokens stores single-use rotating refresh tokens.
package refreshtokens

import (
	"context"
	"time"
)

type Repository interface {
	// Create stores a refresh token bound to a user/session with the given
	// validity window.
	Create(ctx context.Context, userID, sessionID, token string, validity time.Duration) error

	// Consume atomically deletes the token and returns the user/session it
	// belonged to. Unknown tokens return common.ErrNotFound; known but
	// expired tokens return common.ErrRefreshTokenExpired.
	Consume(ctx context.Context, token string) (userID, sessionID string, err error)

	// DeleteBySession removes all refresh tokens of one session (sign-out).
	DeleteBySession(ctx context.Context, userID, sessionID string) error

	// DeleteExpired prunes tokens past their expiry.
	DeleteExpired(ctx context.Context) (int64, error)
}
