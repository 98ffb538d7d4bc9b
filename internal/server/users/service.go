package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aureapp/aure/internal/common"
	"github.com/aureapp/aure/internal/server/auth"
	"github.com/aureapp/aure/internal/server/config"
	"github.com/aureapp/aure/internal/server/refreshtokens"
	"github.com/google/uuid"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionIndex records which sessions are live, so sign-out can revoke
// access tokens before they expire. Implemented by sessionindex.RedisIndex.
type SessionIndex interface {
	Add(ctx context.Context, userID, sessionID string, ttl time.Duration) error
	Exists(ctx context.Context, userID, sessionID string) (bool, error)
	Remove(ctx context.Context, userID, sessionID string) error
}

// dummyHash is verified against when the email is unknown, so response
// timing does not reveal whether an account exists.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=4$AAAAAAAAAAAAAAAAAAAAAA$u1ZzFZ5aLJYAmGy0PMLzxtCYMLcHMw+ROFzpFkDpHU8"

type Service struct {
	repo                         Repository
	refreshTokenRepo             refreshtokens.Repository
	sessions                     SessionIndex
	limiter                      *signInLimiter
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewService(repo Repository, refreshTokenRepo refreshtokens.Repository, sessions SessionIndex, cfg *config.Config) *Service {
	return &Service{
		repo:                         repo,
		refreshTokenRepo:             refreshTokenRepo,
		sessions:                     sessions,
		limiter:                      newSignInLimiter(cfg.SignInRatePerMinute, cfg.SignInBurst),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// StartLimiterCleanup runs the sign-in limiter sweep until ctx is cancelled.
func (s *Service) StartLimiterCleanup(ctx context.Context) {
	s.limiter.StartCleanup(ctx, 5*time.Minute)
}

// StartTokenCleanup periodically deletes expired refresh-token rows until
// ctx is cancelled. Rotation already removes consumed tokens; this sweep
// catches the pairs of sessions that were simply abandoned.
func (s *Service) StartTokenCleanup(ctx context.Context) {
	s.runTokenCleanup(ctx, time.Hour)
}

func (s *Service) runTokenCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.refreshTokenRepo.DeleteExpired(ctx)
		}
	}
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || len(email) > 254 {
		return common.ErrInvalidEmail
	}
	return nil
}

func validatePassword(password []byte) error {
	if len(password) < 8 {
		return common.ErrInvalidPassword
	}
	return nil
}

// SignUp creates an account and immediately opens a session for it.
func (s *Service) SignUp(ctx context.Context, displayName, email string, password []byte) (*User, *TokenPair, error) {

	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, common.ErrInternal
	}

	user, err := s.repo.Create(ctx, &User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// SignIn verifies credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email string, password []byte) (*User, *TokenPair, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	if !s.limiter.Allow(email) {
		return nil, nil, common.ErrTooManyAttempts
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// burn the same hashing cost as the happy path
			_, _ = auth.VerifyPassword(password, dummyHash)
			return nil, nil, common.ErrUnauthorized
		}
		return nil, nil, common.ErrInternal
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, nil, common.ErrUnauthorized
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// openSession mints a token pair for a fresh session ID and registers the
// session in the index.
func (s *Service) openSession(ctx context.Context, user *User) (*TokenPair, error) {
	sessionID := uuid.NewString()

	pair, err := s.issueTokens(ctx, user.ID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Add(ctx, user.ID, sessionID, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrInternal
	}

	return pair, nil
}

func (s *Service) issueTokens(ctx context.Context, userID, sessionID string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, sessionID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrInternal
	}

	err = s.refreshTokenRepo.Create(ctx, userID, sessionID, refreshToken, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a new
// pair is issued for the same session. Expired or unknown tokens fail with
// ErrUnauthorized.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {

	userID, sessionID, err := s.refreshTokenRepo.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrRefreshTokenExpired) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	live, err := s.sessions.Exists(ctx, userID, sessionID)
	if err != nil {
		return nil, common.ErrInternal
	}
	if !live {
		return nil, common.ErrUnauthorized
	}

	pair, err := s.issueTokens(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	// keep the session alive for another refresh window
	if err := s.sessions.Add(ctx, userID, sessionID, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrInternal
	}

	return pair, nil
}

// CheckSession reports whether the session is still live and returns the
// account it belongs to. This is what the client's periodic validator calls.
func (s *Service) CheckSession(ctx context.Context, userID, sessionID string) (*User, error) {

	live, err := s.sessions.Exists(ctx, userID, sessionID)
	if err != nil {
		return nil, common.ErrInternal
	}
	if !live {
		return nil, common.ErrSessionRevoked
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	return user, nil
}

// SignOut revokes the session and deletes its refresh tokens. Idempotent.
func (s *Service) SignOut(ctx context.Context, userID, sessionID string) error {

	if err := s.refreshTokenRepo.DeleteBySession(ctx, userID, sessionID); err != nil {
		return common.ErrInternal
	}

	if err := s.sessions.Remove(ctx, userID, sessionID); err != nil {
		return common.ErrInternal
	}

	return nil
}
