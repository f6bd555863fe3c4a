package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

// UserCredentials pairs a user with the password hash needed to verify a
// login attempt.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// CredentialStore exposes the user lookup required by the auth service.
type CredentialStore interface {
	GetUserCredentialsByUsername(ctx context.Context, username string) (UserCredentials, error)
}

// LoginAttempt is one line of the login audit trail.
type LoginAttempt struct {
	Username   string
	At         time.Time
	Successful bool
}

// ActivityLog records every login attempt, successful or not. Recording
// failures must not block the login flow, so implementations report errors
// but callers only log them.
type ActivityLog interface {
	RecordLoginAttempt(ctx context.Context, attempt LoginAttempt) error
	ListLoginAttempts(ctx context.Context) ([]LoginAttempt, error)
}

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// AuthService validates operator credentials. Every attempt is appended to
// the activity log regardless of outcome.
type AuthService struct {
	credentials    CredentialStore
	activity       ActivityLog
	verifyPassword PasswordVerifier
	now            func() time.Time
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(credentials CredentialStore, activity ActivityLog, verify PasswordVerifier, now func() time.Time, logger *slog.Logger) *AuthService {
	if verify == nil {
		verify = VerifyPassword
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		credentials:    credentials,
		activity:       activity,
		verifyPassword: verify,
		now:            now,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Authenticate verifies the username and password pair. A blank field, an
// unknown username, and a wrong password all collapse to
// ErrInvalidCredentials so the response does not reveal which part failed.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (user User, err error) {
	username = strings.TrimSpace(username)

	logger := s.loggerWith(ctx, "Authenticate", "username", username)
	defer func() {
		s.recordAttempt(ctx, logger, username, err == nil)
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "authentication succeeded")
	}()

	if username == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	creds, err := s.credentials.GetUserCredentialsByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, wrapStore("get user credentials", err)
	}

	if err := s.verifyPassword(creds.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return creds.User, nil
}

func (s *AuthService) recordAttempt(ctx context.Context, logger *slog.Logger, username string, successful bool) {
	if s.activity == nil {
		return
	}
	attempt := LoginAttempt{Username: username, At: s.now(), Successful: successful}
	if err := s.activity.RecordLoginAttempt(ctx, attempt); err != nil {
		logger.ErrorContext(ctx, "failed to record login attempt", "error", err)
	}
}
