package pin

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultMaxAttempts is the number of consecutive failures before lockout
	DefaultMaxAttempts = 5

	// DefaultLockout is how long verification stays locked after too many failures
	DefaultLockout = 5 * time.Minute
)

// Service handles setting and verifying the app lock PIN
type Service struct {
	repo        Repository
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

// NewService creates a new PIN service with default lockout policy
func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:        repo,
		maxAttempts: DefaultMaxAttempts,
		lockout:     DefaultLockout,
		now:         now,
	}
}

// SetPIN hashes and stores a new PIN, clearing any lockout state
func (s *Service) SetPIN(ctx context.Context, pin string) error {
	if !validPIN(pin) {
		return ErrInvalidPIN
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash pin: %w", err)
	}

	return s.repo.Save(ctx, &Credential{
		Hash:      string(hash),
		UpdatedAt: s.now(),
	})
}

// IsSet reports whether a PIN has been configured
func (s *Service) IsSet(ctx context.Context) (bool, error) {
	cred, err := s.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	return cred != nil, nil
}

// Verify checks a PIN attempt against the stored credential and applies the
// lockout policy. The returned VerifyResult is one of Success, Failed, or
// LockedOut.
func (s *Service) Verify(ctx context.Context, pin string) (VerifyResult, error) {
	cred, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrNoPINSet
	}

	now := s.now()
	if cred.LockedUntil != nil {
		if now.Before(*cred.LockedUntil) {
			return LockedOut{Until: *cred.LockedUntil}, nil
		}
		// Lockout expired; failures start over.
		cred.LockedUntil = nil
		cred.FailedAttempts = 0
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.Hash), []byte(pin)) == nil {
		cred.FailedAttempts = 0
		cred.LockedUntil = nil
		cred.UpdatedAt = now
		if err := s.repo.Save(ctx, cred); err != nil {
			return nil, err
		}
		return Success{}, nil
	}

	cred.FailedAttempts++
	cred.UpdatedAt = now

	if cred.FailedAttempts >= s.maxAttempts {
		until := now.Add(s.lockout)
		cred.LockedUntil = &until
		if err := s.repo.Save(ctx, cred); err != nil {
			return nil, err
		}
		return LockedOut{Until: until}, nil
	}

	if err := s.repo.Save(ctx, cred); err != nil {
		return nil, err
	}
	return Failed{AttemptsRemaining: s.maxAttempts - cred.FailedAttempts}, nil
}

func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 8 {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
