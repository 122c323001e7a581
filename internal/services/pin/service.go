package pin

import (
	"context"
	"errors"

	"github.com/openexpo/jurypanel/internal/dependencies/random"
	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/services/token"
	"github.com/openexpo/jurypanel/internal/storage"
)

// Config holds configuration for the PIN service
type Config struct {
	// PINLength is the number of digits in a generated PIN
	PINLength int
	// MaxAttempts is the number of wrong PINs before the account locks
	MaxAttempts int
}

// DefaultConfig returns default PIN configuration
func DefaultConfig() Config {
	return Config{
		PINLength:   4,
		MaxAttempts: 3,
	}
}

// IssueResult is the outcome of issuing a PIN
type IssueResult struct {
	PIN   string
	Token string
}

// VerifyResult is the outcome of a PIN verification attempt
type VerifyResult struct {
	Valid        bool
	Locked       bool
	AttemptsLeft int
	// Token is set only on success
	Token string
}

// Service owns the per-juror PIN lifecycle and lock state machine.
//
// Attempts and the lock flag are tracked per juror identifier, not per
// session, so brute-force protection survives client restarts.
type Service struct {
	storage storage.Storage
	random  random.Random
	tokens  *token.Service

	pinLength   int
	maxAttempts int
}

// New creates a new PIN service
func New(store storage.Storage, rnd random.Random, tokens *token.Service, cfg Config) *Service {
	if cfg.PINLength == 0 {
		cfg.PINLength = DefaultConfig().PINLength
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Service{
		storage:     store,
		random:      rnd,
		tokens:      tokens,
		pinLength:   cfg.PINLength,
		maxAttempts: cfg.MaxAttempts,
	}
}

// MaxAttempts returns the configured attempt limit
func (s *Service) MaxAttempts() int {
	return s.maxAttempts
}

// Issue returns the juror's PIN and a fresh token, creating the account and
// generating a PIN on first call. Issuing is idempotent: re-issuing to an
// already-registered juror never changes their memorized PIN.
func (s *Service) Issue(ctx context.Context, jurorID model.JurorID, name, dept string) (*IssueResult, error) {
	account, err := s.storage.GetAccount(ctx, jurorID)
	if err != nil {
		if !errors.Is(err, model.ErrAccountNotFound) {
			return nil, err
		}
		account = &model.JurorAccount{ID: jurorID}
	}

	account.DisplayName = name
	account.DisplayDept = dept

	if !account.HasPIN() {
		account.PIN = s.random.Digits(s.pinLength)
		account.Secret = s.random.Secret()
	} else if account.Secret == "" {
		account.Secret = s.random.Secret()
	}

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	return &IssueResult{
		PIN:   account.PIN,
		Token: s.tokens.Mint(jurorID, account.Secret),
	}, nil
}

// Exists reports whether a PIN has been issued for the juror
func (s *Service) Exists(ctx context.Context, jurorID model.JurorID) (bool, error) {
	account, err := s.storage.GetAccount(ctx, jurorID)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	return account.HasPIN(), nil
}

// Verify checks a candidate PIN against the stored one.
//
// A locked account fails fast with no side effects. An account without a
// stored PIN verifies successfully (grace for data migrated without PINs).
// Success resets the attempt counter and rotates the secret, invalidating
// any previously issued token.
func (s *Service) Verify(ctx context.Context, jurorID model.JurorID, candidate string) (*VerifyResult, error) {
	account, err := s.storage.GetAccount(ctx, jurorID)
	if err != nil {
		if !errors.Is(err, model.ErrAccountNotFound) {
			return nil, err
		}
		// Unknown juror: same grace path as an account without a PIN
		account = &model.JurorAccount{ID: jurorID}
	}

	if account.Locked {
		return &VerifyResult{Valid: false, Locked: true, AttemptsLeft: 0}, nil
	}

	if !account.HasPIN() || candidate == account.PIN {
		account.FailedAttempts = 0
		account.Secret = s.random.Secret()
		if err := s.storage.SaveAccount(ctx, account); err != nil {
			return nil, err
		}
		return &VerifyResult{
			Valid:        true,
			AttemptsLeft: s.maxAttempts,
			Token:        s.tokens.Mint(jurorID, account.Secret),
		}, nil
	}

	account.FailedAttempts++
	if account.FailedAttempts >= s.maxAttempts {
		account.Locked = true
	}
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	return &VerifyResult{
		Valid:        false,
		Locked:       account.Locked,
		AttemptsLeft: s.maxAttempts - account.FailedAttempts,
	}, nil
}

// Reset clears the PIN, secret, lock flag and attempt counter, returning the
// account to the unset state. Display metadata is preserved. This is the
// only way out of the locked state.
func (s *Service) Reset(ctx context.Context, jurorID model.JurorID) error {
	account, err := s.storage.GetAccount(ctx, jurorID)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	account.PIN = ""
	account.Secret = ""
	account.FailedAttempts = 0
	account.Locked = false
	return s.storage.SaveAccount(ctx, account)
}

// DeleteAccount removes the juror's account entirely
func (s *Service) DeleteAccount(ctx context.Context, jurorID model.JurorID) error {
	return s.storage.DeleteAccount(ctx, jurorID)
}
