package resetwindow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/openexpo/jurypanel/internal/dependencies/clock"
	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/storage"
)

// Config holds configuration for the reset-unlock window
type Config struct {
	// Window is how long status regression stays permitted after Open
	Window time.Duration
}

// DefaultConfig returns default window configuration
func DefaultConfig() Config {
	return Config{
		Window: 20 * time.Minute,
	}
}

// Service manages the time-boxed grace period during which a juror may
// revise finalized scores. There is no close operation; the window expires
// lazily on each IsActive check.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	window time.Duration
}

// New creates a new reset-window service
func New(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.Window == 0 {
		cfg.Window = DefaultConfig().Window
	}
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
		window:  cfg.Window,
	}
}

// Open starts a reset-unlock window for the juror and eagerly rewrites all
// of their existing records to in_progress/editing so the effect is visible
// immediately rather than lazily on next submission.
func (s *Service) Open(ctx context.Context, jurorID model.JurorID) error {
	account, err := s.storage.GetAccount(ctx, jurorID)
	if err != nil {
		return err
	}

	account.ResetUnlockAt = s.clock.Now()
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return err
	}

	records, err := s.storage.GetRecordsForJuror(ctx, jurorID)
	if err != nil {
		return err
	}

	for _, record := range records {
		record.Status = model.StatusInProgress
		record.EditingFlag = model.EditingFlagEditing
		record.Color = model.StatusInProgress.Color()
		if err := s.storage.SaveRecord(ctx, record); err != nil {
			return err
		}
	}

	s.logger.Info("reset-unlock window opened",
		slog.String("juror_id", string(jurorID)),
		slog.Int("records_reopened", len(records)),
	)
	return nil
}

// IsActive reports whether a window opened for this juror is still current
func (s *Service) IsActive(ctx context.Context, jurorID model.JurorID) (bool, error) {
	account, err := s.storage.GetAccount(ctx, jurorID)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}

	if account.ResetUnlockAt.IsZero() {
		return false, nil
	}
	return s.clock.Now().Sub(account.ResetUnlockAt) <= s.window, nil
}
