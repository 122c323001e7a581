package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/openexpo/jurypanel/internal/dependencies/clock"
	"github.com/openexpo/jurypanel/internal/dependencies/random"
	"github.com/openexpo/jurypanel/internal/services/draft"
	"github.com/openexpo/jurypanel/internal/services/evaluation"
	"github.com/openexpo/jurypanel/internal/services/pin"
	"github.com/openexpo/jurypanel/internal/services/resetwindow"
	"github.com/openexpo/jurypanel/internal/services/token"
	"github.com/openexpo/jurypanel/internal/storage"
	"github.com/openexpo/jurypanel/internal/storage/memory"
	redisstorage "github.com/openexpo/jurypanel/internal/storage/redis"
	"github.com/openexpo/jurypanel/internal/storage/sqlstore"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQL    = "sql"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	TokenService      *token.Service
	PINService        *pin.Service
	DraftService      *draft.Service
	ResetWindow       *resetwindow.Service
	EvaluationService *evaluation.Service
}

// Config holds configuration for the application factory
type Config struct {
	// PINConfig holds configuration for the PIN service (optional)
	PINConfig pin.Config
	// WindowConfig holds configuration for the reset-unlock window (optional)
	WindowConfig resetwindow.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sql")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLConfig holds SQL connection settings (required if StorageType is "sql")
	SQLConfig *sqlstore.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQL:
		if cfg.SQLConfig == nil {
			return nil, errors.New("SQLConfig required when StorageType is sql")
		}
		sqlStore, err := sqlstore.New(*cfg.SQLConfig)
		if err != nil {
			return nil, err
		}
		store = sqlStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sql'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg.PINConfig, cfg.WindowConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, pinCfg pin.Config, windowCfg resetwindow.Config, logger *slog.Logger) *App {
	tokenService := token.New(store)
	pinService := pin.New(store, rnd, tokenService, pinCfg)
	draftService := draft.New(store, clk)
	windowService := resetwindow.New(store, clk, windowCfg, logger)
	evaluationService := evaluation.New(store, windowService, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		TokenService:      tokenService,
		PINService:        pinService,
		DraftService:      draftService,
		ResetWindow:       windowService,
		EvaluationService: evaluationService,
	}
}
