package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/orbitwise/fdsaas/internal/dependencies/clock"
	"github.com/orbitwise/fdsaas/internal/dependencies/digest"
	"github.com/orbitwise/fdsaas/internal/services/auth"
	"github.com/orbitwise/fdsaas/internal/services/gateway"
	"github.com/orbitwise/fdsaas/internal/services/propagation"
	"github.com/orbitwise/fdsaas/internal/storage"
	"github.com/orbitwise/fdsaas/internal/storage/memory"
	redisstorage "github.com/orbitwise/fdsaas/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Digest type constants
const (
	DigestTypeSHA256 = "sha256"
	DigestTypeBcrypt = "bcrypt"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Digest digest.Digest

	// Services
	AuthService    *auth.Service
	Propagator     propagation.Propagator
	GatewayService *gateway.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GatewayConfig holds configuration for the computation gateway (optional)
	GatewayConfig gateway.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DigestType selects the password digest scheme ("sha256" or "bcrypt")
	// If empty, defaults to "sha256"
	DigestType string
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
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	var dig digest.Digest
	switch cfg.DigestType {
	case "", DigestTypeSHA256:
		dig = digest.NewSHA256()
	case DigestTypeBcrypt:
		dig = digest.NewBcrypt()
	default:
		return nil, errors.New("invalid DigestType: must be 'sha256' or 'bcrypt'")
	}

	clk := clock.New()

	// auth.New defaults each unset field individually
	return newWithDependencies(store, clk, dig, cfg.AuthConfig, cfg.GatewayConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, dig digest.Digest, authCfg auth.Config, gatewayCfg gateway.Config, logger *slog.Logger) *App {
	authService := auth.New(store, clk, dig, authCfg)
	propagator := propagation.NewSGP4()
	gatewayService := gateway.New(propagator, gatewayCfg, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Digest:         dig,
		AuthService:    authService,
		Propagator:     propagator,
		GatewayService: gatewayService,
	}
}
