package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/aretw0/deriv"
	"github.com/aretw0/deriv/internal/config"
	"github.com/aretw0/deriv/pkg/adapters/file"
	"github.com/aretw0/deriv/pkg/adapters/memory"
	"github.com/aretw0/deriv/pkg/adapters/redis"
	"github.com/aretw0/deriv/pkg/domain"
	"github.com/aretw0/deriv/pkg/observability"
	"github.com/aretw0/deriv/pkg/persistence/middleware"
	"github.com/aretw0/deriv/pkg/ports"
	"github.com/aretw0/deriv/pkg/runner"
)

// Env bundles the configuration and logger shared by every command.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
	Debug  bool
}

// Setup loads the configuration at path and builds the logger.
func Setup(path string, debug bool) (*Env, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := createLogger(cfg.LogLevel, debug)
	if err != nil {
		return nil, err
	}

	// The sanitizer reads its limit from the environment; an explicit variable wins.
	if os.Getenv(runner.EnvMaxInputSize) == "" && cfg.MaxInputSize != runner.DefaultMaxInputSize {
		os.Setenv(runner.EnvMaxInputSize, strconv.Itoa(cfg.MaxInputSize))
	}

	return &Env{Config: cfg, Logger: logger, Debug: debug}, nil
}

// NewStore opens the configured derivation store. A nil store means caching is off.
// The returned close function is never nil.
func NewStore(cfg config.StoreConfig) (ports.DerivationStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverNone, "":
		return nil, noop, nil
	case config.DriverMemory:
		return memory.NewStore(), noop, nil
	case config.DriverFile:
		return file.New(cfg.Path), noop, nil
	case config.DriverRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return store, store.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// Store opens the configured store wrapped with logging and the configured
// per-call timeout. A nil store means caching is off.
func (e *Env) Store() (ports.DerivationStore, func() error, error) {
	store, closeStore, err := NewStore(e.Config.Store)
	if err != nil || store == nil {
		return store, closeStore, err
	}
	store = middleware.Chain(store,
		middleware.NewLoggingMiddleware(e.Logger),
		middleware.NewTimeoutMiddleware(e.Config.Store.Timeout),
	)
	return store, closeStore, nil
}

// NewEngine initializes an engine with standard CLI conventions.
func NewEngine(env *Env, store ports.DerivationStore, hooks ...domain.LifecycleHooks) *deriv.Engine {
	if env.Debug {
		hooks = append(hooks, createDebugHooks(env.Logger))
	}

	opts := []deriv.Option{
		deriv.WithLogger(env.Logger),
		deriv.WithLifecycleHooks(observability.Chain(hooks...)),
	}
	if store != nil {
		opts = append(opts, deriv.WithStore(store))
	}
	return deriv.New(opts...)
}
