package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/deriv/pkg/domain"
	"github.com/aretw0/deriv/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.DerivationStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level.
// A missing derivation is a normal cache miss and is not reported as an error.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.DerivationStore) ports.DerivationStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) Save(ctx context.Context, key string, d *domain.Derivation) error {
	start := time.Now()
	err := m.next.Save(ctx, key, d)
	m.log(ctx, "save", key, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, key string) (*domain.Derivation, error) {
	start := time.Now()
	d, err := m.next.Load(ctx, key)
	if errors.Is(err, domain.ErrDerivationNotFound) {
		m.logger.DebugContext(ctx, "store miss", "key", key, "duration", time.Since(start))
		return nil, err
	}
	m.log(ctx, "load", key, start, err)
	return d, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := m.next.Delete(ctx, key)
	m.log(ctx, "delete", key, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := m.next.List(ctx)
	if err == nil {
		m.logger.DebugContext(ctx, "store list", "keys", len(keys), "duration", time.Since(start))
		return keys, nil
	}
	m.log(ctx, "list", "", start, err)
	return nil, err
}

func (m *loggingMiddleware) log(ctx context.Context, op, key string, start time.Time, err error) {
	if err != nil {
		m.logger.ErrorContext(ctx, "store "+op+" failed", "key", key, "duration", time.Since(start), "error", err)
		return
	}
	m.logger.DebugContext(ctx, "store "+op, "key", key, "duration", time.Since(start))
}
