package middleware

import (
	"context"
	"time"

	"github.com/aretw0/deriv/pkg/domain"
	"github.com/aretw0/deriv/pkg/ports"
)

type timeoutMiddleware struct {
	next    ports.DerivationStore
	timeout time.Duration
}

// NewTimeoutMiddleware bounds every store call to d.
// A non-positive d returns the store unchanged.
func NewTimeoutMiddleware(d time.Duration) Middleware {
	return func(next ports.DerivationStore) ports.DerivationStore {
		if d <= 0 {
			return next
		}
		return &timeoutMiddleware{next: next, timeout: d}
	}
}

func (m *timeoutMiddleware) Save(ctx context.Context, key string, d *domain.Derivation) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.next.Save(ctx, key, d)
}

func (m *timeoutMiddleware) Load(ctx context.Context, key string) (*domain.Derivation, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.next.Load(ctx, key)
}

func (m *timeoutMiddleware) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.next.Delete(ctx, key)
}

func (m *timeoutMiddleware) List(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.next.List(ctx)
}
