package ports

import (
	"context"

	"github.com/aretw0/deriv/pkg/domain"
)

// DerivationStore defines the interface for persisting derivations.
// Keys are canonical polynomial renderings (see deriv.Engine.Derive).
type DerivationStore interface {
	// Save persists the derivation under key, replacing any previous one.
	Save(ctx context.Context, key string, d *domain.Derivation) error

	// Load retrieves the derivation for key.
	// Returns domain.ErrDerivationNotFound if the key does not exist.
	Load(ctx context.Context, key string) (*domain.Derivation, error)

	// Delete removes the derivation for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently stored.
	List(ctx context.Context) ([]string, error)
}
