package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/deriv/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDerivationStoreContract runs a suite of tests to verify that a DerivationStore
// implementation adheres to the defined interface contract.
func RunDerivationStoreContract(t *testing.T, store DerivationStore) {
	ctx := context.Background()
	key := "+3x^2 +1 " + time.Now().Format("20060102150405")

	newDerivation := func(key string) *domain.Derivation {
		return &domain.Derivation{
			ID:         "id-" + key,
			Expression: "3x^2 + 1",
			Key:        key,
			Terms:      domain.Polynomial{{Coefficient: 3, Exponent: 2}, {Coefficient: 1, Exponent: 0}},
			Derivative: domain.Polynomial{{Coefficient: 6, Exponent: 1}},
			Text:       "+6x^1",
			CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		d := newDerivation(key)

		err := store.Save(ctx, key, d)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, d.ID, loaded.ID)
		assert.Equal(t, d.Text, loaded.Text)
		assert.Equal(t, d.Terms, loaded.Terms)
		assert.Equal(t, d.Derivative, loaded.Derivative)
		assert.True(t, d.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Loaded Value Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Derivative[0].Coefficient = 42
		loaded.Text = "mutated"

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 6.0, again.Derivative[0].Coefficient)
		assert.Equal(t, "+6x^1", again.Text)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrDerivationNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, key, newDerivation(key))
		require.NoError(t, err)

		err = store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrDerivationNotFound, "Load after Delete should return ErrDerivationNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		require.NoError(t, store.Save(ctx, k1, newDerivation(k1)))
		require.NoError(t, store.Save(ctx, k2, newDerivation(k2)))

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
