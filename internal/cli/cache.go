package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/deriv"
	"github.com/aretw0/deriv/pkg/ports"
	"gopkg.in/yaml.v3"
)

// ErrNoStore is returned by cache commands when caching is disabled.
var ErrNoStore = errors.New("no derivation store configured (set store.driver or DERIV_STORE)")

func openStore(env *Env) (ports.DerivationStore, func() error, error) {
	store, closeStore, err := env.Store()
	if err != nil {
		return nil, nil, err
	}
	if store == nil {
		return nil, nil, ErrNoStore
	}
	return store, closeStore, nil
}

// CacheKey returns the store key of an expression.
func CacheKey(expression string) (string, error) {
	poly, err := deriv.New().Parse(context.Background(), expression)
	if err != nil {
		return "", err
	}
	return deriv.Key(poly), nil
}

// CacheList writes one cached key per line.
func CacheList(ctx context.Context, env *Env, w io.Writer) error {
	store, closeStore, err := openStore(env)
	if err != nil {
		return err
	}
	defer closeStore()

	keys, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(w, k)
	}
	return nil
}

// CacheInspect writes the cached derivation of expression as YAML, or JSON when asJSON is set.
func CacheInspect(ctx context.Context, env *Env, expression string, asJSON bool, w io.Writer) error {
	key, err := CacheKey(expression)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(env)
	if err != nil {
		return err
	}
	defer closeStore()

	d, err := store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

// CacheRemove deletes the derivations of the given expressions, or every one when all is set.
func CacheRemove(ctx context.Context, env *Env, expressions []string, all bool, w io.Writer) error {
	store, closeStore, err := openStore(env)
	if err != nil {
		return err
	}
	defer closeStore()

	keys := make([]string, 0, len(expressions))
	if all {
		if keys, err = store.List(ctx); err != nil {
			return err
		}
	} else {
		for _, expr := range expressions {
			key, err := CacheKey(expr)
			if err != nil {
				return err
			}
			keys = append(keys, key)
		}
	}

	for _, k := range keys {
		if err := store.Delete(ctx, k); err != nil {
			return fmt.Errorf("failed to delete %q: %w", k, err)
		}
	}
	printSystemMessage(w, "Removed %d derivation(s).", len(keys))
	return nil
}
