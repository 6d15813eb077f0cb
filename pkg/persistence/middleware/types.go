package middleware

import "github.com/aretw0/deriv/pkg/ports"

// Middleware allows wrapping a DerivationStore to add behavior.
type Middleware func(ports.DerivationStore) ports.DerivationStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.DerivationStore, mws ...Middleware) ports.DerivationStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
