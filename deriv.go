package deriv

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/deriv/internal/runtime"
	"github.com/aretw0/deriv/pkg/domain"
	"github.com/aretw0/deriv/pkg/ports"
	"github.com/google/uuid"
)

// Version is the release of the deriv module.
const Version = "0.4.0"

// Engine is the high-level entry point for the deriv library.
// It wraps the parser and the differentiator with logging, lifecycle hooks
// and an optional derivation store.
type Engine struct {
	store  ports.DerivationStore
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore enables caching of derivations in the given store.
func WithStore(store ports.DerivationStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so callers never have to nil-check it.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return eng
}

// Parse converts text into a polynomial.
// Syntax errors are *domain.InvalidCharacterError or *domain.MalformedNumberError.
func (e *Engine) Parse(ctx context.Context, text string) (domain.Polynomial, error) {
	poly, err := runtime.Parse(text)

	e.emitParse(ctx, text, poly, err)
	if err != nil {
		e.logger.Debug("parse failed", "expression", text, "kind", domain.ErrorKind(err), "error", err)
		return nil, err
	}
	e.logger.Debug("parsed", "expression", text, "terms", len(poly))
	return poly, nil
}

// Differentiate returns the canonical derivative of poly. It never fails.
func (e *Engine) Differentiate(ctx context.Context, poly domain.Polynomial) domain.Polynomial {
	out := runtime.Differentiate(poly)
	e.emitDifferentiate(ctx, len(poly), len(out), false)
	return out
}

// Derive parses text, differentiates it and renders the result.
// A derivative whose coefficients leave the float64 range fails with
// *domain.OverflowError and is never stored.
// When a store is configured, a derivation of an equivalent polynomial is
// served from it; store failures are logged and never fail the call.
func (e *Engine) Derive(ctx context.Context, text string) (*domain.Derivation, error) {
	poly, err := e.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	key := runtime.Key(poly)

	if e.store != nil {
		cached, err := e.store.Load(ctx, key)
		switch {
		case err == nil:
			e.logger.Debug("derivation served from store", "key", key, "id", cached.ID)
			e.emitDifferentiate(ctx, len(poly), len(cached.Derivative), true)
			cached.Expression = text
			cached.Terms = poly
			return cached, nil
		case !errors.Is(err, domain.ErrDerivationNotFound):
			e.logger.Warn("derivation store lookup failed", "key", key, "error", err)
		}
	}

	derivative := e.Differentiate(ctx, poly)
	if err := runtime.CheckFinite(derivative); err != nil {
		e.logger.Debug("derivative out of range", "expression", text, "error", err)
		return nil, err
	}
	d := &domain.Derivation{
		ID:         uuid.NewString(),
		Expression: text,
		Key:        key,
		Terms:      poly,
		Derivative: derivative,
		Text:       runtime.Render(derivative),
		CreatedAt:  e.now().UTC(),
	}

	if e.store != nil {
		if err := e.store.Save(ctx, key, d); err != nil {
			e.logger.Warn("failed to save derivation", "key", key, "error", err)
		}
	}
	return d, nil
}

// Render converts a polynomial into display text ("+6x^1 +2", "0").
func Render(poly domain.Polynomial) string {
	return runtime.Render(poly)
}

// Key returns the store key of a parsed polynomial: its canonical rendering,
// so equivalent spellings of one expression share an entry.
func Key(poly domain.Polynomial) string {
	return runtime.Key(poly)
}

// RenderLaTeX converts a polynomial into a LaTeX math fragment.
func RenderLaTeX(poly domain.Polynomial) string {
	return runtime.RenderLaTeX(poly)
}

// Trace returns the parser states visited while reading text.
func Trace(text string) ([]domain.ParseState, error) {
	return runtime.Trace(text)
}

// Accepting reports whether input may end in state s.
func Accepting(s domain.ParseState) bool {
	return runtime.Accepting(s)
}

// Transitions returns the parser transition table for introspection tools.
func Transitions() []domain.Transition {
	return runtime.Transitions()
}

func (e *Engine) emitParse(ctx context.Context, text string, poly domain.Polynomial, err error) {
	if e.hooks.OnParse == nil {
		return
	}
	e.hooks.OnParse(ctx, &domain.ParseEvent{
		EventBase:  domain.EventBase{Timestamp: e.now(), Type: domain.EventParse},
		Expression: text,
		Terms:      len(poly),
		ErrorKind:  domain.ErrorKind(err),
	})
}

func (e *Engine) emitDifferentiate(ctx context.Context, in, out int, cached bool) {
	if e.hooks.OnDifferentiate == nil {
		return
	}
	e.hooks.OnDifferentiate(ctx, &domain.DifferentiateEvent{
		EventBase:   domain.EventBase{Timestamp: e.now(), Type: domain.EventDifferentiate},
		InputTerms:  in,
		OutputTerms: out,
		Cached:      cached,
	})
}
