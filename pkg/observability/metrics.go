package observability

import (
	"context"

	"github.com/aretw0/deriv/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values of deriv_parse_total.
const (
	ResultOK               = "ok"
	ResultInvalidCharacter = "invalid_character"
	ResultMalformedNumber  = "malformed_number"
)

// Metrics holds the collectors updated by the engine hooks.
type Metrics struct {
	Parses      *prometheus.CounterVec
	Derivations prometheus.Counter
	Terms       prometheus.Histogram
	CacheHits   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deriv_parse_total",
				Help: "Total number of parse attempts by result",
			},
			[]string{"result"},
		),
		Derivations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deriv_derivations_total",
			Help: "Total number of derivatives produced",
		}),
		Terms: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "deriv_terms",
			Help:    "Number of terms in parsed polynomials",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deriv_cache_hits_total",
			Help: "Total number of derivations served from the store",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Parses, m.Derivations, m.Terms, m.CacheHits)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnParse: func(ctx context.Context, e *domain.ParseEvent) {
			result := e.ErrorKind
			if result == "" {
				result = ResultOK
				m.Terms.Observe(float64(e.Terms))
			}
			m.Parses.WithLabelValues(result).Inc()
		},
		OnDifferentiate: func(ctx context.Context, e *domain.DifferentiateEvent) {
			m.Derivations.Inc()
			if e.Cached {
				m.CacheHits.Inc()
			}
		},
	}
}

// Chain merges several hook sets; each callback runs in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var onParse []func(context.Context, *domain.ParseEvent)
	var onDiff []func(context.Context, *domain.DifferentiateEvent)
	for _, h := range hooks {
		if h.OnParse != nil {
			onParse = append(onParse, h.OnParse)
		}
		if h.OnDifferentiate != nil {
			onDiff = append(onDiff, h.OnDifferentiate)
		}
	}

	var out domain.LifecycleHooks
	if len(onParse) > 0 {
		out.OnParse = func(ctx context.Context, e *domain.ParseEvent) {
			for _, fn := range onParse {
				fn(ctx, e)
			}
		}
	}
	if len(onDiff) > 0 {
		out.OnDifferentiate = func(ctx context.Context, e *domain.DifferentiateEvent) {
			for _, fn := range onDiff {
				fn(ctx, e)
			}
		}
	}
	return out
}
