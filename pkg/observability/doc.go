/*
Package observability provides Prometheus instrumentation for the deriv engine.

Metrics are fed by domain.LifecycleHooks, so the engine stays unaware of
Prometheus:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng := deriv.New(deriv.WithLifecycleHooks(m.Hooks()))
*/
package observability
