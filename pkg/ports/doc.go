/*
Package ports defines the driven ports (interfaces) for the deriv engine.

These interfaces decouple the engine from storage backends, so a derivation
cache can live in memory, on disk or in Redis without the core knowing.

# Key Interfaces

  - DerivationStore: persists and loads derivations by canonical key.
*/
package ports
