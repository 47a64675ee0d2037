// Package core contains the canonical activation domain contracts, entities,
// and the orchestration engine. Lower-level adapters must depend on this
// package; core must not depend on carrier-specific or storage-specific
// adapters.
package core
