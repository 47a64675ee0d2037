// Package carriers contains the declarative carrier profile base and the
// per-family carrier packages built on it.
package carriers
