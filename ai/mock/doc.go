// Package mock provides test doubles for the ai interfaces.
//
// The mock embedder produces deterministic vectors derived from an FNV hash
// of the input text, so identical texts always embed identically and tests
// never need an external embedding service.
package mock
