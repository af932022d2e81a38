// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - EmbeddingClient: single-attempt embedding with skip-on-failure semantics
//   - IndexService: load, chunk, embed and persist the whole index
//   - SearchService: exhaustive cosine ranking over the persisted index
package services
