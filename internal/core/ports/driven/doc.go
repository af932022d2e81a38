// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - DocumentLoader: Reads the configured documentation sources
//   - SourceWatcher: Reports changes to those sources
//   - Chunker: Splits documents into overlapping windows
//   - EmbeddingService: Turns text into vectors (Ollama, OpenAI)
//   - IndexStore: Persists and loads the whole index (JSON file, SQLite, S3, memory)
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
