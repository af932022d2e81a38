// Package file reads and writes the docrag TOML config file.
//
// Nested tables are exposed as flattened dot keys, so
//
//	[embedding]
//	model = "nomic-embed-text"
//
// is read with GetString("embedding.model").
package file
