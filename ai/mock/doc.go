// Package mock provides test doubles for the ai interfaces.
//
// Each mock supports behavior injection through exported function
// fields, tracks per-method call counts, and falls back to cheap
// deterministic defaults when no function is set. The embedder derives
// vectors from token hashes so similarity search works in tests without
// a model.
package mock
