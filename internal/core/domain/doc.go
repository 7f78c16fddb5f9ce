// Package domain defines the core business entities for vidseek.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CorpusItem: One indexable question/answer unit tied to a video segment
//   - ScoredResult: A CorpusItem paired with a relevance score for one query
//   - SearchOptions: Per-query knobs (result count)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
