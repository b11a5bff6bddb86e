// Package domain defines the core business entities for Loci.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchRequest: A validated, immutable description of one search
//   - Entry: A filesystem object visited during traversal
//   - Match: A file that survived all active filter stages
//   - TraversalError: A per-entry failure that never aborts the search
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
