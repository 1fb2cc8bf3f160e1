// Package metadata implements a virtual table that exposes an object-listing
// backend as relational rows. Features:
//   - Fixed 5-column schema: location, last_modified (ms), size, e_tag,
//     version; advisory primary key on location
//   - Optional server-side prefix narrowing and client-side filename
//     regexp filtering (final path segment only)
//   - Single-partition, bounded execution plan producing a lazy, cancellable
//     stream of Arrow record batches
//   - Internal LIMIT early-exit; predicate pushdown is always declined, the
//     engine re-applies filters downstream
//
// A table instance is immutable after construction and safely shared across
// concurrent scans.
package metadata
