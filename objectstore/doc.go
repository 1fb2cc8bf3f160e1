// Package objectstore defines the listing-backend contract consumed by the
// object-metadata virtual table, and two implementations:
//   - ObjectMeta descriptor and the Store / ListIterator interfaces
//   - MemoryStore: in-memory, deterministically ordered, paginated
//   - SQLiteStore: durable object-metadata catalog with keyset-paginated
//     listing (modernc.org/sqlite)
//
// Listing is lazy: iterators fetch one page per suspension point and stop
// fetching as soon as the consumer closes them or cancels the context.
package objectstore
