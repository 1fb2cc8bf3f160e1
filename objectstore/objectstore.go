package objectstore

import (
	"context"
	"strings"
	"time"
)

// ObjectMeta describes one object in a listing backend. Location is unique
// per object within a prefix scope; ETag and Version are backend-assigned
// and optional (nil when absent).
type ObjectMeta struct {
	// Location is the opaque path of the object within the store.
	Location string

	// LastModified is the modification timestamp, millisecond precision.
	LastModified time.Time

	// Size is the object size in bytes.
	Size uint64

	// ETag is an optional backend-assigned content fingerprint.
	ETag *string

	// Version is an optional backend-assigned version token.
	Version *string
}

// ListIterator is a lazy cursor over a single listing pass. It terminates
// normally with io.EOF, or with a typed backend error. Implementations fetch
// at most one page of descriptors per Next call that crosses a page
// boundary; they never pre-fetch past the current page.
type ListIterator interface {
	// Next returns the next descriptor in backend-delivery order, io.EOF at
	// end-of-listing, or a backend error. A cancelled context stops the
	// listing with the context's error.
	Next(ctx context.Context) (ObjectMeta, error)

	// Close stops the listing early; no further backend requests are made.
	// It is idempotent.
	Close() error
}

// Store is the single capability the virtual table consumes from a listing
// backend: given an optional prefix (empty means the whole store), produce a
// lazy sequence of object descriptors. The handle is shared read-only across
// concurrent scans.
type Store interface {
	List(ctx context.Context, prefix string) ListIterator
}

// Filename extracts the final path segment of a location. It reports false
// when the location has no valid final segment, i.e. it is empty or ends
// with a path separator.
func Filename(location string) (string, bool) {
	if location == "" || strings.HasSuffix(location, "/") {
		return "", false
	}
	if idx := strings.LastIndexByte(location, '/'); idx >= 0 {
		return location[idx+1:], true
	}
	return location, true
}
