package objectstore

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

const defaultPageSize = 1000

// MemoryStore is an in-memory Store with deterministic lexicographic listing
// order. It paginates like a remote backend would and counts page fetches so
// tests can assert that limited or abandoned scans do not over-fetch.
type MemoryStore struct {
	mu          sync.RWMutex
	objects     map[string]ObjectMeta
	pageSize    int
	pageFetches atomic.Int64
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithPageSize sets the number of descriptors returned per simulated page
// fetch. Values below 1 are ignored.
func WithPageSize(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		objects:  make(map[string]ObjectMeta),
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put inserts or replaces the descriptor for meta.Location.
func (s *MemoryStore) Put(meta ObjectMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[meta.Location] = meta
}

// Delete removes the descriptor for the given location, if present.
func (s *MemoryStore) Delete(location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, location)
}

// PageFetches returns how many pages have been fetched across all listings,
// for test assertions on lazy consumption.
func (s *MemoryStore) PageFetches() int64 {
	return s.pageFetches.Load()
}

// List returns a lazy iterator over descriptors whose location starts with
// prefix, in lexicographic location order. Pages are materialized one at a
// time on demand.
func (s *MemoryStore) List(ctx context.Context, prefix string) ListIterator {
	return &memoryIterator{store: s, prefix: prefix}
}

type memoryIterator struct {
	store  *MemoryStore
	prefix string

	page   []ObjectMeta
	pos    int
	cursor string // last delivered location, keyset position
	done   bool
}

func (it *memoryIterator) Next(ctx context.Context) (ObjectMeta, error) {
	if it.done {
		return ObjectMeta{}, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return ObjectMeta{}, err
	}
	if it.pos >= len(it.page) {
		if err := it.fetchPage(ctx); err != nil {
			return ObjectMeta{}, err
		}
		if len(it.page) == 0 {
			it.done = true
			return ObjectMeta{}, io.EOF
		}
	}
	meta := it.page[it.pos]
	it.pos++
	it.cursor = meta.Location
	return meta, nil
}

func (it *memoryIterator) fetchPage(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := it.store
	s.pageFetches.Add(1)

	s.mu.RLock()
	locations := make([]string, 0, len(s.objects))
	for loc := range s.objects {
		if strings.HasPrefix(loc, it.prefix) && loc > it.cursor {
			locations = append(locations, loc)
		}
	}
	sort.Strings(locations)
	if len(locations) > s.pageSize {
		locations = locations[:s.pageSize]
	}
	page := make([]ObjectMeta, len(locations))
	for i, loc := range locations {
		page[i] = s.objects[loc]
	}
	s.mu.RUnlock()

	it.page = page
	it.pos = 0
	return nil
}

func (it *memoryIterator) Close() error {
	it.done = true
	it.page = nil
	return nil
}
