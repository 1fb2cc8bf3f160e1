package metadata

import (
	"context"
	"fmt"
	"regexp"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/rs/zerolog"

	"github.com/edmondop/spiceai/engine"
	"github.com/edmondop/spiceai/objectstore"
)

const defaultBatchSize = 1024

// tableSchema is the declared schema of the object-metadata table. Column
// names, order, nullability, and types are a fixed contract shared with
// toRecord; any change to one must change the other atomically.
func tableSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "location", Type: arrow.BinaryTypes.String},
		{Name: "last_modified", Type: &arrow.TimestampType{Unit: arrow.Millisecond}},
		{Name: "size", Type: arrow.PrimitiveTypes.Uint64},
		{Name: "e_tag", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "version", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)
}

// ObjectMetadataTable presents an object-listing backend as a relational
// table. Instances are immutable after construction and reusable across many
// query executions; each Scan spawns a fresh, short-lived execution plan.
type ObjectMetadataTable struct {
	store  objectstore.Store
	prefix string

	// filenameRegex filters on the final path segment post-listing; the
	// backend has no native filename-only filtering.
	filenameRegex *regexp.Regexp

	batchSize int
	log       zerolog.Logger
}

// Option configures an ObjectMetadataTable.
type Option func(*ObjectMetadataTable)

// WithBatchSize caps how many descriptors are buffered into one emitted
// record batch. Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(t *ObjectMetadataTable) {
		if n > 0 {
			t.batchSize = n
		}
	}
}

// WithLogger attaches a logger used by scans; the default discards all
// events.
func WithLogger(log zerolog.Logger) Option {
	return func(t *ObjectMetadataTable) { t.log = log }
}

// NewObjectMetadataTable creates the table over the given backend. prefix
// narrows the listing server-side and is passed verbatim to the backend;
// filenamePattern, when non-empty, is a regular expression matched against
// the final path segment of each location. An invalid pattern fails here,
// never at query time.
func NewObjectMetadataTable(store objectstore.Store, prefix, filenamePattern string, opts ...Option) (*ObjectMetadataTable, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata: store is nil")
	}
	t := &ObjectMetadataTable{
		store:     store,
		prefix:    prefix,
		batchSize: defaultBatchSize,
		log:       zerolog.Nop(),
	}
	if filenamePattern != "" {
		re, err := regexp.Compile(filenamePattern)
		if err != nil {
			return nil, fmt.Errorf("metadata: invalid filename pattern %q: %w", filenamePattern, err)
		}
		t.filenameRegex = re
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Schema returns the declared 5-column schema.
func (t *ObjectMetadataTable) Schema() *arrow.Schema { return tableSchema() }

// Constraints declares location as an advisory primary key. The table does
// not enforce uniqueness itself; it trusts the backend to return each
// location at most once per listing pass.
func (t *ObjectMetadataTable) Constraints() engine.Constraints {
	return engine.Constraints{engine.PrimaryKey(0)}
}

// Scan plans a read of the table. Filters are accepted but never evaluated
// here (SupportsFiltersPushdown declares them all unsupported); the limit is
// honored internally so an unbounded backend is not listed exhaustively.
func (t *ObjectMetadataTable) Scan(_ context.Context, projection []int, filters []engine.Expr, limit int) (engine.ExecutionPlan, error) {
	projected, err := engine.ProjectSchema(t.Schema(), projection)
	if err != nil {
		return nil, err
	}
	return &objectMetadataExec{
		schema:        projected,
		projection:    projection,
		filters:       filters,
		limit:         limit,
		store:         t.store,
		prefix:        t.prefix,
		filenameRegex: t.filenameRegex,
		batchSize:     t.batchSize,
		log:           t.log,
	}, nil
}

// SupportsFiltersPushdown declares every filter unsupported; the engine must
// re-apply all predicates after receiving rows.
func (t *ObjectMetadataTable) SupportsFiltersPushdown(filters []engine.Expr) []engine.FilterPushdown {
	out := make([]engine.FilterPushdown, len(filters))
	for i := range out {
		out[i] = engine.PushdownUnsupported
	}
	return out
}

var _ engine.TableProvider = (*ObjectMetadataTable)(nil)
