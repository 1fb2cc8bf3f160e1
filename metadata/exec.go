package metadata

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/rs/zerolog"

	"github.com/edmondop/spiceai/engine"
	"github.com/edmondop/spiceai/objectstore"
)

// objectMetadataExec is the single-partition, bounded execution plan spawned
// by ObjectMetadataTable.Scan. It has no children and refuses structural
// rewrites.
type objectMetadataExec struct {
	schema     *arrow.Schema // projected output schema
	projection []int

	// filters are retained for explain output only; they are never
	// evaluated here.
	filters []engine.Expr

	limit int // negative means unlimited

	store         objectstore.Store
	prefix        string
	filenameRegex *regexp.Regexp
	batchSize     int
	log           zerolog.Logger
}

func (e *objectMetadataExec) Name() string { return "ObjectMetadataExec" }

func (e *objectMetadataExec) Schema() *arrow.Schema { return e.schema }

func (e *objectMetadataExec) Partitions() int { return 1 }

func (e *objectMetadataExec) Children() []engine.ExecutionPlan { return nil }

func (e *objectMetadataExec) WithNewChildren(children []engine.ExecutionPlan) (engine.ExecutionPlan, error) {
	if len(children) != 0 {
		return nil, engine.PlanErrorf("%s is a leaf plan and accepts no children, got %d", e.Name(), len(children))
	}
	return e, nil
}

func (e *objectMetadataExec) Execute(ctx context.Context, partition int) (engine.RecordStream, error) {
	if partition != 0 {
		return nil, engine.ExecErrorf("%s has a single partition, got request for partition %d", e.Name(), partition)
	}
	e.log.Debug().Str("prefix", e.prefix).Int("limit", e.limit).Msg("metadata: starting object listing scan")
	return &objectMetadataStream{
		schema:        e.schema,
		projection:    e.projection,
		iter:          e.store.List(ctx, e.prefix),
		filenameRegex: e.filenameRegex,
		limit:         e.limit,
		batchSize:     e.batchSize,
		log:           e.log,
	}, nil
}

func (e *objectMetadataExec) String() string {
	return fmt.Sprintf("%s prefix=%s", e.Name(), e.prefix)
}

var _ engine.ExecutionPlan = (*objectMetadataExec)(nil)

// objectMetadataStream pulls descriptors from the backend lazily, applies
// the filename filter, and emits projected record batches until exhaustion,
// limit, error, or cancellation.
type objectMetadataStream struct {
	schema        *arrow.Schema
	projection    []int
	iter          objectstore.ListIterator
	filenameRegex *regexp.Regexp
	limit         int
	batchSize     int

	emitted int
	done    bool
	log     zerolog.Logger
}

func (s *objectMetadataStream) Schema() *arrow.Schema { return s.schema }

func (s *objectMetadataStream) Next(ctx context.Context) (arrow.Record, error) {
	if s.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		s.stop()
		return nil, err
	}

	buf := make([]objectstore.ObjectMeta, 0, s.batchSize)
	for len(buf) < s.batchSize && !s.limitReached(len(buf)) {
		meta, err := s.iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			s.stop()
			s.log.Debug().Err(err).Msg("metadata: object listing failed")
			return nil, engine.WrapExecError("object listing failed", err)
		}
		if s.filenameRegex != nil {
			name, ok := objectstore.Filename(meta.Location)
			if !ok || !s.filenameRegex.MatchString(name) {
				// Filtered-out descriptors do not count toward the limit.
				continue
			}
		}
		buf = append(buf, meta)
	}

	if len(buf) == 0 {
		s.stop()
		return nil, io.EOF
	}
	s.emitted += len(buf)
	if s.limitReached(0) {
		// Stop consuming the backend; remaining listing pages are never
		// requested.
		s.stop()
	}

	full := toRecord(buf)
	defer full.Release()
	return engine.ProjectRecord(full, s.schema, s.projection)
}

func (s *objectMetadataStream) limitReached(buffered int) bool {
	return s.limit >= 0 && s.emitted+buffered >= s.limit
}

func (s *objectMetadataStream) stop() {
	if !s.done {
		s.done = true
		_ = s.iter.Close()
	}
}

func (s *objectMetadataStream) Close() error {
	s.stop()
	return nil
}

var _ engine.RecordStream = (*objectMetadataStream)(nil)
