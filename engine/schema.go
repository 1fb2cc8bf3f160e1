package engine

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// ProjectSchema applies a column projection to a schema. A nil projection
// selects the full schema. Indices are positions in the input schema; an
// out-of-range index fails with a PlanError.
func ProjectSchema(schema *arrow.Schema, projection []int) (*arrow.Schema, error) {
	if projection == nil {
		return schema, nil
	}
	fields := make([]arrow.Field, 0, len(projection))
	for _, idx := range projection {
		if idx < 0 || idx >= schema.NumFields() {
			return nil, PlanErrorf("projection index %d out of range for schema with %d fields", idx, schema.NumFields())
		}
		fields = append(fields, schema.Field(idx))
	}
	return arrow.NewSchema(fields, nil), nil
}

// ProjectRecord applies a column projection to a record, reusing the
// selected column arrays. schema must be the projected schema matching
// projection. A nil projection returns the record unchanged. The returned
// record is independently retained; callers release both input and output.
func ProjectRecord(rec arrow.Record, schema *arrow.Schema, projection []int) (arrow.Record, error) {
	if projection == nil {
		rec.Retain()
		return rec, nil
	}
	cols := make([]arrow.Array, len(projection))
	for i, idx := range projection {
		if idx < 0 || idx >= int(rec.NumCols()) {
			return nil, InternalErrorf("projection index %d out of range for record with %d columns", idx, rec.NumCols())
		}
		cols[i] = rec.Column(idx)
	}
	return array.NewRecord(schema, cols, rec.NumRows()), nil
}
