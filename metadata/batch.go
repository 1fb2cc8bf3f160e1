package metadata

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/edmondop/spiceai/objectstore"
)

// toRecord converts descriptors into a record adhering exactly to the
// declared 5-column schema, in declared column order. The conversion is
// pure; timestamps are truncated to millisecond precision. The caller owns
// the returned record.
func toRecord(metas []objectstore.ObjectMeta) arrow.Record {
	b := array.NewRecordBuilder(memory.DefaultAllocator, tableSchema())
	defer b.Release()

	location := b.Field(0).(*array.StringBuilder)
	lastModified := b.Field(1).(*array.TimestampBuilder)
	size := b.Field(2).(*array.Uint64Builder)
	eTag := b.Field(3).(*array.StringBuilder)
	version := b.Field(4).(*array.StringBuilder)

	for _, meta := range metas {
		location.Append(meta.Location)
		lastModified.Append(arrow.Timestamp(meta.LastModified.UnixMilli()))
		size.Append(meta.Size)
		if meta.ETag != nil {
			eTag.Append(*meta.ETag)
		} else {
			eTag.AppendNull()
		}
		if meta.Version != nil {
			version.Append(*meta.Version)
		} else {
			version.AppendNull()
		}
	}
	return b.NewRecord()
}
