package embeddings

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/viant/vec/search"

	"github.com/edmondop/spiceai/engine"
)

// FixedSizeListWildcard stands for "any declared length" in a declared
// signature; the concrete length is checked during type resolution.
const FixedSizeListWildcard int32 = math.MinInt32

// ArrayDistance is a pure scalar function computing the Euclidean distance
// between two per-row embedding vectors. It accepts either two fixed-size
// Float32 lists of the same declared length, or a fixed-size Float32 list
// paired with a variable-length Float64 list (the representation the engine
// gives a literal array constant in query text).
type ArrayDistance struct {
	signature engine.Signature
}

// NewArrayDistance creates the array_distance function.
func NewArrayDistance() *ArrayDistance {
	validTypes := []arrow.DataType{
		arrow.FixedSizeListOf(FixedSizeListWildcard, arrow.PrimitiveTypes.Float32),
	}
	return &ArrayDistance{
		signature: engine.NewSignature([]engine.TypeSignature{
			engine.UniformSignature(2, validTypes),
			// Coerces an SQL constant array like
			// array_distance(x, [1.0, 2.0, 3.0]).
			engine.ExactSignature([]arrow.DataType{
				arrow.FixedSizeListOf(FixedSizeListWildcard, arrow.PrimitiveTypes.Float32),
				arrow.ListOf(arrow.PrimitiveTypes.Float64),
			}),
		}, engine.VolatilityImmutable),
	}
}

// Name returns the SQL-visible function name.
func (f *ArrayDistance) Name() string { return "array_distance" }

// Signature declares the accepted call shapes; the function is immutable, so
// the engine may constant-fold or cache calls.
func (f *ArrayDistance) Signature() engine.Signature { return f.signature }

// ReturnType resolves Float32 for the accepted argument-type combinations.
// Two fixed-size operands must both carry Float32 elements and identical
// declared lengths. A fixed-size first argument with a variable-length
// second argument is accepted unconditionally; length compatibility is
// deferred to evaluation, since the list side carries no static length.
func (f *ArrayDistance) ReturnType(args []arrow.DataType) (arrow.DataType, error) {
	if len(args) != 2 {
		return nil, engine.PlanErrorf("array_distance takes exactly two arguments")
	}
	first, firstFixed := args[0].(*arrow.FixedSizeListType)
	second, secondFixed := args[1].(*arrow.FixedSizeListType)
	switch {
	case firstFixed && secondFixed:
		if !arrow.TypeEqual(first.Elem(), arrow.PrimitiveTypes.Float32) {
			return nil, engine.PlanErrorf("array_distance requires the first argument to be of type FixedSizeList<Float32>, got %s", args[0])
		}
		if !arrow.TypeEqual(second.Elem(), arrow.PrimitiveTypes.Float32) {
			return nil, engine.PlanErrorf("array_distance requires the second argument to be of type FixedSizeList<Float32>, got %s", args[1])
		}
		if first.Len() != second.Len() {
			return nil, engine.PlanErrorf("array_distance requires both arguments to be of the same size, got %d and %d", first.Len(), second.Len())
		}
		return arrow.PrimitiveTypes.Float32, nil
	case firstFixed:
		if _, ok := args[1].(*arrow.ListType); ok {
			return arrow.PrimitiveTypes.Float32, nil
		}
		return nil, engine.PlanErrorf("array_distance requires the second argument to be of type FixedSizeList, got %s", args[1])
	default:
		return nil, engine.PlanErrorf("array_distance requires the first argument to be of type FixedSizeList, got %s", args[0])
	}
}

// Invoke computes sqrt(sum((a[j]-b[j])^2)) per row in float32 precision.
// Output row i corresponds exactly to input row i of both operands; the
// result column is dense (no nulls survive decoding).
func (f *ArrayDistance) Invoke(args []arrow.Array) (arrow.Array, error) {
	if len(args) != 2 {
		return nil, engine.InternalErrorf("array_distance invoked with %d arguments, want 2", len(args))
	}
	v1, err := fixedSizeListVectors(args[0], "first")
	if err != nil {
		return nil, err
	}

	var v2 [][]float32
	switch arg := args[1].(type) {
	case *array.FixedSizeList:
		v2, err = fixedSizeListVectors(arg, "second")
	case *array.List:
		v2, err = listVectors(arg)
	default:
		err = engine.InternalErrorf("array_distance second argument must be of type FixedSizeList or List, got %s", args[1].DataType())
	}
	if err != nil {
		return nil, err
	}
	if len(v1) != len(v2) {
		return nil, engine.InternalErrorf("array_distance arguments have mismatched row counts %d != %d", len(v1), len(v2))
	}

	out := make([]float32, len(v1))
	for i := range v1 {
		a, b := v1[i], v2[i]
		if len(a) != len(b) {
			return nil, engine.InternalErrorf("array_distance arrays must have the same length %d != %d", len(a), len(b))
		}
		out[i] = search.Float32s(a).EuclideanDistance(b)
	}

	builder := array.NewFloat32Builder(memory.DefaultAllocator)
	defer builder.Release()
	builder.AppendValues(out, nil)
	return builder.NewFloat32Array(), nil
}

// fixedSizeListVectors decodes a FixedSizeList<Float32> array into one
// float32 slice per row. Null entries and null elements violate the format
// contract and surface as internal errors.
func fixedSizeListVectors(arr arrow.Array, position string) ([][]float32, error) {
	fsl, ok := arr.(*array.FixedSizeList)
	if !ok {
		return nil, engine.InternalErrorf("array_distance %s argument: downcast to FixedSizeList failed, got %s", position, arr.DataType())
	}
	width := int(fsl.DataType().(*arrow.FixedSizeListType).Len())
	values, ok := fsl.ListValues().(*array.Float32)
	if !ok {
		return nil, engine.InternalErrorf("array_distance %s argument: downcast of elements to Float32 failed, got %s", position, fsl.ListValues().DataType())
	}
	offset := fsl.Data().Offset()

	out := make([][]float32, fsl.Len())
	for i := 0; i < fsl.Len(); i++ {
		if fsl.IsNull(i) {
			return nil, engine.InternalErrorf("array_distance %s argument: no null entries allowed", position)
		}
		start := (offset + i) * width
		vec := make([]float32, width)
		for j := 0; j < width; j++ {
			if values.IsNull(start + j) {
				return nil, engine.InternalErrorf("array_distance %s argument: no null elements allowed", position)
			}
			vec[j] = values.Value(start + j)
		}
		out[i] = vec
	}
	return out, nil
}

// listVectors decodes a List<Float64> array (a literal array constant) into
// one float32 slice per row, narrowing each element with native
// floating-point narrowing semantics.
func listVectors(arr *array.List) ([][]float32, error) {
	values, ok := arr.ListValues().(*array.Float64)
	if !ok {
		return nil, engine.InternalErrorf("array_distance second argument: downcast of elements to Float64 failed, got %s", arr.ListValues().DataType())
	}
	out := make([][]float32, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			return nil, engine.InternalErrorf("array_distance second argument: no null entries allowed")
		}
		start, end := arr.ValueOffsets(i)
		vec := make([]float32, 0, end-start)
		for j := start; j < end; j++ {
			if values.IsNull(int(j)) {
				return nil, engine.InternalErrorf("array_distance second argument: no null elements allowed")
			}
			vec = append(vec, float32(values.Value(int(j))))
		}
		out[i] = vec
	}
	return out, nil
}

var _ engine.ScalarFunction = (*ArrayDistance)(nil)
