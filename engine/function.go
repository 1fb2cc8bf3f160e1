package engine

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// Volatility declares how a scalar function's output relates to its input
// across calls, permitting engine-side optimization.
type Volatility int

const (
	// VolatilityImmutable guarantees identical inputs always produce
	// identical outputs; the engine may constant-fold, cache, or reorder
	// calls freely.
	VolatilityImmutable Volatility = iota
	// VolatilityStable guarantees stable output within a single query.
	VolatilityStable
	// VolatilityVolatile makes no guarantee; every call must be evaluated.
	VolatilityVolatile
)

// TypeSignatureKind discriminates the supported call-shape variants. The set
// is closed: coercion machinery in the host engine only understands these.
type TypeSignatureKind int

const (
	// TypeSignatureUniform accepts a fixed argument count where every
	// argument has one of the listed types.
	TypeSignatureUniform TypeSignatureKind = iota
	// TypeSignatureExact accepts exactly the listed argument types, in order.
	TypeSignatureExact
)

// TypeSignature is one accepted call shape of a scalar function.
type TypeSignature struct {
	Kind TypeSignatureKind

	// ArgCount and ValidTypes apply to Uniform signatures.
	ArgCount   int
	ValidTypes []arrow.DataType

	// Exact applies to Exact signatures.
	Exact []arrow.DataType
}

// UniformSignature builds a Uniform type signature.
func UniformSignature(argCount int, validTypes []arrow.DataType) TypeSignature {
	return TypeSignature{Kind: TypeSignatureUniform, ArgCount: argCount, ValidTypes: validTypes}
}

// ExactSignature builds an Exact type signature.
func ExactSignature(types []arrow.DataType) TypeSignature {
	return TypeSignature{Kind: TypeSignatureExact, Exact: types}
}

// Signature declares the call shapes a scalar function accepts, as a one-of
// list, together with its volatility.
type Signature struct {
	TypeSignatures []TypeSignature
	Volatility     Volatility
}

// NewSignature builds a Signature from a one-of list of type signatures.
func NewSignature(oneOf []TypeSignature, volatility Volatility) Signature {
	return Signature{TypeSignatures: oneOf, Volatility: volatility}
}

// ScalarFunction is a vectorized scalar UDF evaluated against columnar
// batches. Implementations are stateless; the engine may invoke one instance
// from many workers concurrently.
type ScalarFunction interface {
	// Name returns the SQL-visible function name.
	Name() string

	// Signature declares the accepted call shapes and volatility.
	Signature() Signature

	// ReturnType resolves the concrete return type for the given concrete
	// argument types, or fails planning with a PlanError describing the
	// offending argument.
	ReturnType(args []arrow.DataType) (arrow.DataType, error)

	// Invoke evaluates the function over the argument arrays and returns one
	// result row per input row, preserving row order. The engine materializes
	// scalar arguments into arrays before invoking. The returned array is
	// owned by the caller, which must Release it.
	Invoke(args []arrow.Array) (arrow.Array, error)
}
