package engine

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Expr is an opaque handle to an engine-owned predicate expression. Table
// providers receive expressions during scan planning but do not interpret
// them beyond what SupportsFiltersPushdown advertises; the engine re-applies
// any predicate a provider declares unsupported.
type Expr interface {
	fmt.Stringer
}

// FilterPushdown describes how completely a table provider evaluates a
// predicate on the engine's behalf.
type FilterPushdown int

const (
	// PushdownUnsupported means the provider ignores the predicate entirely;
	// the engine must re-apply it to every returned row.
	PushdownUnsupported FilterPushdown = iota
	// PushdownInexact means the provider narrows results but may return
	// false positives; the engine must still re-apply the predicate.
	PushdownInexact
	// PushdownExact means the provider evaluates the predicate completely.
	PushdownExact
)

// RecordStream is a finite, non-restartable, pull-based sequence of Arrow
// record batches. Next returns io.EOF after the final batch; any other error
// terminates the stream. Records returned by Next are owned by the caller,
// which must Release them.
//
// A consumer that stops early must Close the stream (or cancel the context
// passed to Next) so the producer stops issuing backend requests.
type RecordStream interface {
	// Schema returns the schema every record produced by Next adheres to.
	Schema() *arrow.Schema

	// Next returns the next record batch, io.EOF at normal end of stream, or
	// a terminal error. Records already returned remain valid after a failure.
	Next(ctx context.Context) (arrow.Record, error)

	// Close stops the stream and releases producer-side resources. It is
	// idempotent and safe to call before exhaustion.
	Close() error
}

// ExecutionPlan describes how to produce the rows of a (sub)query. Plans in
// this module are leaf-level, single-partition producers; the interface still
// carries the structural methods the engine requires of every plan node.
type ExecutionPlan interface {
	// Name identifies the plan node in explain output.
	Name() string

	// Schema returns the output schema of the plan.
	Schema() *arrow.Schema

	// Partitions returns the number of output partitions.
	Partitions() int

	// Children returns the child plans, empty for leaf plans.
	Children() []ExecutionPlan

	// WithNewChildren returns a structurally rewritten plan. Leaf plans
	// accept only an empty child list and return themselves.
	WithNewChildren(children []ExecutionPlan) (ExecutionPlan, error)

	// Execute starts producing the given partition and returns its record
	// stream. Each call yields a fresh, independent stream.
	Execute(ctx context.Context, partition int) (RecordStream, error)
}

// TableProvider exposes an external data source as a relational table.
type TableProvider interface {
	// Schema returns the declared schema of the table.
	Schema() *arrow.Schema

	// Constraints returns advisory schema constraints; they are not enforced
	// by the provider.
	Constraints() Constraints

	// Scan plans a read of the table. projection selects columns of the
	// declared schema by index (nil means all), filters are engine-level
	// predicates the provider may ignore, and limit caps the number of rows
	// to produce (negative means unlimited).
	Scan(ctx context.Context, projection []int, filters []Expr, limit int) (ExecutionPlan, error)

	// SupportsFiltersPushdown reports, per filter, how completely the
	// provider would evaluate it during a scan.
	SupportsFiltersPushdown(filters []Expr) []FilterPushdown
}

// ConstraintKind enumerates the advisory constraint kinds.
type ConstraintKind int

const (
	ConstraintPrimaryKey ConstraintKind = iota
	ConstraintUnique
)

// Constraint is an advisory schema constraint over columns of the declared
// schema, identified by index.
type Constraint struct {
	Kind    ConstraintKind
	Columns []int
}

// Constraints is the set of advisory constraints a table declares.
type Constraints []Constraint

// PrimaryKey builds an advisory primary-key constraint over the given column
// indices.
func PrimaryKey(columns ...int) Constraint {
	return Constraint{Kind: ConstraintPrimaryKey, Columns: columns}
}
