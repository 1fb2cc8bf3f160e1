// Package engine defines the extension contracts a host columnar query
// engine uses to discover and drive the components in this module:
//   - TableProvider / ExecutionPlan / RecordStream: virtual tables that
//     produce lazy streams of Arrow record batches
//   - ScalarFunction / Signature: vectorized scalar UDFs with their own
//     type negotiation
//   - Registry: registration surface for functions and tables
//   - Typed plan/execution/internal errors shared by all extensions
//
// The engine itself (planning, expression evaluation, scheduling) is an
// external collaborator; this package only pins down the seam.
package engine
