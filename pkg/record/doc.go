// Package record defines the two record shapes a picket schema produces:
// the ordered Mapping and the fixed-arity Tuple, plus the Absent sentinel
// used by sparse construction.
//
// Records are immutable value types. Field set and order always match the
// schema that built them, and no back-reference to the schema is kept.
package record
