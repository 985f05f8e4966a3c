/*
Package picket builds validated, ordered records from loosely structured input.

A picket Schema is a fixed, ordered list of uniquely named fields. Once
defined, the schema constructs records from any mix of positional and named
raw values: positional values are aligned with the field order, named values
override them, and the result is checked against the schema before a record
is produced. Keys that do not belong to the schema are always rejected, with
every offending key reported at once.

Schemas target the common pattern of parsing semi-structured input (CSV rows,
configuration blocks, form data) into strict, typo-proof structured values.

# Record Shapes

Every schema can produce two record shapes, both ordered exactly like the
schema:

  - record.Mapping: ordered field→value pairs.
  - record.Tuple: a fixed-arity record whose fields are also accessible by name.

# Strict and Sparse Construction

Strict builders (BuildMapping, BuildTuple) require every field to receive a
value and fail with MissingKeysError otherwise. Sparse builders
(SparseMapping, SparseTuple) fill omitted fields with the record.Absent
sentinel instead. Unknown keys fail under both policies.

# Casting

A schema may carry per-field casters: pure functions converting a raw value
to its typed form. The Cast builder variants (BuildMappingCast and friends)
run each field's caster before validation. Fields without a caster pass
through untouched.

# Usage

	sch, err := picket.Define("rhubarb", "cherry", "mud")
	if err != nil {
		log.Fatal(err)
	}

	m, err := sch.BuildMapping([]any{10, 23}, map[string]any{"mud": 1})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(m) // {rhubarb: 10, cherry: 23, mud: 1}

Schemas are immutable after configuration and safe for concurrent use.
SetCasters is an additive, configure-once step: mutate casters before the
schema is shared, never concurrently with construction calls.
*/
package picket
