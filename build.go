package picket

import "github.com/aretw0/picket/pkg/record"

// build runs the construction pipeline: reconcile → cast → validate/default.
// The returned assignment is complete (every schema field present) and ready
// for a record builder. On any failure no partial assignment escapes.
func (s *Schema) build(positional []any, named map[string]any, cast, sparse bool) (map[string]any, error) {
	assignment, err := s.reconcile(positional, named)
	if err != nil {
		return nil, err
	}

	if cast {
		assignment, err = s.castAll(assignment)
		if err != nil {
			return nil, err
		}
	}

	if sparse {
		err = s.fillSparse(assignment)
	} else {
		err = s.complete(assignment)
	}
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

// BuildMapping constructs an ordered mapping under the strict policy: every
// field must receive a value.
func (s *Schema) BuildMapping(positional []any, named map[string]any) (*record.Mapping, error) {
	assignment, err := s.build(positional, named, false, false)
	if err != nil {
		return nil, err
	}
	return record.NewMapping(s.fields, assignment), nil
}

// BuildTuple constructs a fixed-arity tuple under the strict policy.
func (s *Schema) BuildTuple(positional []any, named map[string]any) (*record.Tuple, error) {
	assignment, err := s.build(positional, named, false, false)
	if err != nil {
		return nil, err
	}
	return record.NewTuple(s.fields, assignment), nil
}

// BuildMappingCast is BuildMapping with the schema's casters applied to the
// raw values before validation.
func (s *Schema) BuildMappingCast(positional []any, named map[string]any) (*record.Mapping, error) {
	assignment, err := s.build(positional, named, true, false)
	if err != nil {
		return nil, err
	}
	return record.NewMapping(s.fields, assignment), nil
}

// BuildTupleCast is BuildTuple with the schema's casters applied to the raw
// values before validation.
func (s *Schema) BuildTupleCast(positional []any, named map[string]any) (*record.Tuple, error) {
	assignment, err := s.build(positional, named, true, false)
	if err != nil {
		return nil, err
	}
	return record.NewTuple(s.fields, assignment), nil
}

// SparseMapping constructs an ordered mapping under the sparse policy:
// omitted fields are filled with record.Absent instead of failing.
func (s *Schema) SparseMapping(positional []any, named map[string]any) (*record.Mapping, error) {
	assignment, err := s.build(positional, named, false, true)
	if err != nil {
		return nil, err
	}
	return record.NewMapping(s.fields, assignment), nil
}

// SparseTuple constructs a fixed-arity tuple under the sparse policy.
func (s *Schema) SparseTuple(positional []any, named map[string]any) (*record.Tuple, error) {
	assignment, err := s.build(positional, named, false, true)
	if err != nil {
		return nil, err
	}
	return record.NewTuple(s.fields, assignment), nil
}

// SparseMappingCast is SparseMapping with casters applied first. Casters run
// only for fields that received a value; Absent fills are never cast.
func (s *Schema) SparseMappingCast(positional []any, named map[string]any) (*record.Mapping, error) {
	assignment, err := s.build(positional, named, true, true)
	if err != nil {
		return nil, err
	}
	return record.NewMapping(s.fields, assignment), nil
}

// SparseTupleCast is SparseTuple with casters applied first.
func (s *Schema) SparseTupleCast(positional []any, named map[string]any) (*record.Tuple, error) {
	assignment, err := s.build(positional, named, true, true)
	if err != nil {
		return nil, err
	}
	return record.NewTuple(s.fields, assignment), nil
}
