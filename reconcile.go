package picket

import "sort"

// reconcile merges positional and named raw values into a single field→value
// assignment.
//
// Positional values are assigned to the leading fields in schema order.
// Named values override positional ones for the same field. Named keys
// outside the schema abort the call with InvalidKeyError carrying every
// offender, collected in one pass. The returned assignment holds only fields
// that actually received a value.
func (s *Schema) reconcile(positional []any, named map[string]any) (map[string]any, error) {
	if len(positional) > len(s.fields) {
		return nil, &TooManyPositionalValuesError{Got: len(positional), Max: len(s.fields)}
	}

	assignment := make(map[string]any, len(s.fields))
	for i, v := range positional {
		assignment[s.fields[i]] = v
	}

	var invalid []string
	for key := range named {
		if _, ok := s.index[key]; !ok {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, &InvalidKeyError{Keys: invalid}
	}

	for key, v := range named {
		assignment[key] = v
	}

	return assignment, nil
}

// castAll applies each registered caster to its field's raw value. Fields
// without a caster pass through untouched. Each field is cast independently;
// the first converter failure aborts the call wrapped as CastError.
func (s *Schema) castAll(assignment map[string]any) (map[string]any, error) {
	if len(s.casters) == 0 {
		return assignment, nil
	}

	out := make(map[string]any, len(assignment))
	for field, raw := range assignment {
		fn, ok := s.casters[field]
		if !ok {
			out[field] = raw
			continue
		}
		cast, err := fn(raw)
		if err != nil {
			return nil, &CastError{Field: field, Err: err}
		}
		out[field] = cast
	}
	return out, nil
}
