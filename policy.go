package picket

import (
	"errors"
	"sort"

	"github.com/aretw0/picket/pkg/record"
)

// complete enforces the strict policy: the assignment's key set must equal
// the schema's field set exactly. Missing fields are reported together in
// MissingKeysError; keys outside the schema (which reconcile already
// rejects) are reported in InvalidKeyError. When both sets are non-empty the
// two errors are joined so neither is lost.
func (s *Schema) complete(assignment map[string]any) error {
	var missing []string
	for _, field := range s.fields {
		if _, ok := assignment[field]; !ok {
			missing = append(missing, field)
		}
	}

	var invalid []string
	for key := range assignment {
		if _, ok := s.index[key]; !ok {
			invalid = append(invalid, key)
		}
	}

	switch {
	case len(missing) > 0 && len(invalid) > 0:
		sort.Strings(invalid)
		return errors.Join(&MissingKeysError{Keys: missing}, &InvalidKeyError{Keys: invalid})
	case len(missing) > 0:
		return &MissingKeysError{Keys: missing}
	case len(invalid) > 0:
		sort.Strings(invalid)
		return &InvalidKeyError{Keys: invalid}
	}
	return nil
}

// fillSparse enforces the sparse policy: fields without a value receive the
// record.Absent sentinel. The invalid-key check is never relaxed.
func (s *Schema) fillSparse(assignment map[string]any) error {
	var invalid []string
	for key := range assignment {
		if _, ok := s.index[key]; !ok {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return &InvalidKeyError{Keys: invalid}
	}

	for _, field := range s.fields {
		if _, ok := assignment[field]; !ok {
			assignment[field] = record.Absent
		}
	}
	return nil
}
