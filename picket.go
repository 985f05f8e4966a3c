package picket

import "sort"

// Version is the library version reported by the CLI and the adapters.
var Version = "0.1.0"

// Caster converts a raw input value to its typed form before record
// assembly. Casters must be pure: no other component observes anything but
// the returned value and error.
type Caster func(value any) (any, error)

// Schema is an immutable, ordered list of uniquely named fields.
//
// A Schema is created once with Define, optionally configured with casters,
// and then shared by every record built from it. Concurrent construction
// calls against the same Schema are safe; SetCasters must happen before the
// schema is shared.
type Schema struct {
	fields  []string
	index   map[string]int
	casters map[string]Caster
}

// Option configures a Schema at definition time.
type Option func(*Schema) error

// WithCasters registers per-field casters during Define.
func WithCasters(casters map[string]Caster) Option {
	return func(s *Schema) error {
		return s.SetCasters(casters)
	}
}

// Define creates a schema from an ordered list of unique field names.
// It fails with DuplicateFieldError if any name repeats.
func Define(names []string, opts ...Option) (*Schema, error) {
	s := &Schema{
		fields:  make([]string, 0, len(names)),
		index:   make(map[string]int, len(names)),
		casters: make(map[string]Caster),
	}

	var dups []string
	seenDup := make(map[string]bool)
	for _, name := range names {
		if _, ok := s.index[name]; ok {
			if !seenDup[name] {
				dups = append(dups, name)
				seenDup[name] = true
			}
			continue
		}
		s.index[name] = len(s.fields)
		s.fields = append(s.fields, name)
	}
	if len(dups) > 0 {
		return nil, &DuplicateFieldError{Fields: dups}
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// MustDefine is like Define but panics on error. Intended for package-level
// schema variables with literal field lists.
func MustDefine(names []string, opts ...Option) *Schema {
	s, err := Define(names, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the schema's field names in definition order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Contains reports whether name is one of the schema's fields.
func (s *Schema) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// IndexOf returns the position of name in the field order, or -1 if the
// schema does not contain it.
func (s *Schema) IndexOf(name string) int {
	i, ok := s.index[name]
	if !ok {
		return -1
	}
	return i
}

// SetCasters registers per-field casters. Registration is additive: calling
// it twice merges the mappings. It fails with UnknownFieldError if any key
// is not a schema field, registering nothing in that case.
func (s *Schema) SetCasters(casters map[string]Caster) error {
	var unknown []string
	for name := range casters {
		if _, ok := s.index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &UnknownFieldError{Fields: unknown}
	}

	for name, fn := range casters {
		s.casters[name] = fn
	}
	return nil
}

// Caster returns the caster registered for name, if any.
func (s *Schema) Caster(name string) (Caster, bool) {
	fn, ok := s.casters[name]
	return fn, ok
}
