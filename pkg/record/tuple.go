package record

import (
	"fmt"
	"strings"
)

// Tuple is an immutable fixed-arity record. Values are positional, in the
// order of the schema that built the tuple, and remain accessible by field
// name.
type Tuple struct {
	fields []string
	values []any
}

// NewTuple builds a Tuple from an ordered field list and a complete
// field→value assignment. Both inputs are copied.
func NewTuple(fields []string, values map[string]any) *Tuple {
	t := &Tuple{
		fields: make([]string, len(fields)),
		values: make([]any, len(fields)),
	}
	copy(t.fields, fields)
	for i, f := range fields {
		t.values[i] = values[f]
	}
	return t
}

// Len returns the tuple's arity.
func (t *Tuple) Len() int {
	return len(t.fields)
}

// Fields returns the field names in positional order.
func (t *Tuple) Fields() []string {
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

// At returns the value at position i. It panics if i is out of range, like
// a slice index.
func (t *Tuple) At(i int) any {
	return t.values[i]
}

// Get returns the value for name and whether the field exists.
func (t *Tuple) Get(name string) (any, bool) {
	for i, f := range t.fields {
		if f == name {
			return t.values[i], true
		}
	}
	return nil, false
}

// Values returns a copy of the positional values.
func (t *Tuple) Values() []any {
	out := make([]any, len(t.values))
	copy(out, t.values)
	return out
}

// Mapping converts the tuple to its ordered-mapping equivalent.
func (t *Tuple) Mapping() *Mapping {
	values := make(map[string]any, len(t.fields))
	for i, f := range t.fields {
		values[f] = t.values[i]
	}
	return NewMapping(t.fields, values)
}

// MarshalJSON serializes the tuple as an ordered JSON object, same as the
// equivalent Mapping. Positional JSON arrays would drop the field names.
func (t *Tuple) MarshalJSON() ([]byte, error) {
	return t.Mapping().MarshalJSON()
}

func (t *Tuple) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, f := range t.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", f, t.values[i])
	}
	b.WriteByte(')')
	return b.String()
}
