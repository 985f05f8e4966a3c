package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Mapping is an immutable, ordered field→value record.
// Field order is critical for serializers, so it is kept alongside the
// values rather than relying on map iteration.
type Mapping struct {
	fields []string
	values map[string]any
}

// NewMapping builds a Mapping from an ordered field list and a complete
// field→value assignment. Both inputs are copied; the caller keeps
// ownership of its arguments.
func NewMapping(fields []string, values map[string]any) *Mapping {
	m := &Mapping{
		fields: make([]string, len(fields)),
		values: make(map[string]any, len(fields)),
	}
	copy(m.fields, fields)
	for _, f := range fields {
		m.values[f] = values[f]
	}
	return m
}

// Len returns the number of fields.
func (m *Mapping) Len() int {
	return len(m.fields)
}

// Fields returns the field names in record order.
func (m *Mapping) Fields() []string {
	out := make([]string, len(m.fields))
	copy(out, m.fields)
	return out
}

// Get returns the value for name and whether the field exists.
func (m *Mapping) Get(name string) (any, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Values returns the values in record order.
func (m *Mapping) Values() []any {
	out := make([]any, len(m.fields))
	for i, f := range m.fields {
		out[i] = m.values[f]
	}
	return out
}

// Map returns a plain map copy of the record. Order is lost; use Fields and
// Values when order matters.
func (m *Mapping) Map() map[string]any {
	out := make(map[string]any, len(m.fields))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// MarshalJSON serializes the mapping as a JSON object preserving field
// order, which encoding/json would not do for a plain map.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[f])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *Mapping) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range m.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", f, m.values[f])
	}
	b.WriteByte('}')
	return b.String()
}
