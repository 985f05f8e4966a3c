package record

// AbsentValue is the sentinel type marking a field that received no value
// during sparse construction. It is a dedicated marker, distinguishable from
// every legitimate field value (including nil, zero and empty string).
type AbsentValue struct{}

// Absent is the sentinel placed in sparse records for omitted fields.
var Absent = AbsentValue{}

func (AbsentValue) String() string {
	return "<absent>"
}

// MarshalJSON renders the sentinel as JSON null.
func (AbsentValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IsAbsent reports whether v is the Absent sentinel.
func IsAbsent(v any) bool {
	_, ok := v.(AbsentValue)
	return ok
}
