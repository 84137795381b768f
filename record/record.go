package record

import (
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"strings"
	"time"
)

// Record is a mutable instance of a defined type: an ordered array of field
// values plus a private append-only log. Each instance exclusively owns both.
type Record struct {
	t      *Type
	values []any
	log    []LogEntry
}

// LogEntry is a single timestamped message in a record's log.
type LogEntry struct {
	Time    time.Time
	Message string
}

// Type returns the type the record is bound to.
func (r *Record) Type() *Type { return r.t }

// Len returns the field count.
func (r *Record) Len() int { return len(r.values) }

// Get returns the value of the named field.
func (r *Record) Get(name string) (any, error) {
	i, ok := r.t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return r.values[i], nil
}

// Set assigns the value of the named field.
func (r *Record) Set(name string, v any) error {
	i, ok := r.t.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	r.values[i] = v
	return nil
}

// At returns the value of the field at index i in declared order.
func (r *Record) At(i int) (any, error) {
	if i < 0 || i >= len(r.values) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return r.values[i], nil
}

// SetAt assigns the value of the field at index i in declared order.
func (r *Record) SetAt(i int, v any) error {
	if i < 0 || i >= len(r.values) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	r.values[i] = v
	return nil
}

// Values returns an iterator over the field values in declared order.
// Each call starts fresh from the first field.
func (r *Record) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range r.values {
			if !yield(v) {
				return
			}
		}
	}
}

// All returns an iterator over (name, value) pairs in declared order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i, name := range r.t.fields {
			if !yield(name, r.values[i]) {
				return
			}
		}
	}
}

// Equal reports whether other is an instance of the same type with every
// field value equal pairwise. A nil record or an instance of a different
// type is unequal, never an error.
func (r *Record) Equal(other *Record) bool {
	if other == nil || r.t != other.t {
		return false
	}
	for i := range r.values {
		if !reflect.DeepEqual(r.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

// ToMap returns a new map from field names to current values.
func (r *Record) ToMap() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, name := range r.t.fields {
		m[name] = r.values[i]
	}
	return m
}

// String returns "TypeName(f1=v1, f2=v2)" with fields in declared order.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.t.name)
	b.WriteByte('(')
	for i, name := range r.t.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", name, r.values[i])
	}
	b.WriteByte(')')
	return b.String()
}

// Log appends a timestamped message to the record's private log.
func (r *Record) Log(message string) {
	r.log = append(r.log, LogEntry{Time: time.Now(), Message: message})
}

// GetLog returns all log entries recorded so far, in call order.
func (r *Record) GetLog() []LogEntry {
	return r.log
}

// State captures the ordered field values. The log is excluded: restoring a
// state with Type.FromState yields an instance with an empty log.
func (r *Record) State() []any {
	state := make([]any, len(r.values))
	copy(state, r.values)
	return state
}

// recordJSON is the wire shape for a serialized record. The log is excluded
// from persisted state.
type recordJSON struct {
	Type   string `json:"type"`
	Values []any  `json:"values"`
}

// MarshalJSON encodes the record as its type name and ordered field values.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{Type: r.t.name, Values: r.values})
}

// UnmarshalJSON decodes a record, resolving its type through the default
// registry. The decoded record starts with an empty log.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w recordJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t, ok := defaultRegistry.Lookup(w.Type)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, w.Type)
	}
	restored, err := t.FromState(w.Values)
	if err != nil {
		return err
	}
	*r = *restored
	return nil
}
