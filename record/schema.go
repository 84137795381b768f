package record

import (
	"fmt"
	"strings"

	"github.com/jacentio/strata/internal/ident"
)

// Type is a validated record schema: an ordered field list, a name, and a
// resolved default table. It doubles as the constructor for instances bound
// to the schema.
type Type struct {
	name       string
	fields     []string
	index      map[string]int
	defaults   []any
	hasDefault []bool
}

// Option configures a type definition.
type Option func(*defineOptions)

type defineOptions struct {
	fieldDefaults map[string]any
	blanket       any
	hasBlanket    bool
}

// WithFieldDefaults supplies per-field default values. Without a blanket
// default, the keys must cover exactly a contiguous trailing run of the
// declared fields, mirroring positional-argument-with-defaults semantics.
func WithFieldDefaults(defaults map[string]any) Option {
	return func(o *defineOptions) {
		o.fieldDefaults = defaults
	}
}

// WithDefault supplies a blanket default applied to every field without an
// explicit entry in WithFieldDefaults. It removes the trailing-run constraint.
func WithDefault(v any) Option {
	return func(o *defineOptions) {
		o.blanket = v
		o.hasBlanket = true
	}
}

// Define validates a schema and returns the type bound to it. The field list
// is either a single string with names separated by whitespace and/or commas,
// or a []string. The new type is registered in the default registry under its
// name so that decoding can locate it later.
func Define(typeName string, fields any, opts ...Option) (*Type, error) {
	t, err := define(typeName, fields, opts...)
	if err != nil {
		return nil, err
	}
	defaultRegistry.Register(t)
	return t, nil
}

// MustDefine is like Define but panics on a schema validation error.
// Intended for package-level type declarations.
func MustDefine(typeName string, fields any, opts ...Option) *Type {
	t, err := Define(typeName, fields, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func define(typeName string, fields any, opts ...Option) (*Type, error) {
	names, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoFields
	}

	if err := checkName(typeName); err != nil {
		return nil, err
	}
	index := make(map[string]int, len(names))
	for i, name := range names {
		if err := checkName(name); err != nil {
			return nil, err
		}
		if ident.LeadingUnderscore(name) {
			return nil, fmt.Errorf("%w: %q", ErrLeadingUnderscore, name)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		index[name] = i
	}

	var o defineOptions
	for _, opt := range opts {
		opt(&o)
	}

	t := &Type{
		name:       typeName,
		fields:     names,
		index:      index,
		defaults:   make([]any, len(names)),
		hasDefault: make([]bool, len(names)),
	}
	if err := t.resolveDefaults(o); err != nil {
		return nil, err
	}
	return t, nil
}

// resolveDefaults builds the per-field default table from the options.
func (t *Type) resolveDefaults(o defineOptions) error {
	for name := range o.fieldDefaults {
		if _, ok := t.index[name]; !ok {
			return fmt.Errorf("%w: unknown field %q", ErrDefaultCoverage, name)
		}
	}

	if o.hasBlanket {
		for i, name := range t.fields {
			t.hasDefault[i] = true
			if v, ok := o.fieldDefaults[name]; ok {
				t.defaults[i] = v
			} else {
				t.defaults[i] = o.blanket
			}
		}
		return nil
	}

	if len(o.fieldDefaults) == 0 {
		return nil
	}

	// Defaults must form a suffix of the declared order.
	start := len(t.fields) - len(o.fieldDefaults)
	for _, name := range t.fields[:start] {
		if _, ok := o.fieldDefaults[name]; ok {
			return fmt.Errorf("%w: %q is not in the trailing run", ErrDefaultCoverage, name)
		}
	}
	for i, name := range t.fields[start:] {
		t.defaults[start+i] = o.fieldDefaults[name]
		t.hasDefault[start+i] = true
	}
	return nil
}

// normalizeFields converts the field specification to an ordered name slice.
func normalizeFields(fields any) ([]string, error) {
	switch f := fields.(type) {
	case string:
		return strings.Fields(strings.ReplaceAll(f, ",", " ")), nil
	case []string:
		names := make([]string, len(f))
		copy(names, f)
		return names, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidFields, fields)
	}
}

// checkName applies the identifier rules shared by type and field names.
// The leading-digit and reserved-word checks come first so each failure
// keeps its own error kind.
func checkName(name string) error {
	if ident.LeadingDigit(name) {
		return fmt.Errorf("%w: %q", ErrLeadingDigit, name)
	}
	if ident.Reserved(name) {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	if !ident.Valid(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// Fields returns the declared field names in order.
func (t *Type) Fields() []string {
	names := make([]string, len(t.fields))
	copy(names, t.fields)
	return names
}

// NumFields returns the number of declared fields.
func (t *Type) NumFields() int { return len(t.fields) }

// Doc returns the one-line signature for the type, e.g. "Point(x, y)".
func (t *Type) Doc() string {
	return fmt.Sprintf("%s(%s)", t.name, strings.Join(t.fields, ", "))
}

// New constructs an instance from positional values bound left-to-right in
// declared order, filling remaining fields from the schema defaults.
func (t *Type) New(args ...any) (*Record, error) {
	return t.Make(args, nil)
}

// Make constructs an instance with the full binding sequence: positional
// values, then named values, then schema defaults. It fails if a named value
// collides with a positional one or if any field remains unbound.
func (t *Type) Make(args []any, named map[string]any) (*Record, error) {
	n := len(t.fields)
	if len(args) > n {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrTooManyValues, t.name, n, len(args))
	}

	values := make([]any, n)
	bound := make([]bool, n)
	for i, v := range args {
		values[i] = v
		bound[i] = true
	}
	for name, v := range named {
		i, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		if bound[i] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBinding, name)
		}
		values[i] = v
		bound[i] = true
	}
	for i := range values {
		if bound[i] {
			continue
		}
		if !t.hasDefault[i] {
			return nil, fmt.Errorf("%w: %q", ErrUnboundField, t.fields[i])
		}
		values[i] = t.defaults[i]
	}

	return &Record{t: t, values: values}, nil
}

// FromMap constructs an instance from a field-name-to-value mapping. For any
// valid instance r, FromMap(r.ToMap()) reproduces r.
func (t *Type) FromMap(m map[string]any) (*Record, error) {
	return t.Make(nil, m)
}

// FromState restores an instance from a state captured with Record.State.
// The restored instance always starts with an empty log.
func (t *Type) FromState(state []any) (*Record, error) {
	if len(state) != len(t.fields) {
		return nil, fmt.Errorf("%w: %s has %d fields, state has %d values",
			ErrBadState, t.name, len(t.fields), len(state))
	}
	values := make([]any, len(state))
	copy(values, state)
	return &Record{t: t, values: values}, nil
}
