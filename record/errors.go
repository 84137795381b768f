package record

import "errors"

var (
	// ErrNoFields is returned when a type is defined with an empty field list.
	ErrNoFields = errors.New("strata: record types must have at least one field")

	// ErrInvalidFields is returned when the field specification is neither a
	// string nor a []string.
	ErrInvalidFields = errors.New("strata: fields must be a string or []string")

	// ErrInvalidName is returned when a type or field name contains characters
	// other than alphanumerics and underscores.
	ErrInvalidName = errors.New("strata: names can only contain alphanumeric characters and underscores")

	// ErrReservedName is returned when a type or field name is a reserved word.
	ErrReservedName = errors.New("strata: names cannot be a reserved word")

	// ErrLeadingDigit is returned when a type or field name starts with a digit.
	ErrLeadingDigit = errors.New("strata: names cannot start with a digit")

	// ErrLeadingUnderscore is returned when a field name starts with an underscore.
	ErrLeadingUnderscore = errors.New("strata: field names cannot start with an underscore")

	// ErrDuplicateField is returned when the same field name appears twice.
	ErrDuplicateField = errors.New("strata: duplicate field name")

	// ErrDefaultCoverage is returned when field defaults do not cover exactly a
	// contiguous trailing run of the field list, or name an unknown field.
	ErrDefaultCoverage = errors.New("strata: field defaults must cover a trailing run of fields")

	// ErrUnknownOption is returned when a type definition carries an
	// unrecognized configuration option.
	ErrUnknownOption = errors.New("strata: unknown definition option")

	// ErrUnboundField is returned when instantiation leaves a field with no
	// positional value, named value, or default.
	ErrUnboundField = errors.New("strata: field has no value and no default")

	// ErrTooManyValues is returned when more positional values are supplied
	// than the type has fields.
	ErrTooManyValues = errors.New("strata: too many positional values")

	// ErrDuplicateBinding is returned when a named value collides with a field
	// already bound positionally.
	ErrDuplicateBinding = errors.New("strata: field bound both positionally and by name")

	// ErrUnknownField is returned on access or binding by a name the schema
	// does not declare.
	ErrUnknownField = errors.New("strata: unknown field")

	// ErrIndexOutOfRange is returned on access by an index outside the
	// declared field range.
	ErrIndexOutOfRange = errors.New("strata: field index out of range")

	// ErrBadState is returned when restoring from a state with the wrong
	// number of values.
	ErrBadState = errors.New("strata: state does not match field count")

	// ErrUnknownType is returned when decoding a record whose type name is not
	// registered.
	ErrUnknownType = errors.New("strata: record type not registered")
)
