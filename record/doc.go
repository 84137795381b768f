// Package record synthesizes lightweight, fixed-schema record types from a
// validated field specification.
//
// A record type is declared once, at configuration time, and produces
// instances supporting access by field name, access by positional index,
// ordered iteration, structural equality, map conversion, and a private
// append-only log.
//
// # Defining a type
//
// Field names are given as a single delimiter-separated string or a slice:
//
//	Point := record.MustDefine("Point", "x y", record.WithDefault(0))
//
//	p, _ := Point.New(11)            // Point(x=11, y=0)
//	x, _ := p.Get("x")               // access by name
//	y, _ := p.At(1)                  // access by index
//	m := p.ToMap()                   // {"x": 11, "y": 0}
//	q, _ := Point.FromMap(m)         // q.Equal(p) == true
//
// Validation happens at definition time, never at construction: names must be
// identifiers, must not be reserved words, must not start with a digit, and
// field names must not start with an underscore or repeat.
//
// # Defaults
//
// [WithFieldDefaults] supplies per-field defaults and must cover a contiguous
// trailing run of the declared fields, mirroring positional arguments with
// defaults. [WithDefault] supplies a blanket default for every field and
// removes the trailing-run constraint.
//
// # Registry
//
// Define registers each new type in [DefaultRegistry] under its name. Record
// decoding consults the registry to rebind serialized state to the right
// type; [NewRegistry] creates isolated registries, e.g. for catalogs loaded
// from configuration.
//
// # Errors
//
// Each validation failure has its own sentinel:
//
//   - [ErrNoFields], [ErrInvalidName], [ErrReservedName], [ErrLeadingDigit],
//     [ErrLeadingUnderscore], [ErrDuplicateField] - schema definition
//   - [ErrDefaultCoverage], [ErrUnknownOption] - default rules and options
//   - [ErrUnboundField], [ErrTooManyValues], [ErrDuplicateBinding] - construction
//   - [ErrUnknownField], [ErrIndexOutOfRange] - access
package record
