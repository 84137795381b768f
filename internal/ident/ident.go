// Package ident provides name validation for record type and field names.
package ident

import "go/token"

// Valid reports whether name is a legal identifier: alphanumeric characters
// and underscores only, not starting with a digit, and not a reserved word.
func Valid(name string) bool {
	return token.IsIdentifier(name)
}

// Reserved reports whether name is a language reserved word.
func Reserved(name string) bool {
	return token.IsKeyword(name)
}

// LeadingDigit reports whether name starts with a decimal digit.
func LeadingDigit(name string) bool {
	return len(name) > 0 && name[0] >= '0' && name[0] <= '9'
}

// LeadingUnderscore reports whether name starts with an underscore.
func LeadingUnderscore(name string) bool {
	return len(name) > 0 && name[0] == '_'
}
