package ident

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"x", true},
		{"ip_address", true},
		{"_hidden", true},
		{"x1", true},
		{"", false},
		{"1x", false},
		{"ip-address", false},
		{"ip address", false},
		{"func", false},
		{"na.me", false},
	}

	for _, tt := range tests {
		if got := Valid(tt.name); got != tt.valid {
			t.Errorf("Valid(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestReserved(t *testing.T) {
	for _, name := range []string{"func", "return", "type", "range"} {
		if !Reserved(name) {
			t.Errorf("expected %q to be reserved", name)
		}
	}
	for _, name := range []string{"x", "funcs", "returned", ""} {
		if Reserved(name) {
			t.Errorf("expected %q to not be reserved", name)
		}
	}
}

func TestLeadingDigit(t *testing.T) {
	if !LeadingDigit("9lives") {
		t.Error("expected leading digit for '9lives'")
	}
	if LeadingDigit("lives9") {
		t.Error("expected no leading digit for 'lives9'")
	}
	if LeadingDigit("") {
		t.Error("expected no leading digit for empty string")
	}
}

func TestLeadingUnderscore(t *testing.T) {
	if !LeadingUnderscore("_x") {
		t.Error("expected leading underscore for '_x'")
	}
	if LeadingUnderscore("x_") {
		t.Error("expected no leading underscore for 'x_'")
	}
	if LeadingUnderscore("") {
		t.Error("expected no leading underscore for empty string")
	}
}
