package importer

import "testing"

// ----------------------------------------------------------------------------
// CleanNumeric Tests
// ----------------------------------------------------------------------------

func TestCleanNumeric(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		allowDecimal bool
		want         string
	}{
		{"digits pass through", "30", true, "30"},
		{"strips unit suffix", "30 days", true, "30"},
		{"strips letters and symbols", "~45d!", true, "45"},
		{"keeps first decimal point", "1.5", true, "1.5"},
		{"drops later decimal points", "1.2.3", true, "1.23"},
		{"decimal disallowed", "1.5", false, "15"},
		{"empty input", "", true, ""},
		{"no digits at all", "immediate", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanNumeric(tt.input, tt.allowDecimal); got != tt.want {
				t.Errorf("CleanNumeric(%q, %v) = %q, want %q", tt.input, tt.allowDecimal, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// CleanCurrency Tests
// ----------------------------------------------------------------------------

func TestCleanCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"pure number stays unit-less", "12", "12"},
		{"pure decimal stays unit-less", "12.5", "12.5"},
		{"lpa suffix upper-cased", "12 lpa", "12LPA"},
		{"lpa collapses to one trailing suffix", "12 LPA lpa", "12LPA"},
		{"lpa moved to the end", "LPA 12", "12LPA"},
		{"other characters stripped", "₹12,00,000 LPA", "1200000LPA"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCurrency(tt.input); got != tt.want {
				t.Errorf("CleanCurrency(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
