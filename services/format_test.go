package services

import "testing"

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "$0.00"},
		{"small integer", 5, "$5.00"},
		{"with decimals", 42.50, "$42.50"},
		{"hundreds", 999.99, "$999.99"},
		{"thousands", 1234.56, "$1,234.56"},
		{"ten thousands", 12345.00, "$12,345.00"},
		{"millions", 1234567.89, "$1,234,567.89"},
		{"negative", -100.00, "-$100.00"},
		{"negative thousands", -2500.50, "-$2,500.50"},
		{"exact thousands boundary", 1000, "$1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatUSD(tt.input)
			if got != tt.expect {
				t.Errorf("FormatUSD(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"whole", 27, "27"},
		{"zero", 0, "0"},
		{"fraction", 4.58, "4.58"},
		{"trailing zero trimmed", 7.5, "7.5"},
		{"rounds to two places", 26.8, "26.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatQty(tt.input)
			if got != tt.expect {
				t.Errorf("FormatQty(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}
