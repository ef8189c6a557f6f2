package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		regions []string
		want    string
	}{
		{
			name:  "valid E.164 format",
			input: "+972501234567",
			want:  "+972501234567",
		},
		{
			name:  "with spaces",
			input: "+972 50 123 4567",
			want:  "+972501234567",
		},
		{
			name:  "with dashes",
			input: "+972-50-123-4567",
			want:  "+972501234567",
		},
		{
			name:  "with parentheses",
			input: "+1 (212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +972501234567  ",
			want:  "+972501234567",
		},
		{
			name:  "local number with default region",
			input: "050-123-4567",
			want:  "+972501234567",
		},
		{
			name:    "local number with explicit region",
			input:   "050-123-4567",
			regions: []string{"IL"},
			want:    "+972501234567",
		},
		{
			name:    "explicit region tried before defaults",
			input:   "07911 123456",
			regions: []string{"GB"},
			want:    "+447911123456",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "not a number",
			input: "call me maybe",
			want:  "",
		},
		{
			name:  "too short",
			input: "+97250",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input, tt.regions...)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
