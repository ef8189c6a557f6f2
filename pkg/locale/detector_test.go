package locale

import (
	"testing"
)

func TestDetectRegion(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     string
	}{
		{
			name:     "Jerusalem timezone",
			timezone: "Asia/Jerusalem",
			want:     "IL",
		},
		{
			name:     "Tel Aviv timezone",
			timezone: "Asia/Tel_Aviv",
			want:     "IL",
		},
		{
			name:     "New York timezone",
			timezone: "America/New_York",
			want:     "US",
		},
		{
			name:     "Chicago timezone",
			timezone: "America/Chicago",
			want:     "US",
		},
		{
			name:     "case insensitive match",
			timezone: "america/new_york",
			want:     "US",
		},
		{
			name:     "UTC defaults to IL",
			timezone: "UTC",
			want:     "IL",
		},
		{
			name:     "London timezone defaults to IL",
			timezone: "Europe/London",
			want:     "IL",
		},
		{
			name:     "empty timezone defaults to IL",
			timezone: "",
			want:     "IL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectRegion(tt.timezone)
			if got != tt.want {
				t.Errorf("DetectRegion(%q) = %q, want %q", tt.timezone, got, tt.want)
			}
		})
	}
}

func TestInferCountryFromPhone(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		wantCode string
		wantNil  bool
	}{
		{
			name:     "Israel phone",
			phone:    "+972501234567",
			wantCode: "IL",
		},
		{
			name:     "Israel phone without plus",
			phone:    "972501234567",
			wantCode: "IL",
		},
		{
			name:     "US phone",
			phone:    "+12125551234",
			wantCode: "US",
		},
		{
			name:    "unknown country",
			phone:   "+442071234567",
			wantNil: true,
		},
		{
			name:    "empty phone",
			phone:   "",
			wantNil: true,
		},
		{
			name:    "invalid phone",
			phone:   "not-a-phone",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferCountryFromPhone(tt.phone)
			if tt.wantNil {
				if got != nil {
					t.Errorf("InferCountryFromPhone(%q) = %v, want nil", tt.phone, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("InferCountryFromPhone(%q) = nil, want country with code %q", tt.phone, tt.wantCode)
			}
			if got.Code != tt.wantCode {
				t.Errorf("InferCountryFromPhone(%q).Code = %q, want %q", tt.phone, got.Code, tt.wantCode)
			}
		})
	}
}
