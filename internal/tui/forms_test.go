package tui

import "testing"

func TestValidateDeadline(t *testing.T) {
	check := validateDeadline(testNow)
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-03-09", false},
		{"2026-03-14", false},
		{"2026-03-08", true},
		{"next week", true},
	}
	for _, tt := range tests {
		if err := check(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validateDeadline(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestValidateHours(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"1", false},
		{"24", false},
		{"0", true},
		{"25", true},
		{"two", true},
	}
	for _, tt := range tests {
		if err := validateHours(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validateHours(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestValidateEnd(t *testing.T) {
	fm := &EventFormModel{Start: "10:00"}
	check := validateEnd(fm)
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"10:30", false},
		{"10:00", true},
		{"09:00", true},
		{"10.30", true},
	}
	for _, tt := range tests {
		if err := check(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validateEnd(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
