package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		expected bool
	}{
		{name: "valid number", phone: "010-1234-5678", expected: true},
		{name: "missing hyphens", phone: "01012345678", expected: false},
		{name: "wrong grouping", phone: "0101-234-5678", expected: false},
		{name: "letters", phone: "010-abcd-5678", expected: false},
		{name: "trailing garbage", phone: "010-1234-5678x", expected: false},
		{name: "empty", phone: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidPhoneNumber(tt.phone))
		})
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		expected string
		wantErr  bool
	}{
		{name: "already formatted", phone: "010-1234-5678", expected: "010-1234-5678"},
		{name: "bare digits", phone: "01012345678", expected: "010-1234-5678"},
		{name: "spaces and dots", phone: "010.1234 5678", expected: "010-1234-5678"},
		{name: "too few digits", phone: "010-1234-567", wantErr: true},
		{name: "too many digits", phone: "010-1234-56789", wantErr: true},
		{name: "empty", phone: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhoneNumber(tt.phone)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
