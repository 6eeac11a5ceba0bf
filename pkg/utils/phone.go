package utils

import (
	"errors"
	"regexp"
)

var (
	// Korean mobile numbers are stored as three hyphen-separated groups
	phoneRegex = regexp.MustCompile(`^[0-9]{3}-[0-9]{4}-[0-9]{4}$`)
	// Regex to remove non-digit characters
	digitsOnlyRegex = regexp.MustCompile(`[^0-9]`)
)

// IsValidPhoneNumber reports whether phone matches the NNN-NNNN-NNNN pattern.
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// NormalizePhoneNumber strips separators and reformats an 11-digit number
// into the NNN-NNNN-NNNN storage form.
func NormalizePhoneNumber(phone string) (string, error) {
	if phone == "" {
		return "", errors.New("phone number cannot be empty")
	}

	digits := digitsOnlyRegex.ReplaceAllString(phone, "")
	if len(digits) != 11 {
		return "", errors.New("phone number must have 11 digits")
	}

	return digits[:3] + "-" + digits[3:7] + "-" + digits[7:], nil
}
