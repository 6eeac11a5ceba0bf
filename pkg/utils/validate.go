package utils

import (
	"math"
	"net/mail"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mbtiTypes is the fixed 16-value personality-type enumeration.
var mbtiTypes = map[string]struct{}{
	"ISTJ": {}, "ISFJ": {}, "INFJ": {}, "INTJ": {},
	"ISTP": {}, "ISFP": {}, "INFP": {}, "INTP": {},
	"ESTP": {}, "ESFP": {}, "ENFP": {}, "ENTP": {},
	"ESTJ": {}, "ESFJ": {}, "ENFJ": {}, "ENTJ": {},
}

// IsValidMBTI reports whether mbti is one of the 16 known types.
func IsValidMBTI(mbti string) bool {
	_, ok := mbtiTypes[mbti]
	return ok
}

// IsValidScore reports whether score is a finite number in [1, 5].
func IsValidScore(score float64) bool {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return false
	}
	return score >= 1 && score <= 5
}

// IsValidObjectID reports whether id is a valid 24-character hex document id.
func IsValidObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// IsValidEmail reports whether email parses as an RFC 5322 address.
func IsValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// ParsePage parses 1-based page and size query values, applying defaults for
// empty strings. Non-numeric or non-positive values are rejected.
func ParsePage(pageStr, sizeStr string, defaultSize int64) (page, size int64, ok bool) {
	page = 1
	size = defaultSize

	if pageStr != "" {
		v, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || v < 1 {
			return 0, 0, false
		}
		page = v
	}
	if sizeStr != "" {
		v, err := strconv.ParseInt(sizeStr, 10, 64)
		if err != nil || v < 1 {
			return 0, 0, false
		}
		size = v
	}
	return page, size, true
}
