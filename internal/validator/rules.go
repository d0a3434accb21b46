package validator

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Password policy errors.
var (
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters long")
	ErrPasswordNoUpper   = errors.New("password must contain at least 1 uppercase letter")
	ErrPasswordFewDigits = errors.New("password must contain at least 3 numbers")
	ErrPasswordNoSpecial = errors.New("password must contain at least 1 special character (!@#$%^&*)")
)

const specialChars = "!@#$%^&*"

// ValidatePassword enforces the campus password policy: minimum 6 characters,
// at least one uppercase letter, at least three digits and at least one
// special character.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}

	var upper, digits, special int
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upper++
		case unicode.IsDigit(c):
			digits++
		case strings.ContainsRune(specialChars, c):
			special++
		}
	}

	if upper < 1 {
		return ErrPasswordNoUpper
	}
	if digits < 3 {
		return ErrPasswordFewDigits
	}
	if special < 1 {
		return ErrPasswordNoSpecial
	}
	return nil
}

// ValidSectionKey reports whether s is a well-formed COURSE-YEAR-SECTION key,
// e.g. "BSIT-3-1". The course code is alphanumeric, year is 1..4 and the
// section number is an integer.
func ValidSectionKey(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return false
	}

	course, yearStr, numStr := parts[0], parts[1], parts[2]

	if course == "" {
		return false
	}
	for _, c := range course {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return false
		}
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 || year > 4 {
		return false
	}

	if _, err := strconv.Atoi(numStr); err != nil {
		return false
	}
	return true
}

// SplitSectionKey parses a COURSE-YEAR-SECTION key into its parts.
// It returns an error for malformed keys.
func SplitSectionKey(s string) (course string, year, number int, err error) {
	if !ValidSectionKey(s) {
		return "", 0, 0, errors.New("invalid section format, use COURSE-YEAR-SECTION")
	}
	parts := strings.Split(s, "-")
	year, _ = strconv.Atoi(parts[1])
	number, _ = strconv.Atoi(parts[2])
	return parts[0], year, number, nil
}
