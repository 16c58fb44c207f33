package whatsapp

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidPhone is returned for numbers that are not Malaysian mobiles.
var ErrInvalidPhone = errors.New("invalid malaysian mobile number")

// +60 后接 1 开头的 9 或 10 位手机号
var mobilePattern = regexp.MustCompile(`^\+?60(1[0-9]{8,9})$`)

var separators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// ValidatePhone reports whether s is a Malaysian mobile number with the 60
// country code, allowing spaces, hyphens and a leading plus.
func ValidatePhone(s string) bool {
	return mobilePattern.MatchString(separators.Replace(strings.TrimSpace(s)))
}

// FormatPhone normalizes a valid number to E.164, e.g. +60122681879.
func FormatPhone(s string) (string, error) {
	m := mobilePattern.FindStringSubmatch(separators.Replace(strings.TrimSpace(s)))
	if m == nil {
		return "", ErrInvalidPhone
	}
	return "+60" + m[1], nil
}

// digitsOnly strips everything but digits; wa.me expects the bare number.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
