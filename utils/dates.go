package utils

import (
	"strings"
	"time"
)

// ParseDate accepts the two timestamp shapes clients send: a bare date
// ("2006-01-02") or full RFC 3339. Bare dates land at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ValidMonth reports whether s is a "YYYY-MM" month key.
func ValidMonth(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}
