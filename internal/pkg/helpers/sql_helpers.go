package helpers

import (
	"strings"
)

// NullString returns nil for an empty string so optional text columns store NULL.
func NullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NullInt64 returns nil for zero so optional foreign keys store NULL.
func NullInt64(i int64) *int64 {
	if i == 0 {
		return nil
	}
	return &i
}

// DerefString returns the pointed-to string or "".
func DerefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// DerefInt64 returns the pointed-to value or 0.
func DerefInt64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}

// LikePattern builds a case-insensitive substring pattern for ILIKE, escaping wildcard characters.
func LikePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(term)) + "%"
}
