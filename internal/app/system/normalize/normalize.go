// Package normalize provides input normalization helpers used by stores
// and handlers. All lookups and writes that key on these fields must go
// through the same normalization so that "User@Example.COM " and
// "user@example.com" are the same account.
package normalize

import "strings"

// Email returns the canonical form of an email address: trimmed and
// lowercased. Empty or whitespace-only input normalizes to "".
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role returns the canonical lowercase form of a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-form query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
