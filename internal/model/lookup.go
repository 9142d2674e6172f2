// internal/model/lookup.go
package model

import (
	"strconv"
	"strings"

	custom_errors "github-trending-api/internal/errors"
)

// LookupKey identifies a single repository either by its GitHub id or by its
// "owner/repo" full name. Exactly one of the two forms is set.
type LookupKey struct {
	id       int64
	fullName string
}

// NumericID builds a key that looks a repository up by GitHub id.
func NumericID(id int64) LookupKey {
	return LookupKey{id: id}
}

// FullName builds a key that looks a repository up by "owner/repo".
func FullName(name string) LookupKey {
	return LookupKey{fullName: name}
}

// ParseLookupKey resolves a path token into a LookupKey. Tokens made only of
// digits that fit an int64 are ids; anything else must be in "owner/repo" form.
// A leading sign or a digit string past math.MaxInt64 is therefore not an id,
// and without a "/" it is rejected with ErrInvalidRepoFormat.
func ParseLookupKey(token string) (LookupKey, error) {
	if isDigits(token) {
		id, err := strconv.ParseInt(token, 10, 64)
		if err == nil {
			return NumericID(id), nil
		}
	}
	if !strings.Contains(token, "/") {
		return LookupKey{}, &custom_errors.ErrInvalidRepoFormat{Repo: token}
	}
	return FullName(token), nil
}

// IsNumeric reports whether the key holds a GitHub id.
func (k LookupKey) IsNumeric() bool {
	return k.fullName == ""
}

// ID returns the GitHub id, or 0 for a full-name key.
func (k LookupKey) ID() int64 {
	return k.id
}

// FullName returns the "owner/repo" name, or "" for a numeric key.
func (k LookupKey) FullName() string {
	return k.fullName
}

// OwnerAndName splits a full-name key at its first "/".
func (k LookupKey) OwnerAndName() (string, string) {
	owner, name, _ := strings.Cut(k.fullName, "/")
	return owner, name
}

// String returns the token the key was parsed from.
func (k LookupKey) String() string {
	if k.IsNumeric() {
		return strconv.FormatInt(k.id, 10)
	}
	return k.fullName
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
