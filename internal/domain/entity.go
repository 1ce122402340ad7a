package domain

import "regexp"

// EntityID is an opaque Wikidata item identifier such as "Q1748".
type EntityID string

var entityIDPattern = regexp.MustCompile(`^Q[0-9]+$`)

// IsEntityID reports whether s is a well-formed item identifier:
// a capital "Q" followed by one or more digits.
func IsEntityID(s string) bool {
	return entityIDPattern.MatchString(s)
}

// Valid is IsEntityID for an already typed identifier.
func (id EntityID) Valid() bool { return IsEntityID(string(id)) }

// First returns the top-ranked candidate, or "" when there are none.
func First(ids []EntityID) EntityID {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
