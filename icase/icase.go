// Package icase provides a case-insensitive string type used throughout the
// simulator for unit names and capability identifiers.
package icase

import "strings"

// String is a string that compares (Equal) and sorts (Less) on its
// case-folded form while retaining the original spelling for display and
// diagnostics. Go's == operator and map hashing see both fields, so maps
// keyed by identifier use Canonical() as the key.
//
// Two Strings built from "ALU" and "alu" are Equal and share one Canonical
// form; the original value of whichever one was constructed first is typically
// what callers should report back to the user.
type String struct {
	std  string
	orig string
}

// New creates a case-insensitive string from its original spelling.
func New(s string) String {
	return String{std: strings.ToLower(s), orig: s}
}

// Canonical returns the case-folded form used for equality and ordering.
func (s String) Canonical() string {
	return s.std
}

// Original returns the spelling the value was constructed with.
func (s String) Original() string {
	return s.orig
}

// String implements fmt.Stringer, returning the original spelling.
func (s String) String() string {
	return s.orig
}

// Equal reports whether two case-insensitive strings denote the same
// identifier, regardless of spelling.
func (s String) Equal(other String) bool {
	return s.std == other.std
}

// Less orders two case-insensitive strings lexicographically on their
// canonical form, giving a stable, spelling-independent ordering.
func (s String) Less(other String) bool {
	return s.std < other.std
}
