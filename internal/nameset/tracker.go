// Package nameset tracks declared names during schema construction to
// enforce uniqueness: every field name within a SEQUENCE must be unique,
// and every alternative name within a CHOICE must be unique.
//
// Adapted from a hash-collision tracker used elsewhere to detect duplicate
// names: here there is no hash involved (schema names are compared
// directly), so the tracker only needs to answer "have I seen this name
// before".
package nameset

import set3 "github.com/TomTonic/Set3"

// Tracker records names as they are declared and reports duplicates.
type Tracker struct {
	seen *set3.Set3[string]
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: set3.Empty[string]()}
}

// Track records name, returning false if it was already tracked (a
// duplicate field or alternative name).
func (t *Tracker) Track(name string) bool {
	if t.seen.Contains(name) {
		return false
	}

	t.seen.Add(name)

	return true
}

// Count returns the number of distinct names tracked so far.
func (t *Tracker) Count() int {
	return t.seen.Len()
}
