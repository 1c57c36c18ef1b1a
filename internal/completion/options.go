// Package completion resolves what is being completed on a command line and
// drives the cycle-or-list interaction over candidates gathered from the
// completers package.
package completion

import "regexp"

// SymbolicMode controls when callable-symbol candidates are offered at
// command position.
type SymbolicMode int

const (
	// SymbolicOff never offers symbol candidates.
	SymbolicOff SymbolicMode = iota
	// SymbolicWhenEmpty offers them only when no other source produced
	// candidates.
	SymbolicWhenEmpty
	// SymbolicAlways appends them unconditionally.
	SymbolicAlways
)

// Options is the recognized configuration bundle. It is passed explicitly
// into each entry point; there is no implicit per-session state.
type Options struct {
	// IgnoreCase folds case when matching the stub against candidates.
	// It never affects dedup: names differing only by case stay distinct.
	IgnoreCase bool

	// AutoList presents the candidate list immediately when the set is too
	// large to cycle; otherwise the list appears on the repeated keypress.
	AutoList bool

	// CycleCutoff is the largest candidate count that still cycles instead
	// of listing.
	CycleCutoff int

	// UseParing inserts the longest common prefix of all candidates first,
	// so the user never sees text they already typed re-inserted.
	UseParing bool

	// Symbolic selects the callable-symbol fallback behavior.
	Symbolic SymbolicMode

	// ForceExecution relaxes the executability predicate to a readability
	// check when gathering command candidates.
	ForceExecution bool

	// FileIgnore drops matching non-directory candidates.
	FileIgnore *regexp.Regexp
	// DirIgnore drops matching directory candidates.
	DirIgnore *regexp.Regexp

	// SuffixChar is appended after a unique non-directory completion.
	SuffixChar string
}

// DefaultOptions mirrors the conventional interactive defaults: cycle up to
// five candidates, pare the common prefix, list on the repeated press.
func DefaultOptions() Options {
	return Options{
		CycleCutoff: 5,
		UseParing:   true,
		SuffixChar:  " ",
	}
}
