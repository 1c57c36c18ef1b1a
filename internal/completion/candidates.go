package completion

import (
	"strings"

	"github.com/samber/lo"
)

// CandidateSet accumulates candidates from the providers, preserving
// insertion order for display and dropping exact-string duplicates. Dedup is
// deliberately case-sensitive even when matching is not: two names differing
// only by case remain distinct candidates.
type CandidateSet struct {
	items []string
	seen  map[string]struct{}
}

// NewCandidateSet creates an empty CandidateSet.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{seen: make(map[string]struct{})}
}

// Add inserts a candidate, reporting whether it was new. The first
// occurrence wins; later duplicates never reorder or recase it.
func (s *CandidateSet) Add(candidate string) bool {
	if _, ok := s.seen[candidate]; ok {
		return false
	}
	s.seen[candidate] = struct{}{}
	s.items = append(s.items, candidate)
	return true
}

// AddAll inserts candidates in order.
func (s *CandidateSet) AddAll(candidates ...string) {
	for _, c := range candidates {
		s.Add(c)
	}
}

// Items returns the candidates in insertion order.
func (s *CandidateSet) Items() []string {
	return s.items
}

// Len returns the number of distinct candidates.
func (s *CandidateSet) Len() int {
	return len(s.items)
}

// applyIgnores drops candidates matching the configured ignore patterns.
// Directory candidates carry a trailing slash and are tested against
// DirIgnore; everything else against FileIgnore.
func applyIgnores(candidates []string, opts Options) []string {
	if opts.FileIgnore == nil && opts.DirIgnore == nil {
		return candidates
	}
	return lo.Filter(candidates, func(c string, _ int) bool {
		if strings.HasSuffix(c, "/") {
			return opts.DirIgnore == nil || !opts.DirIgnore.MatchString(c)
		}
		return opts.FileIgnore == nil || !opts.FileIgnore.MatchString(c)
	})
}

// longestCommonPrefix computes the longest prefix shared by all candidates.
// With fold set, comparison is case-insensitive and the returned text is
// taken from the first candidate.
func longestCommonPrefix(candidates []string, fold bool) string {
	if len(candidates) == 0 {
		return ""
	}
	prefix := candidates[0]
	for _, c := range candidates[1:] {
		prefix = prefix[:commonLen(prefix, c, fold)]
		if prefix == "" {
			break
		}
	}
	return prefix
}

func commonLen(a, b string, fold bool) int {
	if fold {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	for i := 0; i < max; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return max
}
