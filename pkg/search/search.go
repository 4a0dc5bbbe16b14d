package search

import (
	"github.com/matzehuels/yieldpath/pkg/network"
)

// state is the memo key: time remaining, network index, activated set.
type state struct {
	t    int
	loc  int
	mask Mask
}

// Stats describes the work done by one search invocation.
type Stats struct {
	States int `json:"states"` // memoized states
	Hits   int `json:"hits"`   // memo hits
	Calls  int `json:"calls"`  // recursive evaluations, including base cases
}

// Search is a single search invocation with its own memo.
//
// A Search is not safe for concurrent use. Queries against the same Search
// reuse the warm memo and return exactly what a cold search would.
type Search struct {
	e     *Engine
	memo  map[state]int
	stats Stats
}

// MaxYield returns the maximum additional yield obtainable from start with
// t time units left, given that the locations in opened are already
// activated and unavailable.
//
// Activating a location costs one unit and yields (t-1)*rate; travelling
// costs the hop distance. Locations unreachable from the current position
// are never candidates. The result is 0 when t <= 0 or opened covers the
// whole relevant set.
//
// Returns network.ErrUnknownLocation for an unknown start,
// [ErrMaskOutOfRange] for bits beyond the relevant set and
// [ErrBudgetTooLarge] for t above the budget limit.
func (s *Search) MaxYield(t int, start string, opened Mask) (int, error) {
	loc, err := s.e.resolve(t, start, opened)
	if err != nil {
		return 0, err
	}
	return s.best(t, loc, opened), nil
}

// Stats returns counters for the work done so far.
func (s *Search) Stats() Stats {
	st := s.stats
	st.States = len(s.memo)
	return st
}

func (s *Search) best(t, loc int, opened Mask) int {
	s.stats.Calls++
	n := s.e.rel.Len()
	if t <= 0 || opened.Covers(n) {
		return 0
	}
	key := state{t: t, loc: loc, mask: opened}
	if v, ok := s.memo[key]; ok {
		s.stats.Hits++
		return v
	}

	hops := s.e.hops[loc]
	result := 0

	// Activate here, then continue to another unopened location.
	if bit := s.e.bitOf[loc]; bit >= 0 && !opened.Has(bit) {
		next := opened.With(bit)
		cont := 0
		for b := 0; b < n; b++ {
			if next.Has(b) || hops[b] == network.Unreachable {
				continue
			}
			cont = max(cont, s.best(t-1-hops[b], s.e.rel.At(b), next))
		}
		result = (t-1)*s.e.rel.Rate(bit) + cont
	}

	// Move on without activating.
	for b := 0; b < n; b++ {
		target := s.e.rel.At(b)
		if opened.Has(b) || target == loc || hops[b] == network.Unreachable {
			continue
		}
		result = max(result, s.best(t-hops[b], target, opened))
	}

	s.memo[key] = result
	return result
}

// move picks the best continuation from loc with t units left after any
// activation, over unopened reachable relevant locations other than loc.
// Ties go to the lowest bit.
func (s *Search) move(t, loc int, opened Mask) (value, to, left int) {
	hops := s.e.hops[loc]
	to = -1
	for b := 0; b < s.e.rel.Len(); b++ {
		target := s.e.rel.At(b)
		if opened.Has(b) || target == loc || hops[b] == network.Unreachable {
			continue
		}
		v := s.best(t-hops[b], target, opened)
		if to < 0 || v > value {
			value, to, left = v, target, t-hops[b]
		}
	}
	if to < 0 {
		return 0, loc, t
	}
	return value, to, left
}
