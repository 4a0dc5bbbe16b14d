// Package search computes the maximum cumulative yield one agent can
// collect on a [network.Network] within a time budget.
//
// # Model
//
// An agent stands at a location with t time units left. Travelling to
// another location costs its hop distance. Activating the current location
// costs one unit and, from then on, the location contributes its rate for
// every remaining unit, so an activation with t units left is worth
// (t-1)*rate. Each location is activated at most once.
//
// Only locations with a positive rate are worth visiting, so the search
// jumps directly between them using the precomputed [network.Distances].
// The set of already-activated locations is a [Mask] over the bits of the
// [network.RelevantSet].
//
// # Engine and Search
//
// An [Engine] holds the immutable inputs and may be shared between
// goroutines. Every query runs inside a [Search], which owns a private memo
// keyed by (time left, location, mask). Reusing a Search for related
// queries reuses that memo; results never depend on memo warmth.
//
//	eng, err := search.NewEngine(net)
//	if err != nil {
//	    return err
//	}
//	s := eng.NewSearch()
//	best, err := s.MaxYield(30, "AA", 0)
//	plan, err := s.Plan(30, "AA", 0)
//
// [Search.Plan] walks the warm memo to recover one optimal activation
// order, which is useful for display and for checking results by hand.
package search
