package search

import "fmt"

// Step is one activation in a [Plan].
type Step struct {
	// Location is the activated location.
	Location string `json:"location"`
	// Remaining is the time left once the activation completes; the
	// location's rate accrues for exactly this many units.
	Remaining int `json:"remaining"`
	// Yield is Remaining times the location's rate.
	Yield int `json:"yield"`
}

// Plan is an activation schedule that achieves a search's maximum yield.
type Plan struct {
	Yield int    `json:"yield"`
	Steps []Step `json:"steps"`
}

// Plan reconstructs an optimal activation schedule for the same query as
// [Search.MaxYield]. It reuses (and fills) the memo, so calling it after
// MaxYield costs little extra work. Among equally good choices the
// lowest relevant bit wins, which makes plans deterministic.
//
// The sum of step yields always equals Plan.Yield.
func (s *Search) Plan(t int, start string, opened Mask) (Plan, error) {
	loc, err := s.e.resolve(t, start, opened)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{Yield: s.best(t, loc, opened), Steps: []Step{}}
	mask := opened
	for {
		v := s.best(t, loc, mask)
		if v == 0 {
			break
		}

		if bit := s.e.bitOf[loc]; bit >= 0 && !mask.Has(bit) {
			next := mask.With(bit)
			gain := (t - 1) * s.e.rel.Rate(bit)
			cont, to, left := s.move(t-1, loc, next)
			if gain > 0 && gain+cont == v {
				plan.Steps = append(plan.Steps, Step{
					Location:  s.e.net.Location(loc).ID,
					Remaining: t - 1,
					Yield:     gain,
				})
				if cont == 0 {
					break
				}
				t, loc, mask = left, to, next
				continue
			}
		}

		cont, to, left := s.move(t, loc, mask)
		if cont != v || to == loc {
			// Only a corrupted memo gets here.
			panic(fmt.Sprintf("search: plan diverged from memo at %s (t=%d, want %d, got %d)",
				s.e.net.Location(loc).ID, t, v, cont))
		}
		t, loc = left, to
	}
	return plan, nil
}
