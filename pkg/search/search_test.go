package search_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/yieldpath/internal/fixture"
	yerrors "github.com/matzehuels/yieldpath/pkg/errors"
	"github.com/matzehuels/yieldpath/pkg/network"
	"github.com/matzehuels/yieldpath/pkg/search"
)

func fixtureEngine(t *testing.T) *search.Engine {
	t.Helper()
	eng, err := search.NewEngine(fixture.MustNetwork())
	require.NoError(t, err)
	return eng
}

func TestMaxYieldFixture(t *testing.T) {
	eng := fixtureEngine(t)
	got, err := eng.MaxYield(fixture.SingleBudget, fixture.Start, 0)
	require.NoError(t, err)
	assert.Equal(t, fixture.SingleYield, got)
}

func TestMaxYieldBaseCases(t *testing.T) {
	eng := fixtureEngine(t)
	tests := []struct {
		name   string
		budget int
		opened search.Mask
	}{
		{"zero budget", 0, 0},
		{"negative budget", -4, 0},
		{"one unit", 1, 0},
		{"everything opened", fixture.SingleBudget, eng.Full()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.MaxYield(tt.budget, fixture.Start, tt.opened)
			require.NoError(t, err)
			assert.Zero(t, got)
		})
	}
}

func TestMaxYieldAllZeroRates(t *testing.T) {
	records := fixture.Sample()
	for i := range records {
		records[i].Rate = 0
	}
	net, err := network.Build(records)
	require.NoError(t, err)
	eng, err := search.NewEngine(net)
	require.NoError(t, err)

	assert.Equal(t, search.Mask(0), eng.Full())
	got, err := eng.MaxYield(30, "AA", 0)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestMaxYieldSmallNetworks(t *testing.T) {
	tests := []struct {
		name    string
		records []network.Record
		start   string
		budget  int
		want    int
	}{
		{
			name: "single neighbor",
			records: []network.Record{
				{ID: "AA", Neighbors: []string{"BB"}},
				{ID: "BB", Rate: 10},
			},
			start: "AA", budget: 3, want: 10,
		},
		{
			name: "start is relevant",
			records: []network.Record{
				{ID: "BB", Rate: 10, Neighbors: []string{"AA"}},
				{ID: "AA"},
			},
			start: "BB", budget: 3, want: 20,
		},
		{
			name: "too far to matter",
			records: []network.Record{
				{ID: "AA", Neighbors: []string{"XX"}},
				{ID: "XX", Neighbors: []string{"BB"}},
				{ID: "BB", Rate: 50},
			},
			start: "AA", budget: 3, want: 0,
		},
		{
			name: "unreachable component is ignored",
			records: []network.Record{
				{ID: "AA", Neighbors: []string{"BB"}},
				{ID: "BB", Rate: 5},
				{ID: "CC", Rate: 100},
			},
			start: "AA", budget: 5, want: 15,
		},
		{
			name: "isolated start",
			records: []network.Record{
				{ID: "AA", Neighbors: []string{"BB"}},
				{ID: "BB", Rate: 5},
				{ID: "CC", Rate: 100},
			},
			start: "CC", budget: 5, want: 400,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := network.Build(tt.records)
			require.NoError(t, err)
			eng, err := search.NewEngine(net)
			require.NoError(t, err)
			got, err := eng.MaxYield(tt.budget, tt.start, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxYieldErrors(t *testing.T) {
	eng := fixtureEngine(t)

	_, err := eng.MaxYield(10, "ZZ", 0)
	assert.ErrorIs(t, err, network.ErrUnknownLocation)

	_, err = eng.MaxYield(10, "AA", search.Full(7))
	assert.ErrorIs(t, err, search.ErrMaskOutOfRange)

	_, err = eng.MaxYield(yerrors.MaxBudget+1, "AA", 0)
	assert.ErrorIs(t, err, search.ErrBudgetTooLarge)

	_, err = eng.NewSearch().Plan(yerrors.MaxBudget+1, "AA", 0)
	assert.ErrorIs(t, err, search.ErrBudgetTooLarge)

	records := make([]network.Record, search.MaxRelevant+1)
	for i := range records {
		records[i] = network.Record{ID: fmt.Sprintf("L%02d", i), Rate: 1}
	}
	net, err := network.Build(records)
	require.NoError(t, err)
	_, err = search.NewEngine(net)
	assert.ErrorIs(t, err, search.ErrTooManyRelevant)
}

func TestMaxYieldLargeRates(t *testing.T) {
	net, err := network.Build([]network.Record{
		{ID: "AA", Rate: yerrors.MaxRate, Neighbors: []string{"BB"}},
		{ID: "BB", Rate: yerrors.MaxRate},
	})
	require.NoError(t, err)
	eng, err := search.NewEngine(net)
	require.NoError(t, err)

	// Open AA with 29 left, walk one hop, open BB with 27 left.
	got, err := eng.MaxYield(30, "AA", 0)
	require.NoError(t, err)
	assert.Equal(t, (29+27)*yerrors.MaxRate, got)

	plan, err := eng.NewSearch().Plan(30, "AA", 0)
	require.NoError(t, err)
	assert.Equal(t, got, plan.Yield)
}

func TestMaxYieldMonotonicInBudget(t *testing.T) {
	s := fixtureEngine(t).NewSearch()
	prev := 0
	for budget := 0; budget <= fixture.SingleBudget; budget++ {
		got, err := s.MaxYield(budget, fixture.Start, 0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got, prev, "budget %d", budget)
		prev = got
	}
	assert.Equal(t, fixture.SingleYield, prev)
}

func TestMaxYieldMonotonicInMask(t *testing.T) {
	eng := fixtureEngine(t)
	s := eng.NewSearch()
	n := eng.Relevant().Len()
	for m := search.Mask(0); m <= eng.Full(); m++ {
		base, err := s.MaxYield(20, fixture.Start, m)
		require.NoError(t, err)
		for b := 0; b < n; b++ {
			if m.Has(b) {
				continue
			}
			more, err := s.MaxYield(20, fixture.Start, m.With(b))
			require.NoError(t, err)
			require.LessOrEqual(t, more, base, "mask %s + bit %d", m.Format(n), b)
		}
	}
}

func TestWarmMemoMatchesCold(t *testing.T) {
	eng := fixtureEngine(t)
	warm := eng.NewSearch()
	_, err := warm.MaxYield(fixture.SingleBudget, fixture.Start, 0)
	require.NoError(t, err)

	for m := search.Mask(0); m <= eng.Full(); m += 5 {
		for _, budget := range []int{7, 13, 26} {
			got, err := warm.MaxYield(budget, fixture.Start, m)
			require.NoError(t, err)
			want, err := eng.MaxYield(budget, fixture.Start, m)
			require.NoError(t, err)
			require.Equal(t, want, got, "budget %d mask %d", budget, m)
		}
	}
}

func TestStats(t *testing.T) {
	s := fixtureEngine(t).NewSearch()
	_, err := s.MaxYield(fixture.SingleBudget, fixture.Start, 0)
	require.NoError(t, err)

	first := s.Stats()
	assert.Positive(t, first.States)
	assert.Greater(t, first.Calls, first.States)

	_, err = s.MaxYield(fixture.SingleBudget, fixture.Start, 0)
	require.NoError(t, err)
	second := s.Stats()
	assert.Equal(t, first.States, second.States)
	assert.Equal(t, first.Calls+1, second.Calls)
	assert.Equal(t, first.Hits+1, second.Hits)
}

func TestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 40; trial++ {
		net := randomNetwork(t, rng, 8, 10)
		eng, err := search.NewEngine(net)
		require.NoError(t, err)

		start := rng.IntN(net.Len())
		budget := rng.IntN(18)
		opened := search.Mask(rng.Uint32()) & eng.Full()

		got, err := eng.MaxYield(budget, net.Location(start).ID, opened)
		require.NoError(t, err)
		want := brute(eng.Distances(), eng.Relevant(), start, budget, opened)
		require.Equal(t, want, got, "trial %d", trial)
	}
}

func TestPlan(t *testing.T) {
	eng := fixtureEngine(t)
	s := eng.NewSearch()
	plan, err := s.Plan(fixture.SingleBudget, fixture.Start, 0)
	require.NoError(t, err)
	assert.Equal(t, fixture.SingleYield, plan.Yield)
	assertFeasible(t, eng, fixture.SingleBudget, fixture.Start, plan)
}

func TestPlanRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 19))
	for trial := 0; trial < 30; trial++ {
		net := randomNetwork(t, rng, 9, 12)
		eng, err := search.NewEngine(net)
		require.NoError(t, err)
		start := net.Location(rng.IntN(net.Len())).ID
		budget := rng.IntN(20)

		s := eng.NewSearch()
		want, err := s.MaxYield(budget, start, 0)
		require.NoError(t, err)
		plan, err := s.Plan(budget, start, 0)
		require.NoError(t, err)
		require.Equal(t, want, plan.Yield)
		assertFeasible(t, eng, budget, start, plan)
	}
}

func TestPlanEmpty(t *testing.T) {
	plan, err := fixtureEngine(t).NewSearch().Plan(1, fixture.Start, 0)
	require.NoError(t, err)
	assert.Zero(t, plan.Yield)
	assert.Empty(t, plan.Steps)
}

// assertFeasible replays a plan along shortest paths and checks that every
// step is reachable in time and the yields add up.
func assertFeasible(t *testing.T, eng *search.Engine, budget int, start string, plan search.Plan) {
	t.Helper()
	net, dist := eng.Network(), eng.Distances()
	loc, _ := net.Index(start)
	left := budget
	total := 0
	seen := map[string]bool{}
	for _, step := range plan.Steps {
		require.False(t, seen[step.Location], "%s activated twice", step.Location)
		seen[step.Location] = true

		next, ok := net.Index(step.Location)
		require.True(t, ok)
		h, ok := dist.Hops(loc, next)
		require.True(t, ok)
		require.LessOrEqual(t, step.Remaining, left-h-1)
		require.Positive(t, step.Remaining)
		require.Equal(t, step.Remaining*net.Rate(next), step.Yield)

		total += step.Yield
		loc, left = next, step.Remaining
	}
	assert.Equal(t, plan.Yield, total)
}

// brute enumerates every activation order directly.
func brute(dist *network.Distances, rel *network.RelevantSet, loc, t int, opened search.Mask) int {
	best := 0
	for b := 0; b < rel.Len(); b++ {
		if opened.Has(b) {
			continue
		}
		d, ok := dist.Hops(loc, rel.At(b))
		if !ok {
			continue
		}
		left := t - d - 1
		if left <= 0 {
			continue
		}
		best = max(best, left*rel.Rate(b)+brute(dist, rel, rel.At(b), left, opened.With(b)))
	}
	return best
}

func randomNetwork(t *testing.T, rng *rand.Rand, nodes, edges int) *network.Network {
	t.Helper()
	records := make([]network.Record, nodes)
	for i := range records {
		rate := 0
		if rng.IntN(3) > 0 {
			rate = 1 + rng.IntN(20)
		}
		records[i] = network.Record{ID: fmt.Sprintf("N%d", i), Rate: rate}
	}
	for e := 0; e < edges; e++ {
		a, b := rng.IntN(nodes), rng.IntN(nodes)
		records[a].Neighbors = append(records[a].Neighbors, records[b].ID)
	}
	net, err := network.Build(records)
	require.NoError(t, err)
	return net
}
