package search

import (
	"errors"
	"fmt"

	yerrors "github.com/matzehuels/yieldpath/pkg/errors"
	"github.com/matzehuels/yieldpath/pkg/network"
)

var (
	// ErrTooManyRelevant is returned by [NewEngine] when the network has more
	// relevant locations than a [Mask] can hold.
	ErrTooManyRelevant = errors.New("search: too many relevant locations")

	// ErrMaskOutOfRange is returned when a caller passes a mask with bits
	// beyond the relevant set.
	ErrMaskOutOfRange = errors.New("search: mask out of range")

	// ErrBudgetTooLarge is returned for a time budget above MaxBudget in
	// pkg/errors. Together with the rate limit enforced by network.Build it
	// bounds every yield well below the int range.
	ErrBudgetTooLarge = errors.New("search: budget too large")
)

// Engine holds the immutable inputs of the memoized search: the network,
// its distance table and its relevant set.
//
// An Engine is safe for concurrent use. Each [Search] it creates owns a
// private memo, so concurrent searches never share mutable state.
type Engine struct {
	net  *network.Network
	dist *network.Distances
	rel  *network.RelevantSet
	full Mask

	bitOf []int   // network index -> relevant bit, -1 if not relevant
	hops  [][]int // network index -> hops to each relevant bit
}

// NewEngine precomputes the distance oracle and relevant set for net.
func NewEngine(net *network.Network) (*Engine, error) {
	rel := network.NewRelevantSet(net)
	if rel.Len() > MaxRelevant {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyRelevant, rel.Len(), MaxRelevant)
	}
	dist := network.NewDistances(net)

	e := &Engine{
		net:   net,
		dist:  dist,
		rel:   rel,
		full:  Full(rel.Len()),
		bitOf: make([]int, net.Len()),
		hops:  make([][]int, net.Len()),
	}
	for i := 0; i < net.Len(); i++ {
		e.bitOf[i] = -1
		if b, ok := rel.Bit(i); ok {
			e.bitOf[i] = b
		}
		row := make([]int, rel.Len())
		for b := range row {
			h, ok := dist.Hops(i, rel.At(b))
			if !ok {
				h = network.Unreachable
			}
			row[b] = h
		}
		e.hops[i] = row
	}
	return e, nil
}

// Network returns the network the engine searches.
func (e *Engine) Network() *network.Network { return e.net }

// Distances returns the precomputed hop table.
func (e *Engine) Distances() *network.Distances { return e.dist }

// Relevant returns the relevant set and its bit assignment.
func (e *Engine) Relevant() *network.RelevantSet { return e.rel }

// Full returns the mask with every relevant bit set.
func (e *Engine) Full() Mask { return e.full }

// NewSearch starts a search invocation with an empty memo.
func (e *Engine) NewSearch() *Search {
	return &Search{e: e, memo: make(map[state]int)}
}

// MaxYield runs one cold search. See [Search.MaxYield].
func (e *Engine) MaxYield(t int, start string, opened Mask) (int, error) {
	return e.NewSearch().MaxYield(t, start, opened)
}

// resolve validates a caller-supplied budget, start and mask.
func (e *Engine) resolve(t int, start string, opened Mask) (int, error) {
	if t > yerrors.MaxBudget {
		return 0, fmt.Errorf("%w: %d > %d", ErrBudgetTooLarge, t, yerrors.MaxBudget)
	}
	loc, ok := e.net.Index(start)
	if !ok {
		return 0, fmt.Errorf("%w: %q", network.ErrUnknownLocation, start)
	}
	if opened&^e.full != 0 {
		return 0, fmt.Errorf("%w: %#x with %d relevant locations", ErrMaskOutOfRange, uint32(opened), e.rel.Len())
	}
	return loc, nil
}
