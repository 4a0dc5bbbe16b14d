package network

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	yerrors "github.com/matzehuels/yieldpath/pkg/errors"
)

var (
	// ErrInvalidLocationID is returned by [Build] when a record identifier is
	// empty, too long, or contains whitespace or a text-format separator.
	// Every accepted ID can be written by any writer in pkg/io and read back.
	ErrInvalidLocationID = errors.New("invalid location ID")

	// ErrDuplicateLocationID is returned by [Build] when two records share an
	// identifier. Location IDs must be unique across the network.
	ErrDuplicateLocationID = errors.New("duplicate location ID")

	// ErrNegativeRate is returned by [Build] when a record carries a yield
	// rate below zero.
	ErrNegativeRate = errors.New("yield rate must not be negative")

	// ErrRateTooLarge is returned by [Build] when a record's rate exceeds
	// MaxRate in pkg/errors. The bound keeps every yield sum within int.
	ErrRateTooLarge = errors.New("yield rate too large")

	// ErrUnknownNeighbor is returned by [Build] when a record lists a neighbor
	// that is not itself a record. Dangling references are never tolerated.
	ErrUnknownNeighbor = errors.New("unknown neighbor")

	// ErrUnknownLocation is returned by lookups that reference an identifier
	// absent from the network. Reaching it from the search layer indicates a
	// caller defect, not a data problem.
	ErrUnknownLocation = errors.New("unknown location")

	// ErrUnreachable is returned by [Distances.Between] for locations that
	// live in different connected components.
	ErrUnreachable = errors.New("location unreachable")
)

// Record is the input contract of the solver: one location with its yield
// rate and the identifiers of directly connected locations. Records are
// produced by the readers in pkg/io or built by hand.
type Record struct {
	ID        string   `json:"id" toml:"id"`
	Rate      int      `json:"rate" toml:"rate"`
	Neighbors []string `json:"neighbors" toml:"neighbors"`
}

// Location is a validated node of a [Network].
//
// Neighbors lists every adjacent location exactly once, in the order they
// were first seen, including reverse links implied by other records.
type Location struct {
	ID        string
	Rate      int
	Neighbors []string
}

// Relevant reports whether the location contributes yield when activated.
func (l Location) Relevant() bool { return l.Rate > 0 }

// Network is an immutable, undirected graph of locations.
//
// Locations keep their input order, which doubles as the canonical index
// used by [Distances] and [RelevantSet]. A Network never changes after
// [Build] returns, so it may be shared freely between goroutines.
type Network struct {
	locations []Location
	index     map[string]int
	adj       [][]int
}

// Build validates records and returns the resulting network.
//
// Validation rejects malformed IDs ([ErrInvalidLocationID]), duplicates
// ([ErrDuplicateLocationID]), negative or oversized rates ([ErrNegativeRate],
// [ErrRateTooLarge]) and dangling neighbor references ([ErrUnknownNeighbor]).
// Neighbor IDs must name a record, so they inherit the ID rules. Errors name the
// offending location and wrap the sentinel, so errors.Is works.
//
// Edges are treated as undirected: a record listing b as a neighbor of a
// also makes a adjacent to b. Self-references and repeated neighbors are
// dropped.
func Build(records []Record) (*Network, error) {
	n := &Network{
		locations: make([]Location, 0, len(records)),
		index:     make(map[string]int, len(records)),
	}

	for _, r := range records {
		if err := yerrors.ValidateLocationID(r.ID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLocationID, err)
		}
		if _, exists := n.index[r.ID]; exists {
			return nil, fmt.Errorf("location %s: %w", r.ID, ErrDuplicateLocationID)
		}
		if r.Rate < 0 {
			return nil, fmt.Errorf("location %s: %w (%d)", r.ID, ErrNegativeRate, r.Rate)
		}
		if r.Rate > yerrors.MaxRate {
			return nil, fmt.Errorf("location %s: %w (%d > %d)", r.ID, ErrRateTooLarge, r.Rate, yerrors.MaxRate)
		}
		n.index[r.ID] = len(n.locations)
		n.locations = append(n.locations, Location{ID: r.ID, Rate: r.Rate})
	}

	n.adj = make([][]int, len(n.locations))
	for i, r := range records {
		for _, nb := range r.Neighbors {
			j, ok := n.index[nb]
			if !ok {
				return nil, fmt.Errorf("location %s: %w %q", r.ID, ErrUnknownNeighbor, nb)
			}
			n.link(i, j)
			n.link(j, i)
		}
	}

	for i := range n.locations {
		ids := make([]string, len(n.adj[i]))
		for k, j := range n.adj[i] {
			ids[k] = n.locations[j].ID
		}
		n.locations[i].Neighbors = ids
	}
	return n, nil
}

func (n *Network) link(from, to int) {
	if from == to || slices.Contains(n.adj[from], to) {
		return
	}
	n.adj[from] = append(n.adj[from], to)
}

// Len returns the number of locations.
func (n *Network) Len() int { return len(n.locations) }

// Location returns the location at index i. It panics if i is out of range.
func (n *Network) Location(i int) Location { return n.locations[i] }

// Index returns the canonical index of id.
func (n *Network) Index(id string) (int, bool) {
	i, ok := n.index[id]
	return i, ok
}

// Lookup returns the location with the given id, or ErrUnknownLocation.
func (n *Network) Lookup(id string) (Location, error) {
	i, ok := n.index[id]
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, id)
	}
	return n.locations[i], nil
}

// Rate returns the yield rate of the location at index i.
func (n *Network) Rate(i int) int { return n.locations[i].Rate }

// Neighbors returns the adjacency of index i. The slice must not be modified.
func (n *Network) Neighbors(i int) []int { return n.adj[i] }

// Locations returns a copy of all locations in canonical order.
func (n *Network) Locations() []Location { return slices.Clone(n.locations) }

// IDs returns all location identifiers in canonical order.
func (n *Network) IDs() []string {
	ids := make([]string, len(n.locations))
	for i, l := range n.locations {
		ids[i] = l.ID
	}
	return ids
}

// Edge is an undirected connection between two locations. A is always the
// lexically smaller identifier.
type Edge struct {
	A, B string
}

// Edges returns every undirected edge once, sorted by (A, B).
func (n *Network) Edges() []Edge {
	var edges []Edge
	for i, nbs := range n.adj {
		for _, j := range nbs {
			a, b := n.locations[i].ID, n.locations[j].ID
			if a < b {
				edges = append(edges, Edge{A: a, B: b})
			}
		}
	}
	slices.SortFunc(edges, func(x, y Edge) int {
		return cmp.Or(cmp.Compare(x.A, y.A), cmp.Compare(x.B, y.B))
	})
	return edges
}

// TotalRate returns the sum of all yield rates.
func (n *Network) TotalRate() int {
	total := 0
	for _, l := range n.locations {
		total += l.Rate
	}
	return total
}

// Records converts the network back into its input contract. Neighbor lists
// include the reverse links that Build inferred.
func (n *Network) Records() []Record {
	out := make([]Record, len(n.locations))
	for i, l := range n.locations {
		out[i] = Record{ID: l.ID, Rate: l.Rate, Neighbors: slices.Clone(l.Neighbors)}
	}
	return out
}
