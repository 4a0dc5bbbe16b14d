package network

import "fmt"

// Unreachable marks a pair of locations with no connecting path.
const Unreachable = -1

// Distances is the all-pairs hop table of a [Network].
//
// It is computed once by [NewDistances] with one breadth-first search per
// location and is read-only afterwards. The table is symmetric, has a zero
// diagonal and respects the triangle inequality.
type Distances struct {
	n    int
	hops []int // row-major n×n
}

// NewDistances runs a BFS from every location of net.
//
// Complexity: O(V·(V+E)) time, O(V²) memory.
func NewDistances(net *Network) *Distances {
	v := net.Len()
	d := &Distances{n: v, hops: make([]int, v*v)}
	for i := range d.hops {
		d.hops[i] = Unreachable
	}

	queue := make([]int, 0, v)
	for src := 0; src < v; src++ {
		row := d.hops[src*v : (src+1)*v]
		row[src] = 0
		queue = append(queue[:0], src)
		for head := 0; head < len(queue); head++ {
			cur := queue[head]
			next := row[cur] + 1
			for _, nb := range net.Neighbors(cur) {
				if row[nb] != Unreachable {
					continue
				}
				row[nb] = next
				queue = append(queue, nb)
			}
		}
	}
	return d
}

// Len returns the number of locations covered by the table.
func (d *Distances) Len() int { return d.n }

// Hops returns the hop count between the locations at indices a and b.
// The second result is false when the pair is unreachable. Out-of-range
// indices panic.
func (d *Distances) Hops(a, b int) (int, bool) {
	if a < 0 || a >= d.n || b < 0 || b >= d.n {
		panic(fmt.Sprintf("network: distance index out of range: (%d, %d) with %d locations", a, b, d.n))
	}
	h := d.hops[a*d.n+b]
	return h, h != Unreachable
}

// Between returns the hop count between two locations by identifier.
func (d *Distances) Between(net *Network, a, b string) (int, error) {
	i, ok := net.Index(a)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLocation, a)
	}
	j, ok := net.Index(b)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLocation, b)
	}
	h, ok := d.Hops(i, j)
	if !ok {
		return 0, fmt.Errorf("%w: %s -> %s", ErrUnreachable, a, b)
	}
	return h, nil
}

// Components returns the number of connected components.
func (d *Distances) Components() int {
	seen := make([]bool, d.n)
	count := 0
	for i := 0; i < d.n; i++ {
		if seen[i] {
			continue
		}
		count++
		for j := 0; j < d.n; j++ {
			if d.hops[i*d.n+j] != Unreachable {
				seen[j] = true
			}
		}
	}
	return count
}
