package search

import (
	"fmt"
	"math/bits"
)

// MaxRelevant is the widest relevant set a [Mask] can describe.
const MaxRelevant = 32

// Mask is a set of relevant-location bit positions.
//
// As search state, a set bit means the location is already activated (or
// owned by the other agent) and yields nothing further. As a partition
// descriptor it names the locations one agent must leave alone.
type Mask uint32

// Full returns the mask with the low n bits set.
func Full(n int) Mask {
	if n >= MaxRelevant {
		return ^Mask(0)
	}
	return Mask(1)<<n - 1
}

// Has reports whether bit b is set.
func (m Mask) Has(b int) bool { return m&(1<<b) != 0 }

// With returns m with bit b set.
func (m Mask) With(b int) Mask { return m | 1<<b }

// Without returns m with bit b cleared.
func (m Mask) Without(b int) Mask { return m &^ (1 << b) }

// Complement inverts m within the low n bits.
func (m Mask) Complement(n int) Mask { return ^m & Full(n) }

// Covers reports whether every one of the low n bits is set.
func (m Mask) Covers(n int) bool { return m&Full(n) == Full(n) }

// Count returns the number of set bits.
func (m Mask) Count() int { return bits.OnesCount32(uint32(m)) }

// Bits returns the set bit positions in ascending order.
func (m Mask) Bits() []int {
	out := make([]int, 0, m.Count())
	for v := uint32(m); v != 0; v &= v - 1 {
		out = append(out, bits.TrailingZeros32(v))
	}
	return out
}

// Format renders the low n bits, most significant first.
func (m Mask) Format(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%0*b", n, uint32(m&Full(n)))
}
