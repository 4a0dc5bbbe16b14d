package network

// RelevantSet lists the locations with a positive yield rate and assigns
// each a stable bit position.
//
// Bit i corresponds to the i-th relevant location in network order. The
// assignment never changes for the lifetime of the set.
type RelevantSet struct {
	members []int       // bit -> network index
	bits    map[int]int // network index -> bit
	ids     []string
	rates   []int
}

// NewRelevantSet indexes every location of net whose rate is above zero.
func NewRelevantSet(net *Network) *RelevantSet {
	rs := &RelevantSet{bits: make(map[int]int)}
	for i := 0; i < net.Len(); i++ {
		loc := net.Location(i)
		if !loc.Relevant() {
			continue
		}
		rs.bits[i] = len(rs.members)
		rs.members = append(rs.members, i)
		rs.ids = append(rs.ids, loc.ID)
		rs.rates = append(rs.rates, loc.Rate)
	}
	return rs
}

// Len returns N, the number of relevant locations.
func (rs *RelevantSet) Len() int { return len(rs.members) }

// At returns the network index occupying bit position b.
func (rs *RelevantSet) At(b int) int { return rs.members[b] }

// Bit returns the bit position of a network index, if it is relevant.
func (rs *RelevantSet) Bit(index int) (int, bool) {
	b, ok := rs.bits[index]
	return b, ok
}

// Rate returns the yield rate at bit position b.
func (rs *RelevantSet) Rate(b int) int { return rs.rates[b] }

// IDs returns the relevant identifiers in bit order.
func (rs *RelevantSet) IDs() []string {
	out := make([]string, len(rs.ids))
	copy(out, rs.ids)
	return out
}
