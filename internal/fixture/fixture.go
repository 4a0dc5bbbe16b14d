// Package fixture holds the canonical sample network used across tests.
package fixture

import "github.com/matzehuels/yieldpath/pkg/network"

// Start is the designated start location of the sample.
const Start = "AA"

// Known answers for the sample network.
const (
	SingleBudget = 30
	SingleYield  = 1651
	PairBudget   = 26
	PairYield    = 1707
)

// SampleText is the sample in the puzzle text format read by io.ReadText.
const SampleText = `Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
Valve BB has flow rate=13; tunnels lead to valves CC, AA
Valve CC has flow rate=2; tunnels lead to valves DD, BB
Valve DD has flow rate=20; tunnels lead to valves CC, AA, EE
Valve EE has flow rate=3; tunnels lead to valves FF, DD
Valve FF has flow rate=0; tunnels lead to valves EE, GG
Valve GG has flow rate=0; tunnels lead to valves FF, HH
Valve HH has flow rate=22; tunnel leads to valve GG
Valve II has flow rate=0; tunnels lead to valves AA, JJ
Valve JJ has flow rate=21; tunnel leads to valve II
`

// Sample returns the sample as records, in the same order as SampleText.
func Sample() []network.Record {
	return []network.Record{
		{ID: "AA", Rate: 0, Neighbors: []string{"DD", "II", "BB"}},
		{ID: "BB", Rate: 13, Neighbors: []string{"CC", "AA"}},
		{ID: "CC", Rate: 2, Neighbors: []string{"DD", "BB"}},
		{ID: "DD", Rate: 20, Neighbors: []string{"CC", "AA", "EE"}},
		{ID: "EE", Rate: 3, Neighbors: []string{"FF", "DD"}},
		{ID: "FF", Rate: 0, Neighbors: []string{"EE", "GG"}},
		{ID: "GG", Rate: 0, Neighbors: []string{"FF", "HH"}},
		{ID: "HH", Rate: 22, Neighbors: []string{"GG"}},
		{ID: "II", Rate: 0, Neighbors: []string{"AA", "JJ"}},
		{ID: "JJ", Rate: 21, Neighbors: []string{"II"}},
	}
}

// MustNetwork builds the sample network and panics on error.
func MustNetwork() *network.Network {
	n, err := network.Build(Sample())
	if err != nil {
		panic(err)
	}
	return n
}
