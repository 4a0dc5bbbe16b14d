// Package network models the location graph the solver works on.
//
// # Overview
//
// A [Network] is built once from [Record] values (identifier, yield rate,
// neighbor list) and is immutable afterwards. [Build] rejects malformed
// input up front: empty or duplicate identifiers, negative rates and
// neighbor references that point nowhere. Nothing downstream has to
// re-validate.
//
// Two derived, read-only structures are computed from a network:
//
//   - [Distances]: all-pairs hop counts from one BFS per location. Pairs in
//     different components are [Unreachable].
//   - [RelevantSet]: the locations with a positive rate, each assigned a
//     stable bit position for activation masks.
//
// # Usage
//
//	net, err := network.Build([]network.Record{
//	    {ID: "AA", Rate: 0, Neighbors: []string{"BB"}},
//	    {ID: "BB", Rate: 13, Neighbors: []string{"AA"}},
//	})
//	if err != nil {
//	    return err
//	}
//	dist := network.NewDistances(net)
//	hops, _ := dist.Between(net, "AA", "BB") // 1
//
// All three types are safe for concurrent readers.
package network
