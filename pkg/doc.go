// Package pkg provides the core libraries for yieldpath.
//
// # Overview
//
// Yieldpath answers one question about a network of locations joined by
// unit-length tunnels: starting at a given location with a fixed time
// budget, in which order should the rate-bearing locations be activated to
// release the most total yield? It answers it for one agent and for two
// agents that share the work.
//
// # Architecture
//
// The typical data flow:
//
//	text / JSON / TOML input
//	         ↓
//	    [io] package (decode records)
//	         ↓
//	    [network] package (validate, hop distances, relevant set)
//	         ↓
//	    [search] package (memoized best-yield search, plans)
//	         ↓
//	    [partition] package (two-agent split over worker goroutines)
//	         ↓
//	    [pipeline] package (options, caching, run IDs, rendering)
//
// # Quick Start
//
//	records, _ := io.ReadFile("sample.txt")
//	net, _ := network.Build(records)
//	eng, _ := search.NewEngine(net)
//
//	yield, _ := eng.MaxYield(30, "AA", 0)
//	best, _ := partition.Solve(ctx, eng, partition.Options{Budget: 26, Start: "AA"})
//
// # Main Packages
//
// [network] - Immutable location graph with symmetric adjacency, all-pairs
// hop distances (BFS) and the bit assignment of rate-bearing locations.
//
// [search] - The recursive search over (time left, location, activated set)
// with a per-search memo. [search.Mask] is the activated set as a bitmask.
//
// [partition] - Enumerates every split of the relevant set between two
// agents and keeps the best; deterministic for any worker count.
//
// [pipeline] - What the CLI calls: validation with coded errors, result
// caching, observability hooks and diagram rendering.
//
// ## Supporting Packages
//
// [io] - Readers and writers for the three input formats.
//
// [render/nodelink] - Graphviz diagrams of a network, optionally numbered
// with a plan.
//
// [cache] - File and null caches with key scoping.
//
// [errors] - Coded errors and input validation helpers.
//
// [observability] - Hook interfaces for metrics and tracing.
//
// [buildinfo] - Version information injected at build time.
package pkg
