// Package partition solves the two-agent variant of the yield search.
//
// Two agents start at the same location with the same budget and may not
// both activate the same location. [Solve] enumerates the ways to split the
// relevant set between them, runs an independent single-agent search for
// each side, and keeps the best sum. Because the sum is symmetric in the
// two sides, only masks with the highest relevant bit clear are visited.
//
// Masks are spread across a bounded pool of goroutines. Each evaluation
// builds fresh [search.Search] values, so workers share only the read-only
// [search.Engine].
package partition
