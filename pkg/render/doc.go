// Package render groups the visual outputs of yieldpath.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws a network with Graphviz: one circle per
// location, one undirected edge per tunnel. Relevant locations are filled,
// the start location is a double circle, and a plan's activations can be
// numbered per agent.
//
//	dot := nodelink.ToDOT(net, nodelink.Options{Start: "AA"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// Rendering runs Graphviz compiled to WebAssembly, so no external binary
// is needed.
package render
