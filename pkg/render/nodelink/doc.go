// Package nodelink renders location networks as node-link diagrams.
//
// # Usage
//
// Convert a network to DOT, then render it with Graphviz:
//
//	dot := nodelink.ToDOT(net, nodelink.Options{Start: "AA", Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// Locations with a positive rate are drawn filled; the start location gets
// a double outline. Passing [Activation] values numbers the activated
// locations in plan order and colors them per agent, which makes a solve
// result easy to check by eye.
//
// # Dependencies
//
// Rendering runs in-process through [github.com/goccy/go-graphviz]; no
// Graphviz installation is needed.
package nodelink
