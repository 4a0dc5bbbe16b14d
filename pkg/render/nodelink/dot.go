package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/yieldpath/pkg/network"
)

// Options configures diagram generation.
type Options struct {
	// Start is drawn with a double outline.
	Start string
	// Detailed adds the rate to every label.
	Detailed bool
	// Activations highlight a solve plan.
	Activations []Activation
}

// Activation marks one location activated by a plan.
type Activation struct {
	Location string
	Order    int // 1-based position in the agent's plan
	Agent    int // 0 or 1
}

var agentColors = [...]string{"#a6d96a", "#74add1"}

// ToDOT converts a network to undirected Graphviz DOT source. Output is
// deterministic: nodes follow network order and edges are sorted.
func ToDOT(net *network.Network, opts Options) string {
	marks := make(map[string]Activation, len(opts.Activations))
	for _, a := range opts.Activations {
		marks[a.Location] = a
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, loc := range net.Locations() {
		a, marked := marks[loc.ID]
		fmt.Fprintf(&buf, "  %q [%s];\n", loc.ID, strings.Join(fmtAttrs(loc, opts, a, marked), ", "))
	}

	buf.WriteString("\n")
	for _, e := range net.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.A, e.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(loc network.Location, detailed bool, a Activation, marked bool) string {
	label := loc.ID
	if detailed && loc.Relevant() {
		label += "\n" + strconv.Itoa(loc.Rate)
	}
	if marked {
		label += fmt.Sprintf("\n#%d", a.Order)
	}
	return label
}

func fmtAttrs(loc network.Location, opts Options, a Activation, marked bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(loc, opts.Detailed, a, marked))}
	switch {
	case marked:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", agentColors[a.Agent%len(agentColors)]))
	case loc.Relevant():
		attrs = append(attrs, "fillcolor=\"#fee08b\"")
	}
	if loc.ID == opts.Start {
		attrs = append(attrs, "shape=doublecircle")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a plain
// viewBox so the diagram scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
