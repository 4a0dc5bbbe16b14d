package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/yieldpath/pkg/errors"
	"github.com/matzehuels/yieldpath/pkg/network"
	"github.com/matzehuels/yieldpath/pkg/render/nodelink"
)

// Format constants for diagram output.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported diagram formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateFormat checks that a diagram format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// RenderOptions configures [Render].
type RenderOptions struct {
	Format   string
	Start    string
	Detailed bool
	// Result, if it carries plans, highlights the activated locations.
	Result *Result
}

// Render draws the network as a node-link diagram.
func Render(ctx context.Context, net *network.Network, opts RenderOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	dot := nodelink.ToDOT(net, nodelink.Options{
		Start:       opts.Start,
		Detailed:    opts.Detailed,
		Activations: activations(opts.Result),
	})

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}
	return data, nil
}

func activations(res *Result) []nodelink.Activation {
	if res == nil {
		return nil
	}
	var out []nodelink.Activation
	for agent, plan := range res.Plans {
		for i, step := range plan.Steps {
			out = append(out, nodelink.Activation{Location: step.Location, Order: i + 1, Agent: agent})
		}
	}
	return out
}

// Describe returns a one-line summary of a result for logs and terminals.
func Describe(res *Result) string {
	if res.Partition == nil {
		return fmt.Sprintf("%d agent, budget %d from %s: yield %d", res.Agents, res.Budget, res.Start, res.Yield)
	}
	return fmt.Sprintf("%d agents, budget %d from %s: yield %d (%d + %d)",
		res.Agents, res.Budget, res.Start, res.Yield, res.Partition.Yields[0], res.Partition.Yields[1])
}
