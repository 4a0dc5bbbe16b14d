package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/yieldpath/pkg/errors"
	"github.com/matzehuels/yieldpath/pkg/network"
	"github.com/matzehuels/yieldpath/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: "dot", "svg", "png"
	start    string   // start location, drawn as a double circle
	detailed bool     // add rates to relevant location labels
	plan     bool     // solve first and number the activations
	agents   int      // agents used for --plan
	noCache  bool     // skip the result cache for --plan
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		start:  pipeline.DefaultStart,
		agents: pipeline.DefaultAgents,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a network as a node-link diagram",
		Long: `Render draws the network with Graphviz. Relevant locations are filled,
the start location is a double circle. With --plan the network is solved
first and each agent's activations are numbered in order.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: inputFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("start") && c.config.Start != "" {
				opts.start = c.config.Start
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png (comma-separated)")
	cmd.Flags().StringVar(&opts.start, "start", opts.start, "start location")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show rates on relevant locations")
	cmd.Flags().BoolVar(&opts.plan, "plan", false, "solve and number the activations")
	cmd.Flags().IntVar(&opts.agents, "agents", opts.agents, "agents to plan for with --plan: 1 or 2")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache for --plan")
	_ = cmd.RegisterFlagCompletionFunc("format", completeDiagramFormats)

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .dot, .png), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinPath {
			return "network"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single
// format honours --output verbatim.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	records, err := loadRecords(input)
	if err != nil {
		return err
	}
	net, _, err := pipeline.Prepare(records, opts.start)
	if err != nil {
		return err
	}
	logger.Infof("Loaded network: %d locations, %d edges", net.Len(), len(net.Edges()))

	var res *pipeline.Result
	if opts.plan {
		if res, err = c.planFor(ctx, records, opts); err != nil {
			return err
		}
		logger.Infof("Planned: %s", pipeline.Describe(res))
	}

	paths := outputPaths(opts.output, input, opts.formats)
	for _, format := range opts.formats {
		if err := renderTo(ctx, net, res, format, paths[format], opts); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLI) planFor(ctx context.Context, records []network.Record, opts *renderOpts) (*pipeline.Result, error) {
	runner, err := c.newRunner(opts.noCache || c.config.NoCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Agents:  opts.agents,
		Start:   opts.start,
		Plan:    true,
		Workers: c.config.Workers,
		Logger:  loggerFromContext(ctx),
	}
	switch {
	case opts.agents == 2 && c.config.PairBudget != 0:
		popts.Budget = c.config.PairBudget
	case opts.agents != 2 && c.config.Budget != 0:
		popts.Budget = c.config.Budget
	}
	res, _, err := runner.Solve(ctx, records, popts)
	return res, err
}

func renderTo(ctx context.Context, net *network.Network, res *pipeline.Result, format, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	data, err := pipeline.Render(ctx, net, pipeline.RenderOptions{
		Format:   format,
		Start:    opts.start,
		Detailed: opts.detailed,
		Result:   res,
	})
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	printSuccess("Rendered %s", format)
	printFile(path)
	return nil
}
