package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/yieldpath/pkg/errors"
	"github.com/matzehuels/yieldpath/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	budget     int    // single-agent time budget
	pairBudget int    // per-agent budget with two agents
	start      string // start location
	agents     int    // 1 or 2
	workers    int    // partition workers, 0 = GOMAXPROCS
	balance    int    // partition balance limit, 0 = exact
	plan       bool   // print activation schedules
	json       bool   // print the result as JSON
	noCache    bool   // skip the result cache entirely
	refresh    bool   // recompute and overwrite cached results
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{
		budget:     pipeline.DefaultBudget,
		pairBudget: pipeline.DefaultPairBudget,
		start:      pipeline.DefaultStart,
		agents:     pipeline.DefaultAgents,
	}

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Find the maximum yield for one or two agents",
		Long: `Solve reads a network and prints the maximum yield obtainable within the
time budget. With --agents 2 both agents start together and the relevant
locations are split between them; the best split is reported.

Input may be text ("Valve AA has flow rate=0; tunnels lead to valves DD, II"),
JSON or TOML, chosen by file extension. Use "-" to read text from stdin.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: inputFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.apply(cmd.Flags().Changed, &opts)
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.budget, "budget", opts.budget, "time budget for a single agent")
	cmd.Flags().IntVar(&opts.pairBudget, "pair-budget", opts.pairBudget, "time budget per agent with --agents 2")
	cmd.Flags().StringVar(&opts.start, "start", opts.start, "start location")
	cmd.Flags().IntVar(&opts.agents, "agents", opts.agents, "number of agents: 1 or 2")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "partition workers (default: number of CPUs)")
	cmd.Flags().IntVar(&opts.balance, "balance", 0, "skip splits whose share sizes differ by more than this (0 = exact)")
	cmd.Flags().BoolVar(&opts.plan, "plan", false, "show the activation schedule")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

// pipelineOptions maps flags to pipeline options. A zero budget would
// select the pipeline default, so it is rejected here.
func (o solveOpts) pipelineOptions() (pipeline.Options, error) {
	budget := o.budget
	name := "budget"
	if o.agents == 2 {
		budget, name = o.pairBudget, "pair-budget"
	}
	if budget == 0 {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidOptions, "%s must be at least 1", name)
	}
	return pipeline.Options{
		Agents:  o.agents,
		Budget:  budget,
		Start:   o.start,
		Balance: o.balance,
		Plan:    o.plan,
		Workers: o.workers,
		Refresh: o.refresh,
	}, nil
}

func (c *CLI) runSolve(ctx context.Context, out io.Writer, path string, opts solveOpts) error {
	logger := loggerFromContext(ctx)

	popts, err := opts.pipelineOptions()
	if err != nil {
		return err
	}
	popts.Logger = logger

	records, err := loadRecords(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if !opts.json {
		spinner = newSpinnerWithContext(ctx, "Solving "+filepath.Base(path))
		spinner.Start()
	}
	if popts.Agents == 2 {
		popts.Progress = newPartitionLogger(ctx, spinner).onProgress
	}

	prog := newProgress(logger)
	res, cached, err := runner.Solve(ctx, records, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(pipeline.Describe(res))

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(res, cached)
	return nil
}

// printResult prints a human-readable solve result.
func printResult(res *pipeline.Result, cached bool) {
	printSuccess("Yield %s", StyleNumber.Render(strconv.Itoa(res.Yield)))
	printStats(res.Stats.Locations, res.Stats.Edges, cached)
	printNewline()

	printKeyValue("Agents", strconv.Itoa(res.Agents))
	printKeyValue("Budget", strconv.Itoa(res.Budget))
	printKeyValue("Start", res.Start)
	printKeyValue("Relevant", listOrDash(res.Relevant))

	if p := res.Partition; p != nil {
		for i := range p.Shares {
			printKeyValue(fmt.Sprintf("Agent %d", i+1), fmt.Sprintf("%s (yield %d)", listOrDash(p.Shares[i]), p.Yields[i]))
		}
		printDetail("%d partitions evaluated, %d skipped", p.Evaluated, p.Skipped)
	}

	for i, plan := range res.Plans {
		printNewline()
		title := "Plan"
		if len(res.Plans) > 1 {
			title = fmt.Sprintf("Plan, agent %d", i+1)
		}
		fmt.Println(StyleTitle.Render(title))
		if len(plan.Steps) == 0 {
			printDetail("nothing worth activating")
		}
		for _, step := range plan.Steps {
			printDetail("%-6s at %3d  +%d", step.Location, step.Remaining, step.Yield)
		}
	}

	printNewline()
	printDetail("run %s", res.RunID)
}

func listOrDash(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, " ")
}
