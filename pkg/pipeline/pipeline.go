// Package pipeline runs the solve workflow behind the CLI.
//
// A [Runner] takes raw records and [Options], validates both, builds the
// network and search engine, runs the single-agent search or the two-agent
// partition search, and caches the JSON result keyed by network content and
// every option that affects the answer.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, hit, err := runner.Solve(ctx, records, pipeline.Options{
//	    Agents: 2,
//	    Start:  "AA",
//	})
//	fmt.Println(res.Yield, hit)
//
// Errors returned by the runner carry a pkg/errors code, so callers can
// tell bad input (INVALID_*) from interruption (CANCELED).
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yieldpath/pkg/cache"
	"github.com/matzehuels/yieldpath/pkg/errors"
	"github.com/matzehuels/yieldpath/pkg/partition"
	"github.com/matzehuels/yieldpath/pkg/search"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultStart is where agents begin unless told otherwise.
	DefaultStart = "AA"

	// DefaultBudget is the single-agent time budget.
	DefaultBudget = 30

	// DefaultPairBudget is the per-agent budget in two-agent mode. Teaching
	// the second agent costs each of them four units.
	DefaultPairBudget = 26

	// DefaultAgents is the number of agents.
	DefaultAgents = 1
)

// =============================================================================
// Options
// =============================================================================

// Options configures a solve.
type Options struct {
	// Agents is 1 or 2. Zero means DefaultAgents.
	Agents int `json:"agents"`
	// Budget is each agent's time. Zero means DefaultBudget for one agent
	// and DefaultPairBudget for two.
	Budget int `json:"budget"`
	// Start is the shared start location. Empty means DefaultStart.
	Start string `json:"start"`
	// Balance is passed to partition.Options; 0 is exact.
	Balance int `json:"balance,omitempty"`
	// Plan requests activation schedules alongside the yield.
	Plan bool `json:"plan,omitempty"`

	// Runtime options (not part of the cache key)
	Workers  int                      `json:"-"`
	Refresh  bool                     `json:"-"`
	Progress func(partition.Progress) `json:"-"`
	Logger   *log.Logger              `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks option ranges and fills in defaults.
// It is idempotent. Errors carry ErrCodeInvalidOptions.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Agents == 0 {
		o.Agents = DefaultAgents
	}
	if o.Agents != 1 && o.Agents != 2 {
		return errors.New(errors.ErrCodeInvalidOptions, "agents must be 1 or 2 (got %d)", o.Agents)
	}
	if o.Budget == 0 {
		o.Budget = DefaultBudget
		if o.Agents == 2 {
			o.Budget = DefaultPairBudget
		}
	}
	if err := errors.ValidateBudget("budget", o.Budget); err != nil {
		return err
	}
	if o.Start == "" {
		o.Start = DefaultStart
	}
	if err := errors.ValidateWorkers(o.Workers); err != nil {
		return err
	}
	if o.Balance < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "balance cannot be negative (got %d)", o.Balance)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ResultKeyOpts returns the options that identify a cached result.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Agents:  o.Agents,
		Budget:  o.Budget,
		Start:   o.Start,
		Balance: o.Balance,
		Plan:    o.Plan,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of a solve. It is what gets cached.
type Result struct {
	RunID       string   `json:"run_id"`
	NetworkHash string   `json:"network_hash"`
	Agents      int      `json:"agents"`
	Budget      int      `json:"budget"`
	Start       string   `json:"start"`
	Yield       int      `json:"yield"`
	Relevant    []string `json:"relevant"`

	// Partition is set in two-agent mode.
	Partition *Partition `json:"partition,omitempty"`

	// Plans holds one plan per agent when Options.Plan is set.
	Plans []search.Plan `json:"plans,omitempty"`

	Stats Stats `json:"stats"`
}

// Partition describes the winning two-agent split.
type Partition struct {
	Mask      search.Mask `json:"mask"`
	Shares    [2][]string `json:"shares"`
	Yields    [2]int      `json:"yields"`
	Evaluated int         `json:"evaluated"`
	Skipped   int         `json:"skipped"`
}

// Stats contains run statistics.
type Stats struct {
	Locations int           `json:"locations"`
	Edges     int           `json:"edges"`
	States    int           `json:"states,omitempty"` // memo size, single-agent runs only
	BuildTime time.Duration `json:"build_time"`
	SolveTime time.Duration `json:"solve_time"`
}
