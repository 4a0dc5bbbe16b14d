package partition

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/yieldpath/pkg/network"
	"github.com/matzehuels/yieldpath/pkg/search"
)

// ErrInvalidOptions is returned by [Solve] for a negative budget or balance.
var ErrInvalidOptions = errors.New("partition: invalid options")

// Options configures [Solve].
type Options struct {
	// Budget is the time each agent has.
	Budget int
	// Start is where both agents begin.
	Start string
	// Workers bounds the number of concurrent mask evaluations. Zero or
	// negative means runtime.GOMAXPROCS(0).
	Workers int
	// Balance skips lopsided partitions. Zero evaluates every partition.
	// A positive k skips masks where the two agents' shares of the relevant
	// set differ by more than k locations, which is faster but may miss the
	// optimum on networks where one agent should take almost everything.
	Balance int
	// Progress, if set, is called after every mask. Calls are serialized.
	Progress func(Progress)
	// Logger receives debug summaries. Nil means log.Default().
	Logger *log.Logger
}

// Progress is a snapshot of a running [Solve].
type Progress struct {
	Evaluated int
	Skipped   int
	Total     int
	Best      int
}

// Result is the best partition found by [Solve].
type Result struct {
	// Yield is Agents[0] + Agents[1].
	Yield int `json:"yield"`
	// Mask holds the relevant bits the first agent leaves alone; the second
	// agent leaves alone the complement.
	Mask search.Mask `json:"mask"`
	// Agents holds each agent's individual yield.
	Agents [2]int `json:"agents"`
	// Evaluated and Skipped count canonical masks.
	Evaluated int `json:"evaluated"`
	Skipped   int `json:"skipped"`
}

// Solve finds the split of the relevant set between two agents that
// maximizes their combined yield. Each agent searches independently with
// the other's share marked as opened, so no location is activated twice.
//
// Every unordered split is evaluated exactly once. Work is spread over
// Options.Workers goroutines; the result does not depend on the worker
// count, and ties go to the smallest mask. Cancellation is checked between
// masks, in which case ctx.Err() is returned.
func Solve(ctx context.Context, e *search.Engine, opts Options) (Result, error) {
	if err := opts.validate(e); err != nil {
		return Result{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	n := e.Relevant().Len()
	total := Partitions(n)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, total)

	started := time.Now()
	rep := &reporter{fn: opts.Progress, total: total}
	locals := make([]Result, workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := range workers {
		g.Go(func() error {
			best := Result{Yield: -1}
			for m := w; m < total; m += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				mask := search.Mask(m)
				if opts.skip(mask, n) {
					best.Skipped++
					rep.add(0, 1, -1)
					continue
				}
				r, err := evaluate(e, opts.Budget, opts.Start, mask)
				if err != nil {
					return err
				}
				best.Evaluated++
				if r.Yield > best.Yield {
					best.Yield, best.Mask, best.Agents = r.Yield, r.Mask, r.Agents
				}
				rep.add(1, 0, r.Yield)
			}
			locals[w] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := fold(locals)
	logger.Debug("partition search complete",
		"relevant", n,
		"evaluated", res.Evaluated,
		"skipped", res.Skipped,
		"yield", res.Yield,
		"mask", res.Mask.Format(n),
		"workers", workers,
		"elapsed", time.Since(started).Round(time.Millisecond))
	return res, nil
}

// Partitions returns the number of canonical masks for n relevant
// locations: one per unordered split, including the split that gives
// everything to one agent.
func Partitions(n int) int {
	if n <= 0 {
		return 1
	}
	return 1 << (n - 1)
}

// evaluate runs both agents for one split, each with a fresh memo.
func evaluate(e *search.Engine, budget int, start string, mask search.Mask) (Result, error) {
	n := e.Relevant().Len()
	a, err := e.NewSearch().MaxYield(budget, start, mask)
	if err != nil {
		return Result{}, err
	}
	b, err := e.NewSearch().MaxYield(budget, start, mask.Complement(n))
	if err != nil {
		return Result{}, err
	}
	return Result{Yield: a + b, Mask: mask, Agents: [2]int{a, b}}, nil
}

func fold(locals []Result) Result {
	res := Result{Yield: -1}
	for _, l := range locals {
		res.Evaluated += l.Evaluated
		res.Skipped += l.Skipped
		if l.Yield < 0 {
			continue
		}
		if l.Yield > res.Yield || (l.Yield == res.Yield && l.Mask < res.Mask) {
			res.Yield, res.Mask, res.Agents = l.Yield, l.Mask, l.Agents
		}
	}
	if res.Yield < 0 {
		res.Yield = 0
	}
	return res
}

func (o Options) validate(e *search.Engine) error {
	if o.Budget < 0 {
		return fmt.Errorf("%w: negative budget %d", ErrInvalidOptions, o.Budget)
	}
	if o.Balance < 0 {
		return fmt.Errorf("%w: negative balance %d", ErrInvalidOptions, o.Balance)
	}
	if _, ok := e.Network().Index(o.Start); !ok {
		return fmt.Errorf("%w: %q", network.ErrUnknownLocation, o.Start)
	}
	return nil
}

func (o Options) skip(mask search.Mask, n int) bool {
	if o.Balance <= 0 {
		return false
	}
	diff := 2*mask.Count() - n
	return max(diff, -diff) > o.Balance
}

// reporter serializes progress callbacks from all workers.
type reporter struct {
	mu    sync.Mutex
	fn    func(Progress)
	total int
	state Progress
}

func (r *reporter) add(evaluated, skipped, yield int) {
	if r.fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Evaluated += evaluated
	r.state.Skipped += skipped
	r.state.Total = r.total
	r.state.Best = max(r.state.Best, yield)
	r.fn(r.state)
}
