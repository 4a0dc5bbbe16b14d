package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/yieldpath/pkg/cache"
	"github.com/matzehuels/yieldpath/pkg/network"
	"github.com/matzehuels/yieldpath/pkg/observability"
	"github.com/matzehuels/yieldpath/pkg/partition"
	"github.com/matzehuels/yieldpath/pkg/search"
)

// Runner executes solves with caching.
//
// The Runner holds no per-run state, so one Runner may serve concurrent
// solves with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Solve builds the network from records and returns the best yield. The
// boolean reports whether the result came from the cache.
func (r *Runner) Solve(ctx context.Context, records []network.Record, opts Options) (*Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	buildStart := time.Now()
	net, eng, err := Prepare(records, opts.Start)
	buildTime := time.Since(buildStart)
	relevant := 0
	if eng != nil {
		relevant = eng.Relevant().Len()
	}
	observability.Solve().OnNetworkBuilt(ctx, len(records), relevant, buildTime, err)
	if err != nil {
		return nil, false, err
	}

	hash, err := networkHash(net)
	if err != nil {
		return nil, false, classify(err)
	}
	key := r.Keyer.ResultKey(hash, opts.ResultKeyOpts())
	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID[:8])

	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			logger.Debug("result cache hit", "yield", res.Yield, "cached_run", res.RunID)
			res.RunID = runID
			return res, true, nil
		}
	}

	res := &Result{
		RunID:       runID,
		NetworkHash: hash,
		Agents:      opts.Agents,
		Budget:      opts.Budget,
		Start:       opts.Start,
		Relevant:    eng.Relevant().IDs(),
		Stats: Stats{
			Locations: net.Len(),
			Edges:     len(net.Edges()),
			BuildTime: buildTime,
		},
	}

	logger.Info("solving",
		"agents", opts.Agents,
		"budget", opts.Budget,
		"start", opts.Start,
		"locations", net.Len(),
		"relevant", relevant)

	observability.Solve().OnSolveStart(ctx, runID, opts.Agents, relevant)
	solveStart := time.Now()
	if opts.Agents == 1 {
		err = solveSingle(eng, opts, res)
	} else {
		err = solvePair(ctx, eng, opts, logger, res)
	}
	res.Stats.SolveTime = time.Since(solveStart)
	observability.Solve().OnSolveComplete(ctx, runID, res.Yield, res.Stats.SolveTime, err)
	if err != nil {
		return nil, false, classify(err)
	}

	logger.Info("solved", "yield", res.Yield, "duration", res.Stats.SolveTime.Round(time.Millisecond))
	r.store(ctx, key, res)
	return res, false, nil
}

// Prepare validates records and builds the search engine. start must name
// a location of the network.
func Prepare(records []network.Record, start string) (*network.Network, *search.Engine, error) {
	net, err := network.Build(records)
	if err != nil {
		return nil, nil, classify(err)
	}
	if _, ok := net.Index(start); !ok {
		return nil, nil, classify(fmt.Errorf("start %q: %w", start, network.ErrUnknownLocation))
	}
	eng, err := search.NewEngine(net)
	if err != nil {
		return nil, nil, classify(err)
	}
	return net, eng, nil
}

func solveSingle(eng *search.Engine, opts Options, res *Result) error {
	s := eng.NewSearch()
	yield, err := s.MaxYield(opts.Budget, opts.Start, 0)
	if err != nil {
		return err
	}
	res.Yield = yield
	if opts.Plan {
		plan, err := s.Plan(opts.Budget, opts.Start, 0)
		if err != nil {
			return err
		}
		res.Plans = []search.Plan{plan}
	}
	res.Stats.States = s.Stats().States
	return nil
}

func solvePair(ctx context.Context, eng *search.Engine, opts Options, logger *log.Logger, res *Result) error {
	p, err := partition.Solve(ctx, eng, partition.Options{
		Budget:  opts.Budget,
		Start:   opts.Start,
		Workers: opts.Workers,
		Balance: opts.Balance,
		Logger:  logger,
		Progress: func(pr partition.Progress) {
			observability.Solve().OnPartitionProgress(ctx, res.RunID, pr.Evaluated+pr.Skipped, pr.Total)
			if opts.Progress != nil {
				opts.Progress(pr)
			}
		},
	})
	if err != nil {
		return err
	}

	n := eng.Relevant().Len()
	ids := eng.Relevant().IDs()
	// Agent 0 leaves Mask alone, so it works the complement.
	masks := [2]search.Mask{p.Mask, p.Mask.Complement(n)}
	res.Yield = p.Yield
	res.Partition = &Partition{
		Mask:      p.Mask,
		Shares:    [2][]string{pick(ids, masks[1]), pick(ids, masks[0])},
		Yields:    p.Agents,
		Evaluated: p.Evaluated,
		Skipped:   p.Skipped,
	}

	if opts.Plan {
		for _, m := range masks {
			plan, err := eng.NewSearch().Plan(opts.Budget, opts.Start, m)
			if err != nil {
				return err
			}
			res.Plans = append(res.Plans, plan)
		}
	}
	return nil
}

func pick(ids []string, m search.Mask) []string {
	out := []string{}
	for _, b := range m.Bits() {
		out = append(out, ids[b])
	}
	return out
}

func networkHash(net *network.Network) (string, error) {
	data, err := json.Marshal(net.Records())
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "result")
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "result", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
