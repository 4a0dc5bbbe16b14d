package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yieldpath/pkg/partition"
)

// heartbeat is how often a long partition search reports that it is alive.
const heartbeat = 10 * time.Second

// partitionLogger turns partition progress into log lines and spinner
// updates. It logs the first result, every improvement (at debug level),
// and a heartbeat every ten seconds.
//
// partition.Solve serializes progress callbacks, so no locking is needed.
type partitionLogger struct {
	logger   *log.Logger
	spinner  *Spinner
	lastBest int
	start    time.Time
	lastLog  time.Time
}

// newPartitionLogger creates a progress logger with the logger from ctx.
// spinner may be nil.
func newPartitionLogger(ctx context.Context, spinner *Spinner) *partitionLogger {
	now := time.Now()
	return &partitionLogger{
		logger:   loggerFromContext(ctx),
		spinner:  spinner,
		lastBest: -1,
		start:    now,
		lastLog:  now,
	}
}

// onProgress is passed as partition.Options.Progress.
func (p *partitionLogger) onProgress(pr partition.Progress) {
	done := pr.Evaluated + pr.Skipped
	if p.spinner != nil {
		p.spinner.SetMessage(fmt.Sprintf("Splitting %d/%d partitions, best %d", done, pr.Total, max(pr.Best, 0)))
	}

	switch {
	case pr.Evaluated == 0:
		return
	case p.lastBest < 0:
		p.logger.Debugf("Initial: yield %d after %d/%d partitions", pr.Best, done, pr.Total)
	case pr.Best > p.lastBest:
		p.logger.Debugf("Improved: yield %d (+%d) after %d/%d partitions", pr.Best, pr.Best-p.lastBest, done, pr.Total)
	default:
		if time.Since(p.lastLog) >= heartbeat {
			elapsed := time.Since(p.start).Truncate(time.Second)
			p.logger.Infof("Searching... %v elapsed, %d/%d partitions, best %d", elapsed, done, pr.Total, pr.Best)
			p.lastLog = time.Now()
		}
	}
	p.lastBest = pr.Best
}
