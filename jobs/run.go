package jobs

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Maxime2/tabfunc"
)

// Stats summarizes a run.
//
// Integrated counts integrations performed, not distinct jobs consumed. Under
// Locked the Integrator may integrate the same job again before the Generator
// replaces it, so Integrated can exceed Produced.
type Stats struct {
	RunID      uuid.UUID
	Strategy   Strategy
	Produced   int
	Integrated int
}

// Complete reports whether every round was both produced and integrated.
func (s Stats) Complete(rounds int) bool {
	return s.Produced == rounds && s.Integrated == rounds
}

// Run executes cfg.Rounds jobs with the configured strategy and reports each
// job and result to rep, which may be nil.
//
// For Gated and Locked, a Generator and an Integrator run on their own
// goroutines and Run waits for both. Cancelling ctx stops them early; this is
// not an error. An error is returned only for an invalid cfg or a job that
// could not be integrated, in which case the other worker is cancelled too.
func Run(ctx context.Context, cfg Config, rep Reporter) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}
	stats := Stats{RunID: uuid.New(), Strategy: cfg.Strategy}
	if rep == nil {
		rep = nopReporter{}
	}
	tracer().Infof("run %s: %d rounds, strategy %s", stats.RunID, cfg.Rounds, cfg.Strategy)
	if cfg.Strategy == Sequential {
		n, err := runSequential(ctx, cfg, stats.RunID, rep)
		stats.Produced, stats.Integrated = n, n
		return stats, err
	}
	var guard Guard = NewGate()
	if cfg.Strategy == Locked {
		guard = &MutexGuard{}
	}
	task := NewTask(cfg.Rounds)
	gen := NewGenerator(task, guard, cfg, stats.RunID, rep)
	integ := NewIntegrator(task, guard, stats.RunID, rep)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		stats.Produced = gen.Run(gctx)
		return nil
	})
	group.Go(func() error {
		var err error
		stats.Integrated, err = integ.Run(gctx)
		return err
	})
	err := group.Wait()
	tracer().Infof("run %s: produced %d, integrated %d", stats.RunID, stats.Produced, stats.Integrated)
	return stats, err
}

// runSequential generates and integrates each job on the calling goroutine.
func runSequential(ctx context.Context, cfg Config, runID uuid.UUID, rep Reporter) (int, error) {
	rng := newRand(cfg.Seed)
	task := NewTask(cfg.Rounds)
	for i := range task.Rounds() {
		if ctx.Err() != nil {
			return i, nil
		}
		task.store(randomJob(rng))
		job := task.load()
		src := Source{RunID: runID, Round: i, Left: job.Left, Right: job.Right, Step: job.Step}
		rep.Produced(src)
		v, err := tabfunc.Integrate(job.Function, job.Left, job.Right, job.Step)
		if err != nil {
			return i, err
		}
		rep.Integrated(Result{Source: src, Value: v})
	}
	return task.Rounds(), nil
}
