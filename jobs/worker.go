package jobs

import (
	"context"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/Maxime2/tabfunc"
	"github.com/Maxime2/tabfunc/basic"
)

// Generator writes Task.Rounds() random integration jobs into a Task.
type Generator struct {
	task     *Task
	guard    Guard
	rng      *rand.Rand
	delay    time.Duration
	runID    uuid.UUID
	reporter Reporter
}

// NewGenerator creates a generator writing to task under guard. It pauses for
// cfg.Delay after each job and draws jobs from a generator seeded by cfg.Seed.
func NewGenerator(task *Task, guard Guard, cfg Config, runID uuid.UUID, rep Reporter) *Generator {
	if rep == nil {
		rep = nopReporter{}
	}
	return &Generator{
		task:     task,
		guard:    guard,
		rng:      newRand(cfg.Seed),
		delay:    cfg.Delay,
		runID:    runID,
		reporter: rep,
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randomJob draws a logarithm to a base in [1, 10), a left border in
// [0.1, 100), a right border in [100, 200) and a step in [1e-4, 1).
func randomJob(rng *rand.Rand) Job {
	return Job{
		Function: basic.Log{Base: 1 + rng.Float64()*9},
		Left:     0.1 + rng.Float64()*99.9,
		Right:    100 + rng.Float64()*100,
		Step:     math.Max(rng.Float64(), 1e-4),
	}
}

// Run writes one job per round and returns the number of jobs written. It
// stops early when ctx is cancelled; cancellation is not an error.
func (g *Generator) Run(ctx context.Context) int {
	rounds := g.task.Rounds()
	for i := range rounds {
		if ctx.Err() != nil {
			tracer().Infof("generator cancelled after %d of %d rounds", i, rounds)
			return i
		}
		job := randomJob(g.rng)
		if err := g.guard.BeginWrite(ctx); err != nil {
			tracer().Infof("generator interrupted in round %d: %v", i, err)
			return i
		}
		g.task.store(job)
		g.guard.EndWrite()
		g.reporter.Produced(Source{RunID: g.runID, Round: i, Left: job.Left, Right: job.Right, Step: job.Step})
		if !sleep(ctx, g.delay) {
			tracer().Infof("generator cancelled after %d of %d rounds", i+1, rounds)
			return i + 1
		}
	}
	return rounds
}

// sleep pauses for d and reports false if ctx was cancelled meanwhile.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Integrator reads Task.Rounds() jobs from a Task and integrates them.
type Integrator struct {
	task     *Task
	guard    Guard
	runID    uuid.UUID
	reporter Reporter
}

// NewIntegrator creates an integrator reading from task under guard.
func NewIntegrator(task *Task, guard Guard, runID uuid.UUID, rep Reporter) *Integrator {
	if rep == nil {
		rep = nopReporter{}
	}
	return &Integrator{task: task, guard: guard, runID: runID, reporter: rep}
}

// Run integrates one job per round and returns the number of jobs integrated.
// It stops early, without error, when ctx is cancelled, and with an error if a
// job cannot be integrated.
//
// A job is copied out of the Task while the guard is held and integrated after
// releasing it. Slots without a valid job are skipped; this only happens with
// a guard that does not alternate.
func (in *Integrator) Run(ctx context.Context) (int, error) {
	rounds := in.task.Rounds()
	done := 0
	for done < rounds {
		if ctx.Err() != nil {
			tracer().Infof("integrator cancelled after %d of %d rounds", done, rounds)
			return done, nil
		}
		if err := in.guard.BeginRead(ctx); err != nil {
			tracer().Infof("integrator interrupted in round %d: %v", done, err)
			return done, nil
		}
		job := in.task.load()
		in.guard.EndRead()
		if !job.valid() {
			runtime.Gosched()
			continue
		}
		v, err := tabfunc.Integrate(job.Function, job.Left, job.Right, job.Step)
		if err != nil {
			return done, err
		}
		in.reporter.Integrated(Result{
			Source: Source{RunID: in.runID, Round: done, Left: job.Left, Right: job.Right, Step: job.Step},
			Value:  v,
		})
		done++
	}
	return done, nil
}
