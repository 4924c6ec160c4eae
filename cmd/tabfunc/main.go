// Command tabfunc demonstrates tabulated functions, numeric integration and the
// producer/consumer job pipeline.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/term"

	"github.com/Maxime2/tabfunc"
	"github.com/Maxime2/tabfunc/basic"
	"github.com/Maxime2/tabfunc/jobs"
)

type options struct {
	kind     tabfunc.Kind
	cfg      jobs.Config
	timeout  time.Duration
	showJobs bool
}

func main() {
	var (
		kind     = flag.String("kind", string(tabfunc.KindArray), "default tabulated function kind (array|list)")
		strategy = flag.String("strategy", jobs.Gated.String(), "job sharing strategy (gate|mutex|sequential)")
		rounds   = flag.Int("rounds", 100, "number of integration jobs")
		delay    = flag.Duration("delay", 2*time.Millisecond, "generator pause between jobs")
		seed     = flag.Uint64("seed", 0, "job generator seed, 0 for random")
		timeout  = flag.Duration("timeout", 0, "cancel the job pipeline after this long, 0 for never")
		verbose  = flag.Bool("v", false, "trace library internals")
		showJobs = flag.Bool("jobs", true, "log every job and result")
	)
	flag.Parse()
	setupLogging(*verbose)

	opts := options{timeout: *timeout, showJobs: *showJobs}
	var err error
	if opts.kind, err = tabfunc.ParseKind(*kind); err != nil {
		fail(err)
	}
	opts.cfg = jobs.Config{Rounds: *rounds, Delay: *delay, Seed: *seed}
	if opts.cfg.Strategy, err = jobs.ParseStrategy(*strategy); err != nil {
		fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, opts); err != nil {
		fail(err)
	}
}

func fail(err error) {
	slog.Error("tabfunc failed", "err", err)
	os.Exit(1)
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
		for _, key := range []string{"tabfunc", "tabfunc.jobs"} {
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		}
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		}),
	))
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
}

func run(ctx context.Context, opts options) error {
	if err := tabfunc.SetDefault(opts.kind); err != nil {
		return err
	}
	if err := showKinds(os.Stdout); err != nil {
		return err
	}
	if err := showDefaultSwitch(os.Stdout, opts.kind); err != nil {
		return err
	}
	if err := showConvergence(); err != nil {
		return err
	}
	return runJobs(ctx, opts)
}

// showKinds tabulates cos on [0, π] with every registered kind and prints the
// points of each.
func showKinds(w io.Writer) error {
	header := color.New(color.FgCyan, color.Bold)
	for _, kind := range tabfunc.Kinds() {
		f, err := tabfunc.TabulateKind(kind, basic.Cos{}, 0, math.Pi, 11)
		if err != nil {
			return err
		}
		header.Fprintf(w, "%s table of cos on [0, π]\n", kind)
		for p := range f.Points() {
			fmt.Fprintf(w, "  %-22v % .6f\n", p.X, p.Y)
		}
	}
	return nil
}

// showDefaultSwitch creates the same table through the default factory under
// every kind, then restores the default to kind.
func showDefaultSwitch(w io.Writer, kind tabfunc.Kind) error {
	defer tabfunc.SetDefault(kind)
	for _, k := range tabfunc.Kinds() {
		if err := tabfunc.SetDefault(k); err != nil {
			return err
		}
		f, err := tabfunc.CreateFromValues(0, 2, []float64{1, 0, 1})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "default %-5s -> %s %v\n", tabfunc.Default(), f.Kind(), f)
	}
	return nil
}

// showConvergence halves the step until the integral of exp over [0, 1] is
// within 1e-7 of e-1.
func showConvergence() error {
	want := math.E - 1
	step := 0.5
	got, err := tabfunc.Integrate(basic.Exp{}, 0, 1, step)
	if err != nil {
		return err
	}
	for math.Abs(got-want) >= 1e-7 && step >= 1e-12 {
		step /= 2
		if got, err = tabfunc.Integrate(basic.Exp{}, 0, 1, step); err != nil {
			return err
		}
	}
	slog.Info("integral of exp over [0, 1]", "value", got, "exact", want, "step", step)
	return nil
}

func runJobs(ctx context.Context, opts options) error {
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	bcast := jobs.NewBroadcaster(context.Background())
	var wg sync.WaitGroup
	if opts.showJobs {
		ch, ok := bcast.Subscribe(context.Background(), 64)
		if !ok {
			return errors.New("cannot subscribe to job results")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			logEvents(ch)
		}()
	}
	stats, err := jobs.Run(ctx, opts.cfg, bcast)
	bcast.Close()
	wg.Wait()
	if err != nil {
		return err
	}
	slog.Info("job run finished", "run", stats.RunID, "strategy", stats.Strategy,
		"produced", stats.Produced, "integrated", stats.Integrated,
		"complete", stats.Complete(opts.cfg.Rounds))
	return nil
}

func logEvents(ch <-chan interface{}) {
	for msg := range ch {
		switch ev := msg.(type) {
		case jobs.Source:
			slog.Info("source", "round", ev.Round, "left", ev.Left, "right", ev.Right, "step", ev.Step)
		case jobs.Result:
			slog.Info("result", "round", ev.Round, "left", ev.Left, "right", ev.Right, "step", ev.Step,
				"value", ev.Value)
		}
	}
}
