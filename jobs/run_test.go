package jobs

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxime2/tabfunc"
	"github.com/Maxime2/tabfunc/basic"
)

type recorder struct {
	mu      sync.Mutex
	sources []Source
	results []Result
}

func (r *recorder) Produced(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, s)
}

func (r *recorder) Integrated(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func testConfig(strategy Strategy, rounds int) Config {
	return Config{Rounds: rounds, Seed: 42, Strategy: strategy}
}

func TestRunGated(t *testing.T) {
	rec := &recorder{}
	cfg := testConfig(Gated, 10)
	cfg.Delay = time.Millisecond
	stats, err := Run(context.Background(), cfg, rec)
	require.NoError(t, err)
	assert.True(t, stats.Complete(10))
	assert.Equal(t, Gated, stats.Strategy)
	require.Len(t, rec.sources, 10)
	require.Len(t, rec.results, 10)
	for i, res := range rec.results {
		assert.Equal(t, rec.sources[i], res.Source, "round %d", i)
		assert.Equal(t, i, res.Round)
		assert.Equal(t, stats.RunID, res.RunID)
		assert.Greater(t, res.Value, 0.0)
	}
}

func TestRunLocked(t *testing.T) {
	rec := &recorder{}
	stats, err := Run(context.Background(), testConfig(Locked, 10), rec)
	require.NoError(t, err)
	assert.True(t, stats.Complete(10))
	assert.Len(t, rec.sources, 10)
	assert.Len(t, rec.results, 10)
	for _, res := range rec.results {
		assert.Equal(t, stats.RunID, res.RunID)
		assert.False(t, math.IsNaN(res.Value))
	}
}

func TestRunSequentialMatchesGated(t *testing.T) {
	seq := &recorder{}
	_, err := Run(context.Background(), testConfig(Sequential, 8), seq)
	require.NoError(t, err)
	gated := &recorder{}
	_, err = Run(context.Background(), testConfig(Gated, 8), gated)
	require.NoError(t, err)
	require.Len(t, seq.results, 8)
	require.Len(t, gated.results, 8)
	for i := range 8 {
		s, g := seq.results[i], gated.results[i]
		assert.Equal(t, s.Left, g.Left)
		assert.Equal(t, s.Right, g.Right)
		assert.Equal(t, s.Step, g.Step)
		assert.Equal(t, s.Value, g.Value)
		assert.NotEqual(t, s.RunID, g.RunID)
	}
}

func TestRunNoRounds(t *testing.T) {
	for _, strategy := range []Strategy{Gated, Locked, Sequential} {
		stats, err := Run(context.Background(), testConfig(strategy, 0), nil)
		require.NoError(t, err, strategy)
		assert.True(t, stats.Complete(0), strategy)
	}
}

func TestRunCancelled(t *testing.T) {
	for _, strategy := range []Strategy{Gated, Locked} {
		t.Run(strategy.String(), func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
			defer cancel()
			cfg := testConfig(strategy, 1_000_000)
			cfg.Delay = time.Millisecond
			stats, err := Run(ctx, cfg, nil)
			require.NoError(t, err)
			assert.Less(t, stats.Produced, cfg.Rounds)
			assert.Less(t, stats.Integrated, cfg.Rounds)
			if strategy == Gated {
				assert.LessOrEqual(t, stats.Integrated, stats.Produced)
			}
		})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := Run(ctx, testConfig(Sequential, 5), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Produced)
}

func TestRunInvalidConfig(t *testing.T) {
	bad := []Config{
		{Rounds: -1},
		{Rounds: 1, Delay: -time.Second},
		{Rounds: 1, Strategy: Strategy(7)},
	}
	for _, cfg := range bad {
		assert.ErrorIs(t, cfg.Validate(), tabfunc.ErrInvalidArgument)
		_, err := Run(context.Background(), cfg, nil)
		assert.ErrorIs(t, err, tabfunc.ErrInvalidArgument)
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{Gated, Locked, Sequential} {
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseStrategy("semaphore")
	assert.ErrorIs(t, err, tabfunc.ErrInvalidArgument)
	assert.Equal(t, "Strategy(7)", Strategy(7).String())
}

func TestIntegratorRereadsUnderMutex(t *testing.T) {
	task := NewTask(3)
	task.store(Job{Function: basic.Exp{}, Left: 0, Right: 1, Step: 0.25})
	rec := &recorder{}
	n, err := NewIntegrator(task, &MutexGuard{}, uuid.Nil, rec).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, rec.results, 3)
	for i, res := range rec.results {
		assert.Equal(t, i, res.Round)
		assert.Equal(t, rec.results[0].Value, res.Value)
	}
}

func TestIntegratorSkipsEmptyTask(t *testing.T) {
	task := NewTask(1)
	guard := &MutexGuard{}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	n, err := NewIntegrator(task, guard, uuid.Nil, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// Only single-goroutine runs redirect tracing into t: the test adapter is not
// safe for concurrent writers.
func TestBroadcaster(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabfunc.jobs")
	defer teardown()
	//
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := NewBroadcaster(ctx)
	ch, ok := b.Subscribe(ctx, 16)
	require.True(t, ok)
	const rounds = 5
	stats, err := Run(ctx, testConfig(Sequential, rounds), b)
	require.NoError(t, err)
	for i := range 2 * rounds {
		select {
		case msg := <-ch:
			if i%2 == 0 {
				src, isSource := msg.(Source)
				require.True(t, isSource, "message %d: %T", i, msg)
				assert.Equal(t, i/2, src.Round)
				assert.Equal(t, stats.RunID, src.RunID)
			} else {
				res, isResult := msg.(Result)
				require.True(t, isResult, "message %d: %T", i, msg)
				assert.Equal(t, i/2, res.Round)
			}
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for message %d", i)
		}
	}
	b.Close()
}
