package jobs

import (
	"context"

	"github.com/google/uuid"
	"github.com/guiguan/caster"
)

// Source describes a job as written by the Generator.
type Source struct {
	RunID       uuid.UUID
	Round       int
	Left, Right float64
	Step        float64
}

// Result is a job together with its integral, as computed by the Integrator.
type Result struct {
	Source
	Value float64
}

// Reporter receives the jobs produced and the results computed during a run.
// Produced and Integrated are called from different goroutines.
type Reporter interface {
	Produced(Source)
	Integrated(Result)
}

type nopReporter struct{}

func (nopReporter) Produced(Source)   {}
func (nopReporter) Integrated(Result) {}

// Broadcaster is a Reporter fanning Source and Result values out to any
// number of subscribers.
type Broadcaster struct {
	cast *caster.Caster
}

var _ Reporter = (*Broadcaster)(nil)

// NewBroadcaster creates a broadcaster which is closed when ctx is done.
func NewBroadcaster(ctx context.Context) *Broadcaster {
	return &Broadcaster{cast: caster.New(ctx)}
}

// Subscribe returns a channel receiving Source and Result values, buffered to
// capacity. The channel is closed when ctx is done or the broadcaster closes.
func (b *Broadcaster) Subscribe(ctx context.Context, capacity uint) (<-chan interface{}, bool) {
	ch, ok := b.cast.Sub(ctx, capacity)
	return ch, ok
}

func (b *Broadcaster) Produced(s Source) {
	b.cast.Pub(s)
}

func (b *Broadcaster) Integrated(r Result) {
	b.cast.Pub(r)
}

// Close closes all subscriber channels.
func (b *Broadcaster) Close() {
	b.cast.Close()
}
