package jobs

import (
	"context"
	"sync"
)

// Guard coordinates access to a Task between one writer and one reader.
//
// BeginWrite and BeginRead block until the caller may proceed, or until ctx is
// cancelled, in which case they return ctx.Err() and the caller must not call
// the matching End method.
type Guard interface {
	BeginWrite(ctx context.Context) error
	EndWrite()
	BeginRead(ctx context.Context) error
	EndRead()
}

// Gate is a single-slot Guard with strict alternation of writes and reads.
// It starts empty. A completed write fills it, a completed read empties it.
//
// Gate is not a counting semaphore: a second write blocks until the first
// one has been read, and a second read blocks until the next write.
type Gate struct {
	mu   sync.Mutex
	cond *sync.Cond
	full bool
}

var _ Guard = (*Gate)(nil)

// NewGate creates an empty gate.
func NewGate() *Gate {
	g := &Gate{}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// BeginWrite waits until the gate is empty.
func (g *Gate) BeginWrite(ctx context.Context) error {
	return g.await(ctx, false)
}

// EndWrite marks the gate full and wakes the reader.
func (g *Gate) EndWrite() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.full {
		panic("jobs: EndWrite on a full gate")
	}
	g.full = true
	tracer().Debugf("gate: full")
	g.cond.Broadcast()
}

// BeginRead waits until the gate is full.
func (g *Gate) BeginRead(ctx context.Context) error {
	return g.await(ctx, true)
}

// EndRead marks the gate empty and wakes the writer.
func (g *Gate) EndRead() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.full {
		panic("jobs: EndRead on an empty gate")
	}
	g.full = false
	tracer().Debugf("gate: empty")
	g.cond.Broadcast()
}

// Full reports whether a written job is waiting to be read.
func (g *Gate) Full() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.full
}

func (g *Gate) await(ctx context.Context, full bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.full == full {
		return nil
	}
	// sync.Cond knows nothing of contexts; wake all waiters on cancellation
	stop := context.AfterFunc(ctx, func() {
		g.mu.Lock()
		g.cond.Broadcast()
		g.mu.Unlock()
	})
	defer stop()
	for g.full != full {
		g.cond.Wait()
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// MutexGuard is a Guard offering mutual exclusion only. Writers and readers
// take turns in whatever order they arrive.
type MutexGuard struct {
	mu sync.Mutex
}

var _ Guard = (*MutexGuard)(nil)

func (m *MutexGuard) BeginWrite(ctx context.Context) error {
	return m.lock(ctx)
}

func (m *MutexGuard) EndWrite() {
	m.mu.Unlock()
}

func (m *MutexGuard) BeginRead(ctx context.Context) error {
	return m.lock(ctx)
}

func (m *MutexGuard) EndRead() {
	m.mu.Unlock()
}

func (m *MutexGuard) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	return nil
}
