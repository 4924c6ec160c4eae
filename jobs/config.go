package jobs

import (
	"fmt"
	"time"

	"github.com/Maxime2/tabfunc"
)

// Strategy selects how the Task is shared between the workers.
type Strategy int

const (
	// Gated runs both workers on a Gate: strict write/read alternation.
	Gated Strategy = iota
	// Locked runs both workers on a MutexGuard: mutual exclusion only.
	Locked
	// Sequential generates and integrates each job in turn on the calling
	// goroutine.
	Sequential
)

var strategyNames = map[Strategy]string{
	Gated:      "gate",
	Locked:     "mutex",
	Sequential: "sequential",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps "gate", "mutex" or "sequential" to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", tabfunc.ErrInvalidArgument, name)
}

// Config configures a run.
type Config struct {
	Rounds   int           // number of jobs
	Delay    time.Duration // pause of the generator after each job
	Seed     uint64        // seed for job generation; 0 picks a random seed
	Strategy Strategy
}

// DefaultConfig runs 100 gated rounds with a 2ms production delay.
func DefaultConfig() Config {
	return Config{
		Rounds:   100,
		Delay:    2 * time.Millisecond,
		Strategy: Gated,
	}
}

func (c Config) Validate() error {
	if c.Rounds < 0 {
		return fmt.Errorf("%w: negative round count %d", tabfunc.ErrInvalidArgument, c.Rounds)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: negative delay %v", tabfunc.ErrInvalidArgument, c.Delay)
	}
	if _, ok := strategyNames[c.Strategy]; !ok {
		return fmt.Errorf("%w: unknown strategy %v", tabfunc.ErrInvalidArgument, c.Strategy)
	}
	return nil
}
