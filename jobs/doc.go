/*
Package jobs runs integration jobs through a producer/consumer pair sharing a
single Task record.

The Generator fills the Task with a random integration job, the Integrator
copies it out and integrates it. Access to the Task is coordinated by a Guard.
A Gate enforces strict alternation: every job written is read exactly once
before the next one may be written. A MutexGuard only excludes concurrent
access, so jobs may be overwritten unread or read more than once.

Both workers stop early, without error, when their context is cancelled.
*/
package jobs

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tabfunc.jobs'
func tracer() tracing.Trace {
	return tracing.Select("tabfunc.jobs")
}
