package jobs

import (
	"github.com/Maxime2/tabfunc"
)

// Task is the job record shared by a Generator and an Integrator. It does not
// synchronize itself; callers hold a Guard while touching the job fields.
type Task struct {
	Function    tabfunc.Function
	Left, Right float64
	Step        float64
	rounds      int
}

// NewTask creates an empty task for the given number of rounds.
func NewTask(rounds int) *Task {
	return &Task{rounds: rounds}
}

// Rounds is the number of jobs to run. It is fixed before the workers start.
func (t *Task) Rounds() int {
	return t.rounds
}

// Job is a copy of the job fields of a Task.
type Job struct {
	Function    tabfunc.Function
	Left, Right float64
	Step        float64
}

func (t *Task) store(j Job) {
	t.Function = j.Function
	t.Left = j.Left
	t.Right = j.Right
	t.Step = j.Step
}

func (t *Task) load() Job {
	return Job{Function: t.Function, Left: t.Left, Right: t.Right, Step: t.Step}
}

// valid reports whether j can be integrated at all. A freshly created Task
// holds no valid job.
func (j Job) valid() bool {
	return j.Function != nil && j.Step > 0 && j.Right > j.Left
}
