package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/farm-stack/create-farm-app/internal/logging"
)

// Task is one named unit of work.
type Task struct {
	Title string
	// Enabled reports whether the task should run. Nil means always.
	Enabled func() bool
	Run     func(ctx context.Context) error
}

func (t Task) enabled() bool {
	return t.Enabled == nil || t.Enabled()
}

// Status is the outcome of a single task.
type Status int

const (
	// StatusNotRun marks tasks after a failure or cancellation.
	StatusNotRun Status = iota
	StatusSkipped
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "not run"
	}
}

// Outcome records what happened to one task.
type Outcome struct {
	Title    string
	Status   Status
	Err      error
	Duration time.Duration
}

// Result is the outcome of a whole run. Err is nil when every enabled task
// succeeded; otherwise it is a *TaskError for the first failure, or the
// context error if the run was cancelled between tasks.
type Result struct {
	Outcomes []Outcome
	Err      error
}

// OK reports whether every enabled task completed.
func (r *Result) OK() bool { return r.Err == nil }

// Failed returns the outcome of the failing task, if any.
func (r *Result) Failed() (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			return o, true
		}
	}
	return Outcome{}, false
}

// TaskError is the error of a failed task, tagged with the task's title.
type TaskError struct {
	Title string
	Err   error
}

func (e *TaskError) Error() string { return e.Title + ": " + e.Err.Error() }
func (e *TaskError) Unwrap() error { return e.Err }

// Runner executes task lists.
type Runner struct {
	reporter Reporter
}

// New returns a Runner that reports progress to reporter. A nil reporter
// reports nothing.
func New(reporter Reporter) *Runner {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Runner{reporter: reporter}
}

// Run executes tasks strictly in order and returns once a task fails or all
// tasks are done.
func (r *Runner) Run(ctx context.Context, tasks []Task) *Result {
	res := &Result{Outcomes: make([]Outcome, len(tasks))}
	for i, t := range tasks {
		res.Outcomes[i] = Outcome{Title: t.Title, Status: StatusNotRun}
	}

	for i, t := range tasks {
		if err := ctx.Err(); err != nil {
			res.Err = fmt.Errorf("interrupted before %q: %w", t.Title, err)
			return res
		}

		if !t.enabled() {
			logging.Debug("Skipping task", "task", t.Title)
			res.Outcomes[i].Status = StatusSkipped
			r.reporter.TaskSkipped(t.Title)
			continue
		}

		logging.Debug("Starting task", "task", t.Title)
		r.reporter.TaskStarted(t.Title)
		start := time.Now()
		err := t.Run(ctx)
		res.Outcomes[i].Duration = time.Since(start)

		if err != nil {
			res.Outcomes[i].Status = StatusFailed
			res.Outcomes[i].Err = err
			r.reporter.TaskFailed(t.Title, err)
			res.Err = &TaskError{Title: t.Title, Err: err}
			return res
		}

		res.Outcomes[i].Status = StatusSucceeded
		r.reporter.TaskSucceeded(t.Title, res.Outcomes[i].Duration)
	}
	return res
}
