package engine

import (
	"context"

	"craftwarden/core/catalog"
)

// JobState classifies the outcome of one lifecycle check.
type JobState int

const (
	// JobPending means the job is still running (or there was nothing
	// to check).
	JobPending JobState = iota
	// JobCompleted means the job finished; the handle was cleared.
	JobCompleted
	// JobFailed means the job was canceled or reported an error; the
	// handle was cleared and the message recorded on the recipe.
	JobFailed
)

// checkJob polls a recipe's crafting job and advances its state. It is
// called once right after every dispatch, to catch instant failures
// such as missing resources, and again for every in-flight recipe
// during poll cycles.
//
// Cancellation, and an error from the cancellation check itself, are
// crafting problems recorded on the recipe. An error from the
// completion check is backend trouble and comes back fatal.
func (e *Engine) checkJob(ctx context.Context, r *catalog.Recipe) (JobState, error) {
	if r.Job == nil {
		return JobPending, nil
	}

	canceled, err := r.Job.Canceled(ctx)
	if err != nil {
		r.Job = nil
		r.Error = err.Error()
		return JobFailed, nil
	}
	if canceled {
		r.Job = nil
		r.Error = errCanceled
		return JobFailed, nil
	}

	done, err := r.Job.Done(ctx)
	if err != nil {
		return JobPending, fatal("job completion check", err)
	}
	if done {
		r.Job = nil
		return JobCompleted, nil
	}
	return JobPending, nil
}
