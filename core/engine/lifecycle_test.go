package engine

import (
	"context"
	"errors"
	"testing"

	"craftwarden/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckJob(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(catalog.New(), &fakeNetwork{}, Config{})

	t.Run("NoHandle", func(t *testing.T) {
		r := wantedRecipe("minecraft:torch", 0, 16)
		state, err := e.checkJob(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, JobPending, state)
	})

	t.Run("Pending", func(t *testing.T) {
		r := wantedRecipe("minecraft:torch", 0, 16)
		r.Job = &fakeJob{}
		state, err := e.checkJob(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, JobPending, state)
		assert.NotNil(t, r.Job)
	})

	t.Run("Completed", func(t *testing.T) {
		r := wantedRecipe("minecraft:torch", 0, 16)
		r.Job = &fakeJob{done: true}
		state, err := e.checkJob(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, JobCompleted, state)
		assert.Nil(t, r.Job, "handle cleared on completion")
		assert.Empty(t, r.Error, "success leaves no error")
	})

	t.Run("Canceled", func(t *testing.T) {
		r := wantedRecipe("minecraft:torch", 0, 16)
		r.Job = &fakeJob{canceled: true}
		state, err := e.checkJob(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, JobFailed, state)
		assert.Nil(t, r.Job)
		assert.Equal(t, "canceled", r.Error)
	})

	t.Run("CancellationCheckError", func(t *testing.T) {
		r := wantedRecipe("minecraft:torch", 0, 16)
		r.Job = &fakeJob{canceledErr: errors.New("missing resources")}
		state, err := e.checkJob(ctx, r)
		assert.NoError(t, err, "a failing cancellation check is a crafting problem, not backend trouble")
		assert.Equal(t, JobFailed, state)
		assert.Nil(t, r.Job)
		assert.Equal(t, "missing resources", r.Error)
	})

	t.Run("CompletionCheckErrorIsFatal", func(t *testing.T) {
		r := wantedRecipe("minecraft:torch", 0, 16)
		r.Job = &fakeJob{doneErr: errors.New("connection reset")}
		_, err := e.checkJob(ctx, r)
		require.Error(t, err)
		var fatalErr *FatalError
		assert.True(t, errors.As(err, &fatalErr))
		assert.NotNil(t, r.Job, "handle kept; the job state is unknown")
	})
}
