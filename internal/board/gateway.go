package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/Joseda-hg/lazyboard/internal/api"
	"go.uber.org/zap"
)

// Create submits the create form. On success the form goes back to its
// defaults and the cache is refreshed; on failure the form is left as is.
// The returned error only reports the create request itself.
func (b *Board) Create(ctx context.Context) error {
	task, err := b.Form().Task()
	if err != nil {
		return err
	}

	if err := b.api.CreateTask(ctx, task); err != nil {
		b.log.Error("add task", zap.String("title", task.Title), zap.Error(err))
		return fmt.Errorf("add task: %w", err)
	}

	b.ResetForm()
	b.refreshAfter(ctx)
	return nil
}

// Update sends the whole edit target as a replacement record. On success the
// edit view closes and the cache is refreshed; on failure it stays open.
func (b *Board) Update(ctx context.Context) error {
	task, ok := b.EditTarget()
	if !ok {
		return ErrNoEditTarget
	}
	if err := Validate(task); err != nil {
		return err
	}

	if err := b.api.UpdateTask(ctx, task); err != nil {
		b.log.Error("update task", zap.String("task_id", task.ID), zap.Error(err))
		return fmt.Errorf("update task: %w", err)
	}

	b.CloseEdit()
	b.refreshAfter(ctx)
	return nil
}

// Delete asks for confirmation, then removes the task. It reports whether a
// delete request succeeded; a declined confirmation returns false and nil.
func (b *Board) Delete(ctx context.Context, id string) (bool, error) {
	if b.confirm == nil {
		return false, fmt.Errorf("delete task: no confirmer configured")
	}

	confirmed, err := b.confirm.Confirm(ctx, DeletePrompt)
	if err != nil {
		b.log.Error("delete task", zap.String("task_id", id), zap.Error(err))
		b.notify.Notify(AckUnexpected)
		return false, fmt.Errorf("delete task: %w", err)
	}
	if !confirmed {
		return false, nil
	}

	if err := b.api.DeleteTask(ctx, id); err != nil {
		b.log.Error("delete task", zap.String("task_id", id), zap.Error(err))
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			b.notify.Notify(AckDeleteFailed)
		} else {
			b.notify.Notify(AckUnexpected)
		}
		return false, fmt.Errorf("delete task: %w", err)
	}

	b.notify.Notify(AckDeleted)
	b.refreshAfter(ctx)
	return true, nil
}

// refreshAfter reloads the cache once the server has accepted a change. A
// failed reload is logged by the store and only leaves the cache stale.
func (b *Board) refreshAfter(ctx context.Context) {
	_ = b.store.Refresh(ctx)
}
