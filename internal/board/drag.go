package board

import (
	"context"
	"sync"

	"github.com/Joseda-hg/lazyboard/internal/model"
	"go.uber.org/zap"
)

type Updater interface {
	UpdateTask(ctx context.Context, task model.Task) error
}

// DropEvent is the end of a drag. A nil Destination means the card was
// released outside every column.
type DropEvent struct {
	TaskID      string
	Destination *model.Category
}

// DragCoordinator moves a card between columns optimistically: the cache
// changes first and the server is told afterwards, in the background.
// A failed persist is only logged. The cache is neither rolled back nor
// refreshed, so it may disagree with the server until the next refresh.
type DragCoordinator struct {
	store    *TaskStore
	updater  Updater
	log      *zap.Logger
	inflight sync.WaitGroup
}

func NewDragCoordinator(store *TaskStore, updater Updater, log *zap.Logger) *DragCoordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &DragCoordinator{store: store, updater: updater, log: log}
}

// Drop reports whether the move was applied locally. Drops without a
// destination and drops of tasks missing from the cache are ignored.
func (d *DragCoordinator) Drop(ctx context.Context, event DropEvent) bool {
	if event.Destination == nil {
		return false
	}
	destination := *event.Destination

	moved, ok := d.store.Mutate(event.TaskID, func(task *model.Task) {
		task.Category = destination
	})
	if !ok {
		d.log.Debug("drop ignored: task not in cache", zap.String("task_id", event.TaskID))
		return false
	}

	persistCtx := context.WithoutCancel(ctx)
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		if err := d.updater.UpdateTask(persistCtx, moved); err != nil {
			d.log.Error("update task category",
				zap.String("task_id", moved.ID),
				zap.String("category", string(moved.Category)),
				zap.Error(err),
			)
		}
	}()
	return true
}

func (d *DragCoordinator) Wait() {
	d.inflight.Wait()
}
