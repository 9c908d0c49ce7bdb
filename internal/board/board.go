// Package board holds the state behind the kanban view: the cached task
// collection, the create form, the task being edited, and the operations that
// change them.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Joseda-hg/lazyboard/internal/model"
	"go.uber.org/zap"
)

// API is the remote task collection.
type API interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, task model.Task) error
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id string) error
}

var (
	ErrNoEditTarget = errors.New("no task is being edited")
	ErrTaskNotFound = errors.New("task not found")
)

type Options struct {
	API       API
	Confirmer Confirmer
	Notifier  Notifier
	Logger    *zap.Logger
	// OnChange runs after any state change, from whichever goroutine made it.
	OnChange func()
}

type Board struct {
	api      API
	confirm  Confirmer
	notify   Notifier
	log      *zap.Logger
	onChange func()

	store *TaskStore
	drag  *DragCoordinator

	mu   sync.Mutex
	form TaskForm
	edit *model.Task
}

func New(opts Options) *Board {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	notify := opts.Notifier
	if notify == nil {
		notify = NotifyFunc(func(Ack) {})
	}

	b := &Board{
		api:      opts.API,
		confirm:  opts.Confirmer,
		notify:   notify,
		log:      log,
		onChange: opts.OnChange,
		form:     NewTaskForm(),
	}
	b.store = NewTaskStore(opts.API, log, b.changed)
	b.drag = NewDragCoordinator(b.store, opts.API, log)
	return b
}

func (b *Board) Store() *TaskStore {
	return b.store
}

func (b *Board) Refresh(ctx context.Context) error {
	return b.store.Refresh(ctx)
}

// Columns projects the current cache into the three board columns.
func (b *Board) Columns() Columns {
	return Project(b.store.Tasks())
}

func (b *Board) Form() TaskForm {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.form
}

func (b *Board) SetForm(form TaskForm) {
	b.mu.Lock()
	b.form = form
	b.mu.Unlock()
	b.changed()
}

func (b *Board) ResetForm() {
	b.SetForm(NewTaskForm())
}

// EditTarget returns a copy of the task open in the edit view.
func (b *Board) EditTarget() (model.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.edit == nil {
		return model.Task{}, false
	}
	return b.edit.Clone(), true
}

// OpenEdit starts editing a copy of the cached task with the given id.
func (b *Board) OpenEdit(id string) error {
	task, ok := b.store.Find(id)
	if !ok {
		return fmt.Errorf("edit %s: %w", id, ErrTaskNotFound)
	}
	b.mu.Lock()
	b.edit = &task
	b.mu.Unlock()
	b.changed()
	return nil
}

// SetEditTarget replaces the fields being edited. The identifier cannot change.
func (b *Board) SetEditTarget(task model.Task) error {
	b.mu.Lock()
	if b.edit == nil {
		b.mu.Unlock()
		return ErrNoEditTarget
	}
	if task.ID != b.edit.ID {
		b.mu.Unlock()
		return fmt.Errorf("edit target is %s, not %s", b.edit.ID, task.ID)
	}
	updated := task.Clone()
	b.edit = &updated
	b.mu.Unlock()
	b.changed()
	return nil
}

func (b *Board) CloseEdit() {
	b.mu.Lock()
	b.edit = nil
	b.mu.Unlock()
	b.changed()
}

// Drop applies the end of a drag. See DragCoordinator.Drop.
func (b *Board) Drop(ctx context.Context, event DropEvent) bool {
	return b.drag.Drop(ctx, event)
}

// Wait blocks until background drag persists have finished.
func (b *Board) Wait() {
	b.drag.Wait()
}

func (b *Board) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}
