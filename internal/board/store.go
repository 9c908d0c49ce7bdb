package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/Joseda-hg/lazyboard/internal/model"
	"go.uber.org/zap"
)

type Lister interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
}

// TaskStore is the client-side cache of the remote collection. It is not
// authoritative: every successful refresh replaces it wholesale.
type TaskStore struct {
	mu       sync.RWMutex
	tasks    []model.Task
	lister   Lister
	log      *zap.Logger
	onChange func()
}

func NewTaskStore(lister Lister, log *zap.Logger, onChange func()) *TaskStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskStore{lister: lister, log: log, onChange: onChange}
}

// Refresh fetches the collection once. On failure the previous contents stay.
func (s *TaskStore) Refresh(ctx context.Context) error {
	tasks, err := s.lister.ListTasks(ctx)
	if err != nil {
		s.log.Error("fetch tasks", zap.Error(err))
		return fmt.Errorf("fetch tasks: %w", err)
	}
	s.Replace(tasks)
	return nil
}

func (s *TaskStore) Replace(tasks []model.Task) {
	next := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		next = append(next, task.Clone())
	}

	s.mu.Lock()
	s.tasks = next
	s.mu.Unlock()
	s.changed()
}

// Tasks returns a copy of the cached collection in server order.
func (s *TaskStore) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, task.Clone())
	}
	return out
}

func (s *TaskStore) Find(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, task := range s.tasks {
		if task.ID == id {
			return task.Clone(), true
		}
	}
	return model.Task{}, false
}

// Mutate applies fn to the cached task with the given id in place and
// returns a copy of the result. It reports false when no such task is cached.
func (s *TaskStore) Mutate(id string, fn func(*model.Task)) (model.Task, bool) {
	s.mu.Lock()
	index := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return model.Task{}, false
	}
	fn(&s.tasks[index])
	updated := s.tasks[index].Clone()
	s.mu.Unlock()

	s.changed()
	return updated, true
}

func (s *TaskStore) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
