package board

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/Joseda-hg/lazyboard/internal/api"
	"github.com/Joseda-hg/lazyboard/internal/model"
)

var errTransport = errors.New("connection refused")

// fakeAPI is an in-memory remote collection with switchable failures.
type fakeAPI struct {
	mu      sync.Mutex
	tasks   []model.Task
	nextID  int
	created []model.Task
	updated []model.Task
	deleted []string
	lists   int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// updateGate, when set, blocks UpdateTask until it receives.
	updateGate chan struct{}
}

func newFakeAPI(tasks ...model.Task) *fakeAPI {
	f := &fakeAPI{}
	for _, task := range tasks {
		f.tasks = append(f.tasks, task.Clone())
	}
	return f
}

func (f *fakeAPI) ListTasks(ctx context.Context) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		out = append(out, task.Clone())
	}
	return out, nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, task model.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, task.Clone())
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	task = task.Clone()
	task.ID = fmt.Sprintf("srv-%d", f.nextID)
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, task model.Task) error {
	if f.updateGate != nil {
		<-f.updateGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, task.Clone())
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i] = task.Clone()
			return nil
		}
	}
	return &api.StatusError{Method: http.MethodPut, Path: "/tasks/" + task.ID, StatusCode: http.StatusNotFound, Status: "404 Not Found"}
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &api.StatusError{Method: http.MethodDelete, Path: "/tasks/" + id, StatusCode: http.StatusNotFound, Status: "404 Not Found"}
}

func (f *fakeAPI) calls() (created, updated, deleted int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created), len(f.updated), len(f.deleted)
}

type recordingNotifier struct {
	mu   sync.Mutex
	acks []Ack
}

func (n *recordingNotifier) Notify(ack Ack) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.acks = append(n.acks, ack)
}

func (n *recordingNotifier) all() []Ack {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Ack(nil), n.acks...)
}

func answer(confirmed bool) ConfirmFunc {
	return func(context.Context, Prompt) (bool, error) {
		return confirmed, nil
	}
}

func task(id, title string, category model.Category, order *float64) model.Task {
	return model.Task{
		ID:          id,
		Title:       title,
		Description: title + " description",
		Timestamp:   "2024-01-01T10:00",
		Category:    category,
		Order:       order,
	}
}

func ptr(v float64) *float64 {
	return &v
}
