package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Joseda-hg/lazyboard/internal/model"
)

var ErrInvalidTask = errors.New("invalid task")

// TaskForm is the create form's current field values.
type TaskForm struct {
	Title       string
	Description string
	Timestamp   model.Timestamp
	Category    model.Category
}

func NewTaskForm() TaskForm {
	return TaskForm{Category: model.CategoryToDo}
}

// Task validates the form and returns the record to submit. The record has no ID.
func (f TaskForm) Task() (model.Task, error) {
	task := model.Task{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Timestamp:   model.Timestamp(strings.TrimSpace(string(f.Timestamp))),
		Category:    f.Category,
	}
	if err := Validate(task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Validate enforces the fields every submitted record must carry.
func Validate(task model.Task) error {
	var problems []string
	if strings.TrimSpace(task.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(task.Description) == "" {
		problems = append(problems, "description is required")
	}
	if strings.TrimSpace(string(task.Timestamp)) == "" {
		problems = append(problems, "timestamp is required")
	} else if _, err := task.Timestamp.Time(); err != nil {
		problems = append(problems, err.Error())
	}
	if !task.Category.Valid() {
		problems = append(problems, fmt.Sprintf("category must be one of To-Do, In Progress, Done (got %q)", task.Category))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTask, strings.Join(problems, "; "))
	}
	return nil
}
