package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Joseda-hg/lazyboard/internal/model"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("task not found")

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

const taskColumns = "id, title, description, timestamp, category, sort_order, extra"

// CreateTask stores task under a freshly generated identifier. Any ID on
// the input is ignored.
func (s *Store) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	task = task.Clone()
	task.ID = uuid.NewString()

	extra, err := encodeExtra(task.Extra)
	if err != nil {
		return model.Task{}, err
	}

	if _, err := s.DB.ExecContext(ctx,
		"INSERT INTO tasks ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.Title, task.Description, string(task.Timestamp), string(task.Category), nullOrder(task.Order), extra,
	); err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}

	return task, nil
}

func (s *Store) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrNotFound
	}
	return task, err
}

// ListTasks returns every task in creation order.
func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

// UpdateTask replaces every stored field of the task with task.ID.
func (s *Store) UpdateTask(ctx context.Context, task model.Task) (model.Task, error) {
	extra, err := encodeExtra(task.Extra)
	if err != nil {
		return model.Task{}, err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE tasks
		SET title = ?, description = ?, timestamp = ?, category = ?, sort_order = ?, extra = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		task.Title, task.Description, string(task.Timestamp), string(task.Category), nullOrder(task.Order), extra, task.ID,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return model.Task{}, err
	} else if affected == 0 {
		return model.Task{}, ErrNotFound
	}

	return s.GetTask(ctx, task.ID)
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (model.Task, error) {
	var (
		task      model.Task
		timestamp string
		category  string
		order     sql.NullFloat64
		extra     string
	)
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &timestamp, &category, &order, &extra); err != nil {
		return model.Task{}, err
	}
	task.Timestamp = model.Timestamp(timestamp)
	task.Category = model.Category(category)
	if order.Valid {
		value := order.Float64
		task.Order = &value
	}
	if err := json.Unmarshal([]byte(extra), &task.Extra); err != nil {
		return model.Task{}, fmt.Errorf("decode extra fields of %s: %w", task.ID, err)
	}
	if len(task.Extra) == 0 {
		task.Extra = nil
	}
	return task, nil
}

func encodeExtra(extra map[string]json.RawMessage) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("encode extra fields: %w", err)
	}
	return string(data), nil
}

func nullOrder(order *float64) sql.NullFloat64 {
	if order == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *order, Valid: true}
}
