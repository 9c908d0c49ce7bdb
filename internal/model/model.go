package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryToDo       Category = "To-Do"
	CategoryInProgress Category = "In Progress"
	CategoryDone       Category = "Done"
)

// Categories lists the board columns in display order.
var Categories = []Category{CategoryToDo, CategoryInProgress, CategoryDone}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) Index() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return -1
}

// Shift returns the column delta steps away, clamped to the board edges.
func (c Category) Shift(delta int) Category {
	index := c.Index()
	if index < 0 {
		return c
	}
	index = min(max(index+delta, 0), len(Categories)-1)
	return Categories[index]
}

// ParseCategory accepts the column labels case-insensitively plus a few short aliases.
func ParseCategory(value string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, known := range Categories {
		if strings.ToLower(string(known)) == normalized {
			return known, nil
		}
	}
	switch strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized) {
	case "todo":
		return CategoryToDo, nil
	case "inprogress", "doing":
		return CategoryInProgress, nil
	case "done":
		return CategoryDone, nil
	}
	return "", fmt.Errorf("unknown category %q", value)
}

// Timestamp is the user-supplied date-time exactly as entered, in the
// datetime-local layout. It is interpreted in local time.
type Timestamp string

const TimestampLayout = "2006-01-02T15:04"

var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	time.RFC3339Nano,
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.In(time.Local).Format(TimestampLayout))
}

func (ts Timestamp) Time() (time.Time, error) {
	value := strings.TrimSpace(string(ts))
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed.In(time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// Display renders the timestamp for a card.
func (ts Timestamp) Display() string {
	parsed, err := ts.Time()
	if err != nil {
		return "Invalid Date"
	}
	return parsed.Format("1/2/2006, 3:04:05 PM")
}

type Task struct {
	ID          string
	Title       string
	Description string
	Timestamp   Timestamp
	Category    Category
	Order       *float64

	// Extra holds fields the server sent that the board does not interpret.
	// They are written back unchanged on a full-record update.
	Extra map[string]json.RawMessage
}

const (
	keyID          = "_id"
	keyTitle       = "title"
	keyDescription = "description"
	keyTimestamp   = "timestamp"
	keyCategory    = "category"
	keyOrder       = "order"
)

// SortOrder is the order used for column sorting; a missing order counts as 0.
func (t Task) SortOrder() float64 {
	if t.Order == nil {
		return 0
	}
	return *t.Order
}

// Clone returns a copy that shares no pointers or maps with t.
func (t Task) Clone() Task {
	clone := t
	if t.Order != nil {
		order := *t.Order
		clone.Order = &order
	}
	if t.Extra != nil {
		clone.Extra = make(map[string]json.RawMessage, len(t.Extra))
		for key, value := range t.Extra {
			clone.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}
	return clone
}

func (t Task) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(t.Extra)+6)
	for key, value := range t.Extra {
		fields[key] = value
	}

	set := func(key string, value any) error {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		fields[key] = data
		return nil
	}

	if t.ID != "" {
		if err := set(keyID, t.ID); err != nil {
			return nil, err
		}
	} else {
		delete(fields, keyID)
	}
	if err := set(keyTitle, t.Title); err != nil {
		return nil, err
	}
	if err := set(keyDescription, t.Description); err != nil {
		return nil, err
	}
	if err := set(keyTimestamp, t.Timestamp); err != nil {
		return nil, err
	}
	if err := set(keyCategory, t.Category); err != nil {
		return nil, err
	}
	if t.Order != nil {
		if err := set(keyOrder, *t.Order); err != nil {
			return nil, err
		}
	} else {
		delete(fields, keyOrder)
	}

	return json.Marshal(fields)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var task Task
	take := func(key string, target any) error {
		raw, ok := fields[key]
		if !ok {
			return nil
		}
		delete(fields, key)
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	}

	if err := take(keyID, &task.ID); err != nil {
		return err
	}
	if err := take(keyTitle, &task.Title); err != nil {
		return err
	}
	if err := take(keyDescription, &task.Description); err != nil {
		return err
	}
	if err := take(keyTimestamp, &task.Timestamp); err != nil {
		return err
	}
	if err := take(keyCategory, &task.Category); err != nil {
		return err
	}
	var order float64
	if raw, ok := fields[keyOrder]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if err := take(keyOrder, &order); err != nil {
			return err
		}
		task.Order = &order
	}
	delete(fields, keyOrder)

	if len(fields) > 0 {
		task.Extra = fields
	}
	*t = task
	return nil
}
