package board

import (
	"sort"

	"github.com/Joseda-hg/lazyboard/internal/model"
)

type Column struct {
	Category model.Category
	Tasks    []model.Task
}

// Columns holds one Column per category, in model.Categories order.
type Columns []Column

func (c Columns) Tasks(category model.Category) []model.Task {
	for _, column := range c {
		if column.Category == category {
			return column.Tasks
		}
	}
	return nil
}

// Project splits tasks into the board columns, each sorted ascending by
// order. Ties keep collection order; tasks with an unknown category are left out.
func Project(tasks []model.Task) Columns {
	columns := make(Columns, 0, len(model.Categories))
	for _, category := range model.Categories {
		filtered := make([]model.Task, 0, len(tasks))
		for _, task := range tasks {
			if task.Category == category {
				filtered = append(filtered, task)
			}
		}
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].SortOrder() < filtered[j].SortOrder()
		})
		columns = append(columns, Column{Category: category, Tasks: filtered})
	}
	return columns
}
