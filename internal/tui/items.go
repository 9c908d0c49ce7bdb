package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Joseda-hg/lazyboard/internal/model"
)

func formatCard(task model.Task) string {
	return fmt.Sprintf("%s | %s", task.Title, task.Timestamp.Display())
}

func detailLines(task model.Task) []string {
	order := "-"
	if task.Order != nil {
		order = strconv.FormatFloat(*task.Order, 'f', -1, 64)
	}

	lines := []string{
		task.Title,
		fmt.Sprintf("Category: %s | When: %s | Order: %s | ID: %s", task.Category, task.Timestamp.Display(), order, task.ID),
	}
	if extra := extraKeys(task); len(extra) > 0 {
		lines = append(lines, fmt.Sprintf("Other fields: %s", strings.Join(extra, ", ")))
	}
	lines = append(lines, "", task.Description)
	return lines
}

func extraKeys(task model.Task) []string {
	if len(task.Extra) == 0 {
		return nil
	}
	keys := make([]string, 0, len(task.Extra))
	for key := range task.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
