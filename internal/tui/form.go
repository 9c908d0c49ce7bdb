package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Joseda-hg/lazyboard/internal/board"
	"github.com/Joseda-hg/lazyboard/internal/model"
	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
)

type formField struct {
	Label string
	Value string
}

const (
	fieldTitle = iota
	fieldDescription
	fieldTimestamp
	fieldCategory
)

// formState is the open task modal. taskID is set when editing.
type formState struct {
	taskID string
	fields []formField
	index  int
}

func buildFormFields(title, description string, timestamp model.Timestamp, category model.Category) []formField {
	return []formField{
		{Label: "Title", Value: title},
		{Label: "Description", Value: description},
		{Label: "Timestamp (YYYY-MM-DDTHH:MM)", Value: string(timestamp)},
		{Label: "Category (space/←→)", Value: string(category)},
	}
}

func newCreateForm(form board.TaskForm) *formState {
	category := form.Category
	if !category.Valid() {
		category = model.CategoryToDo
	}
	return &formState{fields: buildFormFields(form.Title, form.Description, form.Timestamp, category)}
}

func newEditForm(task model.Task) *formState {
	return &formState{
		taskID: task.ID,
		fields: buildFormFields(task.Title, task.Description, task.Timestamp, task.Category),
	}
}

func (f *formState) editing() bool {
	return f.taskID != ""
}

func (f *formState) taskForm() board.TaskForm {
	return board.TaskForm{
		Title:       f.fields[fieldTitle].Value,
		Description: f.fields[fieldDescription].Value,
		Timestamp:   model.Timestamp(strings.TrimSpace(f.fields[fieldTimestamp].Value)),
		Category:    model.Category(f.fields[fieldCategory].Value),
	}
}

// applyTo copies the form onto task. Fields the form does not show are kept.
func (f *formState) applyTo(task model.Task) model.Task {
	values := f.taskForm()
	task.Title = strings.TrimSpace(values.Title)
	task.Description = strings.TrimSpace(values.Description)
	task.Timestamp = values.Timestamp
	task.Category = values.Category
	return task
}

func (u *UI) showForm(gui *gocui.Gui) error {
	if u.form == nil {
		return nil
	}

	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := min(10, max(7, maxY/2))
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewForm, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Wrap = true
	}
	if u.form.editing() {
		view.Title = "Edit Task"
	} else {
		view.Title = "New Task"
	}
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	u.renderForm(view)
	_, _ = gui.SetViewOnTop(viewForm)
	return nil
}

// submitForm creates or saves the task. On failure the form stays open
// with the error in the status line.
func (u *UI) submitForm(_ *gocui.Gui, _ *gocui.View) error {
	if u.form == nil || u.board == nil {
		return nil
	}
	form := u.form
	closeForm := func() {
		if u.form == form {
			u.form = nil
		}
		u.status = ""
	}

	if form.editing() {
		target, ok := u.board.EditTarget()
		if !ok || target.ID != form.taskID {
			u.form = nil
			return nil
		}
		if err := u.board.SetEditTarget(form.applyTo(target)); err != nil {
			u.status = err.Error()
			return nil
		}
		u.status = "saving..."
		u.run(u.board.Update, closeForm)
		return nil
	}

	u.board.SetForm(form.taskForm())
	u.status = "saving..."
	u.run(u.board.Create, closeForm)
	return nil
}

func (u *UI) cancelForm(_ *gocui.Gui, _ *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.editing() {
		u.board.CloseEdit()
	} else {
		u.board.SetForm(u.form.taskForm())
	}
	u.form = nil
	u.status = ""
	return nil
}

func (u *UI) nextFormField(_ *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index < len(u.form.fields)-1 {
		u.form.index++
	}
	u.renderForm(view)
	return nil
}

func (u *UI) prevFormField(_ *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index > 0 {
		u.form.index--
	}
	u.renderForm(view)
	return nil
}

func (u *UI) renderForm(view *gocui.View) {
	if u.form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range u.form.fields {
		prefix := "  "
		if index == u.form.index {
			prefix = "> "
		}
		fmt.Fprintf(view, "%s%s: %s\n", prefix, field.Label, field.Value)
	}
	fmt.Fprint(view, "\n  enter save | esc cancel | ctrl-n now")
	label := u.form.fields[u.form.index].Label + ": "
	cursorX := len([]rune(label)) + len([]rune(u.form.fields[u.form.index].Value)) + 2
	view.SetCursor(cursorX, u.form.index)
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || ui.form == nil {
		return false
	}
	editFormField(ui.form, key, ch, mod, time.Now)
	ui.renderForm(view)
	return true
}

// editFormField applies one keystroke to the focused field.
func editFormField(form *formState, key gocui.Key, ch rune, mod gocui.Modifier, now func() time.Time) {
	field := &form.fields[form.index]

	if form.index == fieldCategory {
		switch key {
		case gocui.KeyArrowRight, gocui.KeySpace:
			field.Value = cycleCategory(field.Value, 1)
		case gocui.KeyArrowLeft:
			field.Value = cycleCategory(field.Value, -1)
		}
		return
	}

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	case gocui.KeyCtrlN:
		if form.index == fieldTimestamp {
			field.Value = string(model.NewTimestamp(now()))
		}
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		field.Value += string(ch)
	}
}

// cycleCategory steps through the columns, wrapping at both ends.
func cycleCategory(current string, delta int) string {
	index := 0
	if category, err := model.ParseCategory(current); err == nil {
		index = category.Index()
	}
	count := len(model.Categories)
	index = ((index+delta)%count + count) % count
	return string(model.Categories[index])
}
