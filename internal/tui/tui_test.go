package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Joseda-hg/lazyboard/internal/api"
	"github.com/Joseda-hg/lazyboard/internal/auth"
	"github.com/Joseda-hg/lazyboard/internal/board"
	"github.com/Joseda-hg/lazyboard/internal/db"
	"github.com/Joseda-hg/lazyboard/internal/model"
	"github.com/Joseda-hg/lazyboard/internal/server"
	"github.com/jesseduffield/gocui"
)

func TestCreateFromForm(t *testing.T) {
	ui, store := newTestUI(t, nil)
	ui.navigate("")

	if err := ui.addTask(nil, nil); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if ui.form == nil || ui.form.editing() {
		t.Fatalf("expected a create form")
	}
	ui.form.fields[fieldTitle].Value = "Write spec"
	ui.form.fields[fieldDescription].Value = "core design"
	ui.form.fields[fieldTimestamp].Value = "2024-01-01T10:00"

	if err := ui.submitForm(nil, nil); err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if ui.form != nil {
		t.Fatalf("expected form to close, status %q", ui.status)
	}

	todo := ui.columns[0].Tasks
	if len(todo) != 1 || todo[0].Title != "Write spec" || todo[0].ID == "" {
		t.Fatalf("unexpected To-Do column: %+v", todo)
	}
	if got := ui.board.Form(); got != board.NewTaskForm() {
		t.Fatalf("expected form defaults, got %+v", got)
	}
	if tasks := listTasks(t, store); len(tasks) != 1 {
		t.Fatalf("expected 1 stored task, got %d", len(tasks))
	}
}

func TestInvalidFormStaysOpen(t *testing.T) {
	ui, store := newTestUI(t, nil)
	ui.navigate("")

	if err := ui.addTask(nil, nil); err != nil {
		t.Fatalf("add task: %v", err)
	}
	ui.form.fields[fieldTitle].Value = "only a title"
	if err := ui.submitForm(nil, nil); err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if ui.form == nil {
		t.Fatalf("expected form to stay open")
	}
	if !strings.Contains(ui.status, "description is required") {
		t.Fatalf("expected validation status, got %q", ui.status)
	}
	if tasks := listTasks(t, store); len(tasks) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(tasks))
	}

	if err := ui.cancelForm(nil, nil); err != nil {
		t.Fatalf("cancel form: %v", err)
	}
	if ui.board.Form().Title != "only a title" {
		t.Fatalf("expected cancelled form values to be kept")
	}
}

func TestEditKeepsUntouchedFields(t *testing.T) {
	ui, store := newTestUI(t, nil)
	order := 2.0
	created, err := store.CreateTask(context.Background(), model.Task{
		Title:       "draft",
		Description: "notes",
		Timestamp:   "2024-02-03T09:30",
		Category:    model.CategoryInProgress,
		Order:       &order,
		Extra:       map[string]json.RawMessage{"owner": json.RawMessage(`"sam"`)},
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	ui.navigate("")
	ui.focus = 1

	if err := ui.editTask(nil, nil); err != nil {
		t.Fatalf("edit task: %v", err)
	}
	if ui.form == nil || ui.form.taskID != created.ID {
		t.Fatalf("expected edit form for %s", created.ID)
	}
	ui.form.fields[fieldTitle].Value = "final"
	if err := ui.submitForm(nil, nil); err != nil {
		t.Fatalf("submit form: %v", err)
	}
	if ui.form != nil {
		t.Fatalf("expected form to close, status %q", ui.status)
	}
	if _, open := ui.board.EditTarget(); open {
		t.Fatalf("expected edit target to be cleared")
	}

	stored, err := store.GetTask(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if stored.Title != "final" || stored.Description != "notes" || stored.Timestamp != "2024-02-03T09:30" {
		t.Fatalf("unexpected stored task: %+v", stored)
	}
	if stored.Order == nil || *stored.Order != 2 {
		t.Fatalf("expected order to survive the edit")
	}
	if string(stored.Extra["owner"]) != `"sam"` {
		t.Fatalf("expected extra field to survive the edit, got %s", stored.Extra["owner"])
	}
}

func TestMoveCardWithKeys(t *testing.T) {
	ui, store := newTestUI(t, nil)
	created := seedTask(t, store, "move me", model.CategoryToDo)
	ui.navigate("")

	if err := ui.moveCardRight(nil, nil); err != nil {
		t.Fatalf("move right: %v", err)
	}
	if len(ui.columns[1].Tasks) != 1 || ui.focus != 1 {
		t.Fatalf("expected card in In Progress with focus following it")
	}
	ui.board.Wait()
	if err := ui.moveCardRight(nil, nil); err != nil {
		t.Fatalf("move right: %v", err)
	}
	ui.board.Wait()
	if err := ui.moveCardRight(nil, nil); err != nil {
		t.Fatalf("move right at edge: %v", err)
	}
	ui.board.Wait()

	if len(ui.columns[2].Tasks) != 1 {
		t.Fatalf("expected card in Done")
	}
	if got := storedCategory(t, store, created.ID); got != model.CategoryDone {
		t.Fatalf("expected Done on the server, got %q", got)
	}

	if err := ui.moveCardLeft(nil, nil); err != nil {
		t.Fatalf("move left: %v", err)
	}
	ui.board.Wait()
	if got := storedCategory(t, store, created.ID); got != model.CategoryInProgress {
		t.Fatalf("expected In Progress on the server, got %q", got)
	}
}

func TestMouseMovesCards(t *testing.T) {
	ui, store := newTestUI(t, nil)
	first := seedTask(t, store, "first", model.CategoryToDo)
	second := seedTask(t, store, "second", model.CategoryToDo)
	ui.navigate("")

	click := func(column, row int) {
		t.Helper()
		if err := ui.onColumnClick(column, gocui.ViewMouseBindingOpts{Y: row, Key: gocui.MouseLeft}); err != nil {
			t.Fatalf("click: %v", err)
		}
	}

	t.Run("click selects the clicked row", func(t *testing.T) {
		click(0, 1)
		selected, ok := ui.selectedTask()
		if !ok || selected.ID != second.ID {
			t.Fatalf("expected second card selected, got %+v", selected)
		}
		if ui.drag != nil {
			t.Fatalf("expected a first click to only select")
		}
	})

	t.Run("clicking the selected card picks it up", func(t *testing.T) {
		click(0, 1)
		if ui.drag == nil || ui.drag.taskID != second.ID {
			t.Fatalf("expected second card in hand, got %+v", ui.drag)
		}
		if ui.status == "" {
			t.Fatalf("expected the status line to explain the move")
		}
		click(0, 0)
		ui.board.Wait()
		if ui.drag != nil || len(ui.columns[0].Tasks) != 2 || ui.status != "" {
			t.Fatalf("expected a click on its own column to put the card back")
		}
	})

	t.Run("click outside the columns", func(t *testing.T) {
		click(0, 1)
		if err := ui.onOutsideClick(gocui.ViewMouseBindingOpts{}); err != nil {
			t.Fatalf("outside click: %v", err)
		}
		ui.board.Wait()
		if ui.drag != nil || len(ui.columns[0].Tasks) != 2 {
			t.Fatalf("expected card to stay in To-Do")
		}
	})

	t.Run("escape puts the card back", func(t *testing.T) {
		click(0, 1)
		if err := ui.cancelDrag(nil, nil); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if ui.drag != nil || ui.status != "" {
			t.Fatalf("expected nothing in hand")
		}
	})

	t.Run("empty row", func(t *testing.T) {
		click(1, 0)
		if ui.drag != nil || ui.focus != 1 {
			t.Fatalf("expected focus on the empty column and nothing in hand")
		}
	})

	t.Run("drag then click another column", func(t *testing.T) {
		click(0, 0)
		if ui.drag != nil {
			t.Fatalf("expected the press to only select")
		}
		if err := ui.onColumnMotion(gocui.ViewMouseBindingOpts{Y: 0, Key: gocui.MouseLeft}); err != nil {
			t.Fatalf("motion: %v", err)
		}
		if ui.drag == nil || ui.drag.taskID != first.ID {
			t.Fatalf("expected moving with the button held to pick up the pressed card")
		}
		click(2, 3)
		if len(ui.columns[2].Tasks) != 1 || ui.focus != 2 {
			t.Fatalf("expected card in Done right after the drop")
		}
		ui.board.Wait()
		if got := storedCategory(t, store, first.ID); got != model.CategoryDone {
			t.Fatalf("expected Done on the server, got %q", got)
		}
		if got := storedCategory(t, store, second.ID); got != model.CategoryToDo {
			t.Fatalf("expected second card untouched, got %q", got)
		}
	})
}

func TestDeleteAsksFirst(t *testing.T) {
	answer := false
	confirm := board.ConfirmFunc(func(context.Context, board.Prompt) (bool, error) {
		return answer, nil
	})
	ui, store := newTestUI(t, confirm)
	seedTask(t, store, "delete me", model.CategoryDone)
	ui.navigate("")
	ui.focus = 2

	if err := ui.deleteTask(nil, nil); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if ui.ack != nil {
		t.Fatalf("expected no acknowledgment after cancel")
	}
	if tasks := listTasks(t, store); len(tasks) != 1 {
		t.Fatalf("expected task to survive a cancel")
	}

	answer = true
	if err := ui.deleteTask(nil, nil); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if ui.ack == nil || ui.ack.Title != "Deleted!" {
		t.Fatalf("expected deleted acknowledgment, got %+v", ui.ack)
	}
	if tasks := listTasks(t, store); len(tasks) != 0 {
		t.Fatalf("expected task to be deleted")
	}
	if len(ui.columns[2].Tasks) != 0 {
		t.Fatalf("expected Done column to be empty")
	}

	if err := ui.closeAck(nil, nil); err != nil {
		t.Fatalf("close ack: %v", err)
	}
	if ui.inputActive() {
		t.Fatalf("expected board to take input again")
	}
}

func TestDeleteIgnoresRepeatWhilePending(t *testing.T) {
	var ui *UI
	asked := 0
	confirm := board.ConfirmFunc(func(context.Context, board.Prompt) (bool, error) {
		asked++
		if err := ui.deleteTask(nil, nil); err != nil {
			t.Errorf("repeat delete: %v", err)
		}
		return false, nil
	})
	ui, store := newTestUI(t, confirm)
	seedTask(t, store, "delete me", model.CategoryToDo)
	ui.navigate("")

	if err := ui.deleteTask(nil, nil); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if asked != 1 {
		t.Fatalf("expected one confirmation, got %d", asked)
	}
	if ui.deleting {
		t.Fatalf("expected the pending delete to clear")
	}

	if err := ui.deleteTask(nil, nil); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if asked != 2 {
		t.Fatalf("expected a later press to ask again, got %d", asked)
	}
}

func TestConfirmModal(t *testing.T) {
	ui := newUI(context.Background(), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err := ui.Confirm(ctx, board.DeletePrompt)
	if ok || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled confirm, got %v %v", ok, err)
	}
	if ui.confirm != nil {
		t.Fatalf("expected modal to close")
	}

	state := &confirmState{prompt: board.DeletePrompt, answer: make(chan bool, 1)}
	ui.confirm = state
	if err := ui.confirmYes(nil, nil); err != nil {
		t.Fatalf("confirm yes: %v", err)
	}
	if ui.confirm != nil || !<-state.answer {
		t.Fatalf("expected a yes answer and a closed modal")
	}

	state = &confirmState{prompt: board.DeletePrompt, answer: make(chan bool, 1)}
	ui.confirm = state
	if err := ui.confirmNo(nil, nil); err != nil {
		t.Fatalf("confirm no: %v", err)
	}
	if <-state.answer {
		t.Fatalf("expected a no answer")
	}
}

func TestLoginGate(t *testing.T) {
	client := newSandbox(t)
	saved := ""
	ui := newUI(context.Background(), Options{
		Connect:   func(string) board.API { return client },
		Gate:      auth.Gate{Required: true},
		SaveToken: func(token string) error { saved = token; return nil },
	})

	ui.navigate("")
	if ui.screen != screenLogin {
		t.Fatalf("expected login screen, got %q", ui.screen)
	}
	if err := ui.addTask(nil, nil); err != nil || ui.form != nil {
		t.Fatalf("expected board keys to be ignored on the login screen")
	}

	ui.submitToken("   ")
	if ui.screen != screenLogin || ui.status == "" {
		t.Fatalf("expected empty token to be rejected")
	}

	ui.submitToken("opaque-token")
	if ui.screen != screenBoard {
		t.Fatalf("expected board screen, got %q", ui.screen)
	}
	if saved != "opaque-token" {
		t.Fatalf("expected token to be saved, got %q", saved)
	}
	if ui.board == nil {
		t.Fatalf("expected board to open")
	}
}

func TestUnknownScreen(t *testing.T) {
	ui := newUI(context.Background(), Options{})
	ui.navigate("settings")
	if ui.screen != screenError || ui.missing != "settings" {
		t.Fatalf("expected error screen, got %q", ui.screen)
	}
	ui.navigate(screenRegister)
	if ui.screen != screenRegister {
		t.Fatalf("expected register screen, got %q", ui.screen)
	}
}

func TestFormEditing(t *testing.T) {
	form := newCreateForm(board.NewTaskForm())
	now := func() time.Time { return time.Date(2024, 5, 6, 7, 8, 0, 0, time.Local) }

	for _, ch := range "hi" {
		editFormField(form, 0, ch, gocui.ModNone, now)
	}
	editFormField(form, gocui.KeyBackspace2, 0, gocui.ModNone, now)
	if form.fields[fieldTitle].Value != "h" {
		t.Fatalf("unexpected title %q", form.fields[fieldTitle].Value)
	}

	form.index = fieldTimestamp
	editFormField(form, gocui.KeyCtrlN, 0, gocui.ModNone, now)
	if form.fields[fieldTimestamp].Value != "2024-05-06T07:08" {
		t.Fatalf("unexpected timestamp %q", form.fields[fieldTimestamp].Value)
	}

	form.index = fieldCategory
	editFormField(form, gocui.KeyArrowLeft, 0, gocui.ModNone, now)
	if form.fields[fieldCategory].Value != string(model.CategoryDone) {
		t.Fatalf("expected wrap to Done, got %q", form.fields[fieldCategory].Value)
	}
	editFormField(form, gocui.KeySpace, 0, gocui.ModNone, now)
	if form.fields[fieldCategory].Value != string(model.CategoryToDo) {
		t.Fatalf("expected wrap to To-Do, got %q", form.fields[fieldCategory].Value)
	}
}

func newSandbox(t *testing.T) *api.Client {
	t.Helper()
	client, _ := newSandboxStore(t)
	return client
}

func newSandboxStore(t *testing.T) (*api.Client, *db.Store) {
	t.Helper()
	dbConn, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = dbConn.Close() })

	store := db.NewStore(dbConn)
	srv := httptest.NewServer(server.New(store, server.Options{}).Handler())
	t.Cleanup(srv.Close)
	return api.New(srv.URL), store
}

// newTestUI returns a UI without a terminal, wired to a sandbox server.
// A nil confirm makes the UI its own confirmer.
func newTestUI(t *testing.T, confirm board.Confirmer) (*UI, *db.Store) {
	t.Helper()
	client, store := newSandboxStore(t)
	ui := newUI(context.Background(), Options{
		Connect: func(string) board.API { return client },
	})
	if confirm == nil {
		confirm = ui
	}
	ui.board = board.New(board.Options{
		API:       client,
		Confirmer: confirm,
		Notifier:  ui,
		OnChange:  ui.changed,
	})
	return ui, store
}

func seedTask(t *testing.T, store *db.Store, title string, category model.Category) model.Task {
	t.Helper()
	created, err := store.CreateTask(context.Background(), model.Task{
		Title:       title,
		Description: title,
		Timestamp:   "2024-01-01T10:00",
		Category:    category,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return created
}

func listTasks(t *testing.T, store *db.Store) []model.Task {
	t.Helper()
	tasks, err := store.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	return tasks
}

func storedCategory(t *testing.T, store *db.Store, id string) model.Category {
	t.Helper()
	task, err := store.GetTask(context.Background(), id)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	return task.Category
}
