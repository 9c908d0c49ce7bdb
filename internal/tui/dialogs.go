package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Joseda-hg/lazyboard/internal/board"
	"github.com/Joseda-hg/lazyboard/internal/model"
	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
	"go.uber.org/zap"
)

type confirmState struct {
	prompt board.Prompt
	answer chan bool
}

// Confirm shows the prompt and blocks until the user answers or ctx ends.
// It must not be called from the UI goroutine.
func (u *UI) Confirm(ctx context.Context, prompt board.Prompt) (bool, error) {
	state := &confirmState{prompt: prompt, answer: make(chan bool, 1)}
	u.update(func() {
		u.confirm = state
	})
	defer u.update(func() {
		if u.confirm == state {
			u.confirm = nil
		}
	})

	select {
	case ok := <-state.answer:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (u *UI) Notify(ack board.Ack) {
	u.update(func() {
		u.ack = &ack
	})
}

func (u *UI) confirmYes(_ *gocui.Gui, _ *gocui.View) error {
	u.answerConfirm(true)
	return nil
}

func (u *UI) confirmNo(_ *gocui.Gui, _ *gocui.View) error {
	u.answerConfirm(false)
	return nil
}

func (u *UI) answerConfirm(ok bool) {
	if u.confirm == nil {
		return
	}
	u.confirm.answer <- ok
	u.confirm = nil
}

func (u *UI) closeAck(_ *gocui.Gui, _ *gocui.View) error {
	u.ack = nil
	return nil
}

func (u *UI) showConfirm(gui *gocui.Gui) error {
	prompt := u.confirm.prompt
	view, err := centeredView(gui, viewConfirm, 50, 7)
	if err != nil {
		return err
	}
	view.Title = prompt.Title
	view.Wrap = true
	view.FrameColor = gocui.ColorYellow
	view.Clear()
	fmt.Fprintf(view, "\n %s\n\n [y] %s    [n] %s", prompt.Text, prompt.ConfirmLabel, prompt.CancelLabel)
	return nil
}

func (u *UI) showAck(gui *gocui.Gui) error {
	view, err := centeredView(gui, viewAck, 46, 6)
	if err != nil {
		return err
	}
	view.Title = u.ack.Title
	view.Wrap = true
	if u.ack.Kind == board.AckSuccess {
		view.FrameColor = gocui.ColorGreen
	} else {
		view.FrameColor = gocui.ColorRed
	}
	view.Clear()
	fmt.Fprintf(view, "\n %s\n\n [enter] OK", u.ack.Text)
	return nil
}

func centeredView(gui *gocui.Gui, name string, width, height int) (*gocui.View, error) {
	maxX, maxY := gui.Size()
	width = max(width, maxX/3)
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(name, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return nil, err
	}
	_, _ = gui.SetViewOnTop(name)
	return view, nil
}

type dragState struct {
	taskID string
	title  string
	from   int
}

func (u *UI) cardAt(column, row int) (model.Task, bool) {
	if column < 0 || column >= len(u.columns) {
		return model.Task{}, false
	}
	tasks := u.columns[column].Tasks
	if row < 0 || row >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[row], true
}

func (u *UI) pickUp(column int, task model.Task) {
	u.drag = &dragState{taskID: task.ID, title: task.Title, from: column}
	u.status = carryStatus(task.Title)
}

func carryStatus(title string) string {
	return fmt.Sprintf("moving %q: click a column to drop it, esc to put it back", title)
}

// endDrag drops the card in hand on column, or outside every column when
// column is -1. Dropping on the card's own column puts it back.
func (u *UI) endDrag(column int) {
	drag := u.drag
	u.drag = nil
	if drag == nil {
		return
	}
	u.status = ""
	if u.board == nil || column == drag.from {
		return
	}

	event := board.DropEvent{TaskID: drag.taskID}
	if column >= 0 && column < len(model.Categories) {
		destination := model.Categories[column]
		event.Destination = &destination
	}
	if u.board.Drop(u.ctx, event) {
		u.sync()
		u.selectTask(drag.taskID)
	}
}

func (u *UI) showLogin(_ *gocui.Gui, _ *gocui.View) error {
	u.navigate(screenLogin)
	return nil
}

func (u *UI) showRegister(_ *gocui.Gui, _ *gocui.View) error {
	u.navigate(screenRegister)
	return nil
}

func (u *UI) showBoard(_ *gocui.Gui, _ *gocui.View) error {
	u.navigate(screenBoard)
	return nil
}

func (u *UI) submitLogin(_ *gocui.Gui, view *gocui.View) error {
	if view == nil {
		return nil
	}
	u.submitToken(view.Buffer())
	return nil
}

// submitToken accepts a token from the login screen and opens the board.
func (u *UI) submitToken(token string) {
	token = strings.TrimSpace(token)
	gate := u.opts.Gate
	gate.Required = true
	if err := gate.Check(token); err != nil {
		u.status = err.Error()
		return
	}

	if u.opts.SaveToken != nil {
		if err := u.opts.SaveToken(token); err != nil {
			u.log.Warn("save token", zap.Error(err))
		}
	}
	if token != u.token {
		u.token = token
		u.board = nil
	}
	u.status = ""
	u.openBoard()
}

func (u *UI) layoutLogin(gui *gocui.Gui) error {
	keepViews(gui, viewLogin, viewFooter)

	view, err := centeredView(gui, viewLogin, 60, 2)
	if err != nil {
		return err
	}
	view.Title = "Login: paste your access token"
	view.Editable = true
	view.Editor = gocui.DefaultEditor
	view.Wrap = false

	if err := u.screenFooter(gui, "enter sign in | tab register | esc quit"); err != nil {
		return err
	}
	setCurrent(gui, viewLogin)
	gui.Cursor = true
	return nil
}

func (u *UI) layoutRegister(gui *gocui.Gui) error {
	keepViews(gui, viewRegister, viewFooter)

	view, err := centeredView(gui, viewRegister, 60, 6)
	if err != nil {
		return err
	}
	view.Title = "Register"
	view.Wrap = true
	view.Clear()
	target := u.opts.RegisterURL
	if target == "" {
		target = u.opts.BaseURL
	}
	fmt.Fprintf(view, "\n Create an account at:\n  %s\n\n Then paste your token on the login screen.", target)

	if err := u.screenFooter(gui, "enter/esc back to login"); err != nil {
		return err
	}
	setCurrent(gui, viewRegister)
	gui.Cursor = false
	return nil
}

func (u *UI) layoutError(gui *gocui.Gui) error {
	keepViews(gui, viewError, viewFooter)

	view, err := centeredView(gui, viewError, 50, 5)
	if err != nil {
		return err
	}
	view.Title = "Error"
	view.FrameColor = gocui.ColorRed
	view.Wrap = true
	view.Clear()
	fmt.Fprintf(view, "\n No such screen: %q\n", u.missing)

	if err := u.screenFooter(gui, "enter go to the board | esc quit"); err != nil {
		return err
	}
	setCurrent(gui, viewError)
	gui.Cursor = false
	return nil
}

func (u *UI) screenFooter(gui *gocui.Gui, keys string) error {
	maxX, maxY := gui.Size()
	footerY1 := max(maxY-2, 1)
	view, err := gui.SetView(viewFooter, 0, max(footerY1-2, 0), maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	view.Frame = false
	view.Wrap = true
	view.FgColor = gocui.ColorDefault | gocui.AttrDim
	view.Clear()
	fmt.Fprintln(view, keys)
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
	return nil
}
