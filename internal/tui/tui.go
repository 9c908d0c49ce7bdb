package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Joseda-hg/lazyboard/internal/auth"
	"github.com/Joseda-hg/lazyboard/internal/board"
	"github.com/Joseda-hg/lazyboard/internal/model"
	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
	"go.uber.org/zap"
)

const (
	viewHeader   = "header"
	viewFooter   = "footer"
	viewTodo     = "todo"
	viewProgress = "progress"
	viewDone     = "done"
	viewDetail   = "detail"
	viewForm     = "form"
	viewConfirm  = "confirm"
	viewAck      = "ack"
	viewHelp     = "help"
	viewLogin    = "login"
	viewRegister = "register"
	viewError    = "error"
)

const (
	screenBoard    = "board"
	screenLogin    = "login"
	screenRegister = "register"
	screenError    = "error"
)

// columnViews holds one view per model.Categories entry, in the same order.
var columnViews = []string{viewTodo, viewProgress, viewDone}

type Options struct {
	// Connect returns the task API to use with the given token.
	Connect     func(token string) board.API
	Token       string
	Gate        auth.Gate
	BaseURL     string
	RegisterURL string
	// SaveToken persists a token accepted on the login screen.
	SaveToken func(token string) error
	// Screen is shown first; empty means the board.
	Screen string
	Logger *zap.Logger
}

type UI struct {
	gui   *gocui.Gui
	ctx   context.Context
	opts  Options
	log   *zap.Logger
	board *board.Board

	screen  string
	missing string
	token   string

	columns  board.Columns
	focus    int
	selected []int

	form       *formState
	formEditor *formEditor
	confirm    *confirmState
	ack        *board.Ack
	drag       *dragState
	pressed    *dragState
	deleting   bool
	helpActive bool
	loading    bool
	status     string
}

type formEditor struct {
	ui *UI
}

func Run(ctx context.Context, opts Options) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := newUI(ctx, opts)
	ui.gui = gui
	gui.Mouse = true

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}
	ui.navigate(opts.Screen)

	go func() {
		<-ctx.Done()
		gui.Update(func(*gocui.Gui) error {
			return gocui.ErrQuit
		})
	}()

	err = gui.MainLoop()
	if ui.board != nil {
		ui.board.Wait()
	}
	if err != nil && !goerrors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

func newUI(ctx context.Context, opts Options) *UI {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ui := &UI{
		ctx:      ctx,
		opts:     opts,
		log:      log,
		token:    opts.Token,
		screen:   screenBoard,
		selected: make([]int, len(model.Categories)),
	}
	ui.formEditor = &formEditor{ui: ui}
	return ui
}

type binding struct {
	view    string
	key     any
	handler func(*gocui.Gui, *gocui.View) error
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	bindings := []binding{
		{"", gocui.KeyCtrlC, u.quit},
		{"", 'q', u.quitIdle},
		{"", 'r', u.refresh},
		{"", 'a', u.addTask},
		{"", 'e', u.editTask},
		{"", 'd', u.deleteTask},
		{"", 'H', u.moveCardLeft},
		{"", '<', u.moveCardLeft},
		{"", 'L', u.moveCardRight},
		{"", '>', u.moveCardRight},
		{"", '?', u.toggleHelp},
		{"", '1', u.focusColumn(0)},
		{"", '2', u.focusColumn(1)},
		{"", '3', u.focusColumn(2)},
		{"", gocui.KeyTab, u.nextColumn},
		{"", gocui.KeyBacktab, u.prevColumn},
		{"", gocui.KeyEsc, u.cancelDrag},

		{viewForm, gocui.KeyEnter, u.submitForm},
		{viewForm, gocui.KeyCtrlJ, u.submitForm},
		{viewForm, gocui.KeyTab, u.nextFormField},
		{viewForm, gocui.KeyBacktab, u.prevFormField},
		{viewForm, gocui.KeyArrowDown, u.nextFormField},
		{viewForm, gocui.KeyArrowUp, u.prevFormField},
		{viewForm, gocui.KeyEsc, u.cancelForm},

		{viewConfirm, 'y', u.confirmYes},
		{viewConfirm, gocui.KeyEnter, u.confirmYes},
		{viewConfirm, 'n', u.confirmNo},
		{viewConfirm, gocui.KeyEsc, u.confirmNo},

		{viewAck, gocui.KeyEnter, u.closeAck},
		{viewAck, gocui.KeyEsc, u.closeAck},

		{viewHelp, gocui.KeyEsc, u.closeHelp},
		{viewHelp, 'q', u.closeHelp},
		{viewHelp, '?', u.closeHelp},

		{viewLogin, gocui.KeyEnter, u.submitLogin},
		{viewLogin, gocui.KeyTab, u.showRegister},
		{viewLogin, gocui.KeyEsc, u.quit},
		{viewRegister, gocui.KeyEnter, u.showLogin},
		{viewRegister, gocui.KeyEsc, u.showLogin},
		{viewRegister, gocui.KeyTab, u.showLogin},
		{viewError, gocui.KeyEnter, u.showBoard},
		{viewError, gocui.KeyEsc, u.quit},
	}

	for _, name := range columnViews {
		bindings = append(bindings,
			binding{name, gocui.KeyArrowDown, u.moveDown},
			binding{name, 'j', u.moveDown},
			binding{name, gocui.KeyArrowUp, u.moveUp},
			binding{name, 'k', u.moveUp},
			binding{name, gocui.KeyArrowRight, u.nextColumn},
			binding{name, 'l', u.nextColumn},
			binding{name, gocui.KeyArrowLeft, u.prevColumn},
			binding{name, 'h', u.prevColumn},
			binding{name, gocui.KeyEnter, u.editTask},
			binding{name, gocui.MouseWheelUp, u.scrollUp},
			binding{name, gocui.MouseWheelDown, u.scrollDown},
		)
	}

	for _, b := range bindings {
		if err := gui.SetKeybinding(b.view, b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}

	// A release never reaches a binding, so a card is dropped by clicking
	// the destination. Moving with the button held picks the card up.
	var mouse []*gocui.ViewMouseBinding
	for index, name := range columnViews {
		column := index
		mouse = append(mouse,
			&gocui.ViewMouseBinding{ViewName: name, Key: gocui.MouseLeft, Handler: func(opts gocui.ViewMouseBindingOpts) error {
				return u.onColumnClick(column, opts)
			}},
			&gocui.ViewMouseBinding{ViewName: name, Key: gocui.MouseLeft, Modifier: gocui.ModMotion, Handler: u.onColumnMotion},
		)
	}
	for _, name := range []string{viewHeader, viewDetail, viewFooter} {
		mouse = append(mouse, &gocui.ViewMouseBinding{ViewName: name, Key: gocui.MouseLeft, Handler: u.onOutsideClick})
	}
	for _, b := range mouse {
		if err := gui.SetViewClickBinding(b); err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	switch u.screen {
	case screenLogin:
		return u.layoutLogin(gui)
	case screenRegister:
		return u.layoutRegister(gui)
	case screenError:
		return u.layoutError(gui)
	default:
		return u.layoutBoard(gui)
	}
}

func (u *UI) layoutBoard(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	keepViews(gui, viewHeader, viewFooter, viewTodo, viewProgress, viewDone, viewDetail, viewForm, viewConfirm, viewAck, viewHelp)

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 0, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	headerView.Wrap = true
	headerView.FgColor = gocui.ColorDefault
	u.renderHeader(headerView)

	footerY1 := max(maxY-2, 1)
	footerY0 := max(footerY1-2, 1)
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	footerView.BgColor = gocui.ColorDefault
	u.renderFooter(footerView)

	bodyTop := 1
	bodyBottom := footerY0 - 1
	if bodyBottom < bodyTop {
		return nil
	}

	layout := computeLayout(maxX, bodyBottom-bodyTop+1, len(columnViews))
	columnsY1 := bodyTop + layout.columnHeight - 1

	for index, name := range columnViews {
		x0 := index * layout.columnWidth
		x1 := x0 + layout.columnWidth - 1
		if index == len(columnViews)-1 {
			x1 = maxX - 1
		}
		view, err := gui.SetView(name, x0, bodyTop, x1, columnsY1, 0)
		if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		focused := u.focus == index
		view.Title = u.columnTitle(index)
		view.TitleColor = columnColor(index)
		applyViewStyle(view, focused, true)
		u.renderColumn(view, index, focused)
	}

	detailView, err := gui.SetView(viewDetail, 0, columnsY1+1, maxX-1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		detailView.Title = "Details"
	}
	applyViewStyle(detailView, false, false)
	detailView.Wrap = true
	u.renderDetail(detailView)

	_, _ = gui.SetViewOnTop(viewHeader)
	_, _ = gui.SetViewOnTop(viewFooter)

	if u.form != nil {
		if err := u.showForm(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewForm)
	}

	if u.helpActive {
		if err := u.showHelp(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewHelp)
	}

	if u.confirm != nil {
		if err := u.showConfirm(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewConfirm)
	}

	if u.ack != nil {
		if err := u.showAck(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewAck)
	}

	setCurrent(gui, u.currentViewName())
	gui.Cursor = u.form != nil
	return nil
}

// currentViewName is the view that should own keyboard input, topmost modal first.
func (u *UI) currentViewName() string {
	switch {
	case u.confirm != nil:
		return viewConfirm
	case u.ack != nil:
		return viewAck
	case u.form != nil:
		return viewForm
	case u.helpActive:
		return viewHelp
	}
	if u.focus >= 0 && u.focus < len(columnViews) {
		return columnViews[u.focus]
	}
	return columnViews[0]
}

type layout struct {
	columnWidth  int
	columnHeight int
}

func computeLayout(width, height, columns int) layout {
	safeWidth := max(width, columns*12)
	safeHeight := max(height, 8)

	detailHeight := int(float64(safeHeight) * 0.3)
	if detailHeight < 4 {
		detailHeight = 4
	}
	if detailHeight > 10 {
		detailHeight = 10
	}
	columnHeight := safeHeight - detailHeight
	if columnHeight < 4 {
		columnHeight = 4
	}

	return layout{
		columnWidth:  safeWidth / columns,
		columnHeight: columnHeight,
	}
}

// navigate switches screens. The board is behind the auth gate; names that
// match no screen land on the error screen.
func (u *UI) navigate(screen string) {
	switch screen {
	case "", screenBoard:
		if err := u.opts.Gate.Check(u.token); err != nil {
			u.status = err.Error()
			u.screen = screenLogin
			return
		}
		u.openBoard()
	case screenLogin, screenRegister:
		u.screen = screen
	default:
		u.missing = screen
		u.screen = screenError
	}
}

func (u *UI) openBoard() {
	u.screen = screenBoard
	if u.board == nil {
		u.board = board.New(board.Options{
			API:       u.opts.Connect(u.token),
			Confirmer: u,
			Notifier:  u,
			Logger:    u.log,
			OnChange:  u.changed,
		})
	}
	u.loading = true
	u.run(u.board.Refresh, func() {
		u.status = ""
	})
}

// run calls fn away from the UI goroutine and reports a failure in the
// status line. done runs on the UI goroutine after a success.
func (u *UI) run(fn func(ctx context.Context) error, done func()) {
	work := func() {
		err := fn(u.ctx)
		u.update(func() {
			u.loading = false
			if err != nil {
				u.status = err.Error()
				return
			}
			if done != nil {
				done()
			}
		})
	}
	if u.gui == nil {
		work()
		return
	}
	go work()
}

// update runs fn on the UI goroutine and redraws.
func (u *UI) update(fn func()) {
	if u.gui == nil {
		fn()
		return
	}
	u.gui.Update(func(*gocui.Gui) error {
		fn()
		return nil
	})
}

func (u *UI) changed() {
	u.update(u.sync)
}

// sync copies the board projection into the UI and keeps selections in range.
func (u *UI) sync() {
	if u.board == nil {
		return
	}
	u.columns = u.board.Columns()
	for index := range u.selected {
		count := 0
		if index < len(u.columns) {
			count = len(u.columns[index].Tasks)
		}
		u.selected[index] = max(min(u.selected[index], count-1), 0)
	}
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	total := 0
	for _, column := range u.columns {
		total += len(column.Tasks)
	}
	state := ""
	if u.loading {
		state = " | loading..."
	}
	fmt.Fprintf(view, "lazyboard | %s | %d tasks%s", u.opts.BaseURL, total, state)
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	view.SetOrigin(0, 0)
	view.SetCursor(0, 0)

	fmt.Fprintln(view, "a add | e/enter edit | d delete | H/L or </> move card | click a selected card to pick it up")
	fmt.Fprintln(view, "tab/h/l columns | j/k select | 1-3 column | r refresh | ? help | q quit")
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
}

func (u *UI) columnTitle(index int) string {
	category := model.Categories[index]
	count := 0
	if index < len(u.columns) {
		count = len(u.columns[index].Tasks)
	}
	return fmt.Sprintf("%d %s (%d)", index+1, category, count)
}

func (u *UI) renderColumn(view *gocui.View, index int, focused bool) {
	view.Clear()
	if index >= len(u.columns) {
		return
	}
	tasks := u.columns[index].Tasks
	for row, task := range tasks {
		prefix := " "
		if row == u.selected[index] {
			if focused {
				prefix = ">"
			} else {
				prefix = "*"
			}
		}
		if u.drag != nil && u.drag.taskID == task.ID {
			prefix = "~"
		}
		fmt.Fprintf(view, "%s %s\n", prefix, formatCard(task))
	}
	if focused {
		view.SetCursor(0, min(u.selected[index], len(tasks)-1))
	}
}

func (u *UI) renderDetail(view *gocui.View) {
	view.Clear()
	task, ok := u.selectedTask()
	if !ok {
		fmt.Fprint(view, "No task selected")
		return
	}
	fmt.Fprint(view, strings.Join(detailLines(task), "\n"))
}

func (u *UI) selectedTask() (model.Task, bool) {
	if u.focus < 0 || u.focus >= len(u.columns) {
		return model.Task{}, false
	}
	tasks := u.columns[u.focus].Tasks
	index := u.selected[u.focus]
	if index < 0 || index >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[index], true
}

// selectTask focuses the card with the given id wherever it is on the board.
func (u *UI) selectTask(id string) {
	for index, column := range u.columns {
		for row, task := range column.Tasks {
			if task.ID == id {
				u.focus = index
				u.selected[index] = row
				return
			}
		}
	}
}

func (u *UI) focusColumn(index int) func(*gocui.Gui, *gocui.View) error {
	return func(_ *gocui.Gui, _ *gocui.View) error {
		if u.inputActive() {
			return nil
		}
		u.focus = index
		return nil
	}
}

func (u *UI) nextColumn(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.focus = (u.focus + 1) % len(columnViews)
	return nil
}

func (u *UI) prevColumn(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.focus = (u.focus - 1 + len(columnViews)) % len(columnViews)
	return nil
}

func (u *UI) moveDown(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.focus >= len(u.columns) {
		return nil
	}
	if u.selected[u.focus] < len(u.columns[u.focus].Tasks)-1 {
		u.selected[u.focus]++
	}
	return nil
}

func (u *UI) moveUp(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.selected[u.focus] > 0 {
		u.selected[u.focus]--
	}
	return nil
}

func (u *UI) scrollUp(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if view == nil {
		view = gui.CurrentView()
	}
	if view == nil {
		return nil
	}
	view.ScrollUp(1)
	return nil
}

func (u *UI) scrollDown(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if view == nil {
		view = gui.CurrentView()
	}
	if view == nil {
		return nil
	}
	view.ScrollDown(1)
	return nil
}

func (u *UI) refresh(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.board == nil {
		return nil
	}
	u.loading = true
	u.run(u.board.Refresh, func() {
		u.status = ""
	})
	return nil
}

func (u *UI) moveCardLeft(_ *gocui.Gui, _ *gocui.View) error {
	u.moveCard(-1)
	return nil
}

func (u *UI) moveCardRight(_ *gocui.Gui, _ *gocui.View) error {
	u.moveCard(1)
	return nil
}

// moveCard drops the selected card onto the neighbouring column.
func (u *UI) moveCard(delta int) {
	if u.inputActive() || u.board == nil {
		return
	}
	task, ok := u.selectedTask()
	if !ok {
		return
	}
	destination := task.Category.Shift(delta)
	if destination == task.Category {
		return
	}
	if u.board.Drop(u.ctx, board.DropEvent{TaskID: task.ID, Destination: &destination}) {
		u.sync()
		u.selectTask(task.ID)
	}
}

// onColumnClick handles a plain left click in a column. With no card in hand
// it selects the clicked card, or picks it up when it was already selected.
// With a card in hand it drops the card on the clicked column.
func (u *UI) onColumnClick(column int, opts gocui.ViewMouseBindingOpts) error {
	if u.inputActive() {
		return nil
	}
	u.pressed = nil
	if u.drag != nil {
		u.endDrag(column)
		return nil
	}
	if column < 0 || column >= len(u.columns) {
		return nil
	}

	selected := u.focus == column && u.selected[column] == opts.Y
	u.focus = column
	task, ok := u.cardAt(column, opts.Y)
	if !ok {
		return nil
	}
	if selected {
		u.pickUp(column, task)
		return nil
	}
	u.selected[column] = opts.Y
	u.pressed = &dragState{taskID: task.ID, title: task.Title, from: column}
	return nil
}

// onColumnMotion runs while the left button is held down and moving.
func (u *UI) onColumnMotion(_ gocui.ViewMouseBindingOpts) error {
	if u.inputActive() || u.drag != nil || u.pressed == nil {
		return nil
	}
	u.drag = u.pressed
	u.pressed = nil
	u.status = carryStatus(u.drag.title)
	return nil
}

func (u *UI) onOutsideClick(_ gocui.ViewMouseBindingOpts) error {
	if u.inputActive() {
		return nil
	}
	u.pressed = nil
	u.endDrag(-1)
	return nil
}

func (u *UI) cancelDrag(_ *gocui.Gui, _ *gocui.View) error {
	if u.drag == nil {
		return nil
	}
	u.drag = nil
	u.status = ""
	return nil
}

func (u *UI) addTask(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.board == nil {
		return nil
	}
	u.form = newCreateForm(u.board.Form())
	return nil
}

func (u *UI) editTask(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.board == nil {
		return nil
	}
	selected, ok := u.selectedTask()
	if !ok {
		return nil
	}
	if err := u.board.OpenEdit(selected.ID); err != nil {
		u.status = err.Error()
		return nil
	}
	target, ok := u.board.EditTarget()
	if !ok {
		return nil
	}
	u.form = newEditForm(target)
	return nil
}

func (u *UI) deleteTask(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.board == nil {
		return nil
	}
	selected, ok := u.selectedTask()
	if !ok {
		return nil
	}
	// The modal shows up asynchronously; until the delete finishes another
	// press must not start a second confirmation.
	if u.deleting {
		return nil
	}
	u.deleting = true
	id := selected.ID
	u.run(func(ctx context.Context) error {
		defer u.update(func() {
			u.deleting = false
		})
		_, err := u.board.Delete(ctx, id)
		return err
	}, nil)
	return nil
}

func (u *UI) toggleHelp(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() && !u.helpActive {
		return nil
	}
	u.helpActive = !u.helpActive
	return nil
}

func (u *UI) closeHelp(_ *gocui.Gui, _ *gocui.View) error {
	u.helpActive = false
	return nil
}

func (u *UI) showHelp(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := 19
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewHelp, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Help"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, helpText())
	_, _ = gui.SetViewOnTop(viewHelp)
	return nil
}

// inputActive reports whether a modal or a non-board screen owns the keyboard.
func (u *UI) inputActive() bool {
	return u.screen != screenBoard || u.form != nil || u.confirm != nil || u.ack != nil || u.helpActive
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}

func (u *UI) quitIdle(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	return u.quit(gui, view)
}

func helpText() string {
	return strings.Join([]string{
		"Navigation:",
		"  tab / h l / arrows switch column | 1 To-Do | 2 In Progress | 3 Done",
		"  j/k or arrows move selection",
		"  mouse wheel scrolls hovered column",
		"",
		"Cards:",
		"  a add task | e or enter edit task | d delete task",
		"  H or < move card left | L or > move card right",
		"  click a selected card (or drag it) to pick it up, then click a column to drop it",
		"  esc puts a picked up card back",
		"",
		"Form:",
		"  tab/arrows field | space/left/right cycle category",
		"  ctrl-n fill timestamp with now | ctrl-u clear field",
		"  enter save | esc cancel",
		"",
		"Other:",
		"  r refresh | ? help | esc/q close help | q quit",
	}, "\n")
}

func applyViewStyle(view *gocui.View, focused bool, highlight bool) {
	view.Frame = true
	view.Highlight = focused && highlight
	view.HighlightInactive = false
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	view.InactiveViewSelBgColor = gocui.ColorDefault
	if focused {
		view.FrameColor = gocui.ColorCyan
		view.TitleColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
	}
}

func columnColor(index int) gocui.Attribute {
	switch index {
	case 0:
		return gocui.ColorRed
	case 1:
		return gocui.ColorYellow
	default:
		return gocui.ColorGreen
	}
}

// keepViews deletes every view not named in keep.
func keepViews(gui *gocui.Gui, keep ...string) {
	wanted := make(map[string]bool, len(keep))
	for _, name := range keep {
		wanted[name] = true
	}
	var stale []string
	for _, view := range gui.Views() {
		if !wanted[view.Name()] {
			stale = append(stale, view.Name())
		}
	}
	for _, name := range stale {
		_ = gui.DeleteView(name)
	}
}

func setCurrent(gui *gocui.Gui, name string) {
	if current := gui.CurrentView(); current != nil && current.Name() == name {
		return
	}
	_, _ = gui.SetCurrentView(name)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
