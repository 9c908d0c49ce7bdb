package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Joseda-hg/lazyboard/internal/board"
	"github.com/Joseda-hg/lazyboard/internal/logger"
	"github.com/Joseda-hg/lazyboard/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the board columns",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

var rmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a task after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var moveCmd = &cobra.Command{
	Use:   "move ID CATEGORY",
	Short: "Move a task to another column (todo, doing, done)",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

var (
	listJSON bool

	addTitle       string
	addDescription string
	addTimestamp   string
	addCategory    string

	rmYes bool
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the columns as JSON")

	addCmd.Flags().StringVar(&addTitle, "title", "", "task title")
	addCmd.Flags().StringVar(&addDescription, "description", "", "task description")
	addCmd.Flags().StringVar(&addTimestamp, "timestamp", "", "local date and time, YYYY-MM-DDTHH:MM (default now)")
	addCmd.Flags().StringVar(&addCategory, "category", string(model.CategoryToDo), "To-Do, In Progress or Done")

	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(listCmd, addCmd, rmCmd, moveCmd)
}

// openBoard builds a board for one command and loads the current tasks.
func openBoard(cmd *cobra.Command, confirm board.Confirmer) (*board.Board, error) {
	if err := gate().Check(cfg.Token); err != nil {
		return nil, fmt.Errorf("%w: run lazyboard login TOKEN", err)
	}
	out := cmd.OutOrStdout()
	b := board.New(board.Options{
		API:       connect(cfg.Token),
		Confirmer: confirm,
		Notifier: board.NotifyFunc(func(ack board.Ack) {
			fmt.Fprintf(out, "%s %s\n", ack.Title, ack.Text)
		}),
		Logger: logger.L(),
	})
	if err := b.Refresh(cmd.Context()); err != nil {
		return nil, err
	}
	return b, nil
}

func runList(cmd *cobra.Command, args []string) error {
	b, err := openBoard(cmd, nil)
	if err != nil {
		return err
	}
	columns := b.Columns()
	out := cmd.OutOrStdout()

	if listJSON {
		payload := make(map[model.Category][]model.Task, len(columns))
		for _, column := range columns {
			payload[column.Category] = column.Tasks
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	for _, column := range columns {
		fmt.Fprintf(out, "%s (%d)\n", column.Category, len(column.Tasks))
		for _, task := range column.Tasks {
			fmt.Fprintf(out, "  %s  %s | %s\n", task.ID, task.Title, task.Timestamp.Display())
		}
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	category, err := model.ParseCategory(addCategory)
	if err != nil {
		return err
	}
	timestamp := model.Timestamp(addTimestamp)
	if strings.TrimSpace(addTimestamp) == "" {
		timestamp = model.NewTimestamp(time.Now())
	}

	b, err := openBoard(cmd, nil)
	if err != nil {
		return err
	}
	b.SetForm(board.TaskForm{
		Title:       addTitle,
		Description: addDescription,
		Timestamp:   timestamp,
		Category:    category,
	})
	if err := b.Create(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", strings.TrimSpace(addTitle), category)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	var confirm board.Confirmer = promptConfirmer{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
	if rmYes {
		confirm = board.ConfirmFunc(func(ctx context.Context, prompt board.Prompt) (bool, error) {
			return true, nil
		})
	}

	b, err := openBoard(cmd, confirm)
	if err != nil {
		return err
	}
	if _, ok := b.Store().Find(args[0]); !ok {
		return fmt.Errorf("delete %s: %w", args[0], board.ErrTaskNotFound)
	}
	deleted, err := b.Delete(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
	}
	return nil
}

func runMove(cmd *cobra.Command, args []string) error {
	id := args[0]
	category, err := model.ParseCategory(args[1])
	if err != nil {
		return err
	}

	b, err := openBoard(cmd, nil)
	if err != nil {
		return err
	}
	if !b.Drop(cmd.Context(), board.DropEvent{TaskID: id, Destination: &category}) {
		return fmt.Errorf("move %s: %w", id, board.ErrTaskNotFound)
	}
	b.Wait()

	// The drop only logs a failed persist, so read the server's view back.
	if err := b.Refresh(cmd.Context()); err != nil {
		return err
	}
	if task, ok := b.Store().Find(id); !ok || task.Category != category {
		return fmt.Errorf("move %s: the server did not keep the move, see %s", id, cfg.LogPath)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", id, category)
	return nil
}

type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(ctx context.Context, prompt board.Prompt) (bool, error) {
	fmt.Fprintf(p.out, "%s %s %s [y/N] ", prompt.Title, prompt.Text, prompt.ConfirmLabel)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
