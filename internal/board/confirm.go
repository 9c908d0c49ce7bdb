package board

import "context"

// Prompt is a yes/no question put to the user before a destructive action.
type Prompt struct {
	Title        string
	Text         string
	ConfirmLabel string
	CancelLabel  string
}

// Confirmer suspends the caller until the user answers. A false answer
// with a nil error means the user declined.
type Confirmer interface {
	Confirm(ctx context.Context, prompt Prompt) (bool, error)
}

type AckKind int

const (
	AckSuccess AckKind = iota
	AckFailure
)

// Ack is an acknowledgment shown to the user after a delete.
type Ack struct {
	Kind  AckKind
	Title string
	Text  string
}

type Notifier interface {
	Notify(ack Ack)
}

var (
	DeletePrompt = Prompt{
		Title:        "Are you sure?",
		Text:         "You won't be able to revert this!",
		ConfirmLabel: "Yes, delete it!",
		CancelLabel:  "Cancel",
	}

	AckDeleted      = Ack{Kind: AckSuccess, Title: "Deleted!", Text: "The task has been deleted."}
	AckDeleteFailed = Ack{Kind: AckFailure, Title: "Error!", Text: "There was an error deleting the task."}
	AckUnexpected   = Ack{Kind: AckFailure, Title: "Error!", Text: "An unexpected error occurred."}
)

type ConfirmFunc func(ctx context.Context, prompt Prompt) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt Prompt) (bool, error) {
	return f(ctx, prompt)
}

type NotifyFunc func(ack Ack)

func (f NotifyFunc) Notify(ack Ack) {
	f(ack)
}
