package services

import (
	"errors"

	"github.com/hackinpovo/inventory/internal/client/client"
	"github.com/hackinpovo/inventory/internal/common"
)

// Notification is a transient message shown to the user after an action.
type Notification struct {
	Title       string
	Description string
	Destructive bool
}

// Notifier receives notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}

// failure builds the destructive notification for err.
func failure(title string, err error) Notification {
	return Notification{Title: title, Description: describe(err), Destructive: true}
}

func describe(err error) string {
	var (
		ve *common.ValidationError
		re *client.RequestError
		ae *AuthError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Detail()
	case errors.As(err, &ae):
		return ae.Message
	case errors.As(err, &re):
		return re.Message
	case errors.Is(err, ErrBusy):
		return "please wait for the previous request to finish"
	case errors.Is(err, common.ErrNotFound):
		return "the item no longer exists"
	default:
		return err.Error()
	}
}
