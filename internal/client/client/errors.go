package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hackinpovo/inventory/internal/common"
)

// ErrUnauthorized matches any RequestError caused by a 401 response, which
// is how a stale persisted token first shows up.
var ErrUnauthorized = common.ErrUnauthorized

// RequestError is returned for every failed API call. Status is 0 when the
// request never produced a response (transport failure); the message is then
// the operation's fallback, same as for a non-2xx response without a body.
type RequestError struct {
	Op      string
	Status  int
	Message string
	cause   error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

func (e *RequestError) Unwrap() error { return e.cause }

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *RequestError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsRequestError reports whether err came from the API client.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
