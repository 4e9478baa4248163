package commands

import (
	"errors"

	"robowash/internal/pkg/guard"
)

var ErrCancelRequestCommandIsNotConstructed = errors.New(
	"CancelRequestCommand must be created via NewCancelRequestCommand constructor",
)

// CancelRequestCommand represents a plain cancellation, refused once the
// laundry has entered the wash.
type CancelRequestCommand struct { //nolint:recvcheck //using for validation
	requestID int64
	actor     string

	guard guard.ConstructorGuard
}

// NewCancelRequestCommand creates a command to cancel a request.
func NewCancelRequestCommand(requestID int64, actor string) (CancelRequestCommand, error) {
	cmd := CancelRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActor(actor),
	); err != nil {
		return CancelRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to cancel.
func (c CancelRequestCommand) RequestID() int64 {
	return c.requestID
}

// Actor returns the identity requesting the cancellation.
func (c CancelRequestCommand) Actor() string {
	return c.actor
}

func (c *CancelRequestCommand) setRequestID(requestID int64) error {
	if requestID <= 0 {
		return ErrRequestIDIsInvalid
	}

	c.requestID = requestID
	return nil
}

func (c *CancelRequestCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
