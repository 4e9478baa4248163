package commands

import (
	"errors"

	"robowash/internal/pkg/guard"
)

var ErrCompleteRequestCommandIsNotConstructed = errors.New(
	"CompleteRequestCommand must be created via NewCompleteRequestCommand constructor",
)

// CompleteRequestCommand represents the final confirmation that the laundry
// has been handed back and the lifecycle is done.
type CompleteRequestCommand struct { //nolint:recvcheck //using for validation
	requestID int64
	actor     string

	guard guard.ConstructorGuard
}

// NewCompleteRequestCommand creates a command to complete a request.
func NewCompleteRequestCommand(requestID int64, actor string) (CompleteRequestCommand, error) {
	cmd := CompleteRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActor(actor),
	); err != nil {
		return CompleteRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteRequestCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to complete.
func (c CompleteRequestCommand) RequestID() int64 {
	return c.requestID
}

// Actor returns the identity confirming completion.
func (c CompleteRequestCommand) Actor() string {
	return c.actor
}

func (c *CompleteRequestCommand) setRequestID(requestID int64) error {
	if requestID <= 0 {
		return ErrRequestIDIsInvalid
	}

	c.requestID = requestID
	return nil
}

func (c *CompleteRequestCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
