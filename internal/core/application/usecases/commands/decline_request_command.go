package commands

import (
	"errors"

	"robowash/internal/pkg/guard"
)

var (
	ErrDeclineRequestCommandIsNotConstructed = errors.New(
		"DeclineRequestCommand must be created via NewDeclineRequestCommand constructor",
	)
	ErrDeclineReasonIsRequired = errors.New("decline reason is required")
)

// DeclineRequestCommand represents an admin rejecting a pending request.
// The reason is mandatory and surfaces to the customer.
type DeclineRequestCommand struct { //nolint:recvcheck //using for validation
	requestID int64
	reason    string
	actor     string

	guard guard.ConstructorGuard
}

// NewDeclineRequestCommand creates a command to decline a pending request.
func NewDeclineRequestCommand(requestID int64, reason, actor string) (DeclineRequestCommand, error) {
	cmd := DeclineRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setReason(reason),
		cmd.setActor(actor),
	); err != nil {
		return DeclineRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineRequestCommand) Validate() error {
	return c.guard.Validate(ErrDeclineRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to decline.
func (c DeclineRequestCommand) RequestID() int64 {
	return c.requestID
}

// Reason returns the decline reason shown to the customer.
func (c DeclineRequestCommand) Reason() string {
	return c.reason
}

// Actor returns the admin identity performing the decline.
func (c DeclineRequestCommand) Actor() string {
	return c.actor
}

func (c *DeclineRequestCommand) setRequestID(requestID int64) error {
	if requestID <= 0 {
		return ErrRequestIDIsInvalid
	}

	c.requestID = requestID
	return nil
}

func (c *DeclineRequestCommand) setReason(reason string) error {
	if reason == "" {
		return ErrDeclineReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *DeclineRequestCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
