package commands

import (
	"errors"

	"robowash/internal/pkg/guard"
)

var (
	ErrAcceptRequestCommandIsNotConstructed = errors.New(
		"AcceptRequestCommand must be created via NewAcceptRequestCommand constructor",
	)
	ErrRequestIDIsInvalid = errors.New("request id must be greater than 0")
	ErrActorIsRequired    = errors.New("actor is required")
)

// AcceptRequestCommand represents an admin accepting a pending request,
// which triggers robot dispatch.
type AcceptRequestCommand struct { //nolint:recvcheck //using for validation
	requestID int64
	actor     string

	guard guard.ConstructorGuard
}

// NewAcceptRequestCommand creates a command to accept a pending request.
// The actor is the admin identity recorded in the audit trail.
func NewAcceptRequestCommand(requestID int64, actor string) (AcceptRequestCommand, error) {
	cmd := AcceptRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActor(actor),
	); err != nil {
		return AcceptRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptRequestCommand) Validate() error {
	return c.guard.Validate(ErrAcceptRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to accept.
func (c AcceptRequestCommand) RequestID() int64 {
	return c.requestID
}

// Actor returns the admin identity performing the acceptance.
func (c AcceptRequestCommand) Actor() string {
	return c.actor
}

func (c *AcceptRequestCommand) setRequestID(requestID int64) error {
	if requestID <= 0 {
		return ErrRequestIDIsInvalid
	}

	c.requestID = requestID
	return nil
}

func (c *AcceptRequestCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
