package commands

import (
	"errors"

	"robowash/internal/pkg/guard"
)

var ErrForceCancelCommandIsNotConstructed = errors.New(
	"ForceCancelCommand must be created via NewForceCancelCommand constructor",
)

// ForceCancelCommand represents the administrative override that cancels a
// request from any non-terminal status, bypassing the transition table.
type ForceCancelCommand struct { //nolint:recvcheck //using for validation
	requestID int64
	actor     string

	guard guard.ConstructorGuard
}

// NewForceCancelCommand creates a command for an administrative cancellation.
func NewForceCancelCommand(requestID int64, actor string) (ForceCancelCommand, error) {
	cmd := ForceCancelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActor(actor),
	); err != nil {
		return ForceCancelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ForceCancelCommand) Validate() error {
	return c.guard.Validate(ErrForceCancelCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to force-cancel.
func (c ForceCancelCommand) RequestID() int64 {
	return c.requestID
}

// Actor returns the admin identity recorded against the override.
func (c ForceCancelCommand) Actor() string {
	return c.actor
}

func (c *ForceCancelCommand) setRequestID(requestID int64) error {
	if requestID <= 0 {
		return ErrRequestIDIsInvalid
	}

	c.requestID = requestID
	return nil
}

func (c *ForceCancelCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
