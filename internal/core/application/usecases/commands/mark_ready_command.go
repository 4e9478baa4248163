package commands

import (
	"errors"

	"robowash/internal/pkg/guard"
)

var ErrMarkReadyCommandIsNotConstructed = errors.New(
	"MarkReadyForDeliveryCommand must be created via NewMarkReadyForDeliveryCommand constructor",
)

// MarkReadyForDeliveryCommand represents the admin releasing washed laundry
// for the delivery leg.
type MarkReadyForDeliveryCommand struct { //nolint:recvcheck //using for validation
	requestID int64
	actor     string

	guard guard.ConstructorGuard
}

// NewMarkReadyForDeliveryCommand creates a command to release clean laundry.
func NewMarkReadyForDeliveryCommand(requestID int64, actor string) (MarkReadyForDeliveryCommand, error) {
	cmd := MarkReadyForDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActor(actor),
	); err != nil {
		return MarkReadyForDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyForDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to release.
func (c MarkReadyForDeliveryCommand) RequestID() int64 {
	return c.requestID
}

// Actor returns the admin identity performing the release.
func (c MarkReadyForDeliveryCommand) Actor() string {
	return c.actor
}

func (c *MarkReadyForDeliveryCommand) setRequestID(requestID int64) error {
	if requestID <= 0 {
		return ErrRequestIDIsInvalid
	}

	c.requestID = requestID
	return nil
}

func (c *MarkReadyForDeliveryCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
