package commands

import (
	"errors"

	"robowash/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand represents the admin sending clean laundry back to the
// customer's room. Dispatch picks the delivery robot.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	requestID int64
	actor     string

	guard guard.ConstructorGuard
}

// NewStartDeliveryCommand creates a command to start the delivery leg.
func NewStartDeliveryCommand(requestID int64, actor string) (StartDeliveryCommand, error) {
	cmd := StartDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActor(actor),
	); err != nil {
		return StartDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to deliver.
func (c StartDeliveryCommand) RequestID() int64 {
	return c.requestID
}

// Actor returns the admin identity starting the delivery.
func (c StartDeliveryCommand) Actor() string {
	return c.actor
}

func (c *StartDeliveryCommand) setRequestID(requestID int64) error {
	if requestID <= 0 {
		return ErrRequestIDIsInvalid
	}

	c.requestID = requestID
	return nil
}

func (c *StartDeliveryCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
