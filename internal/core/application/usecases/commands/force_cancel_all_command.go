package commands

import (
	"errors"

	"robowash/internal/pkg/guard"
)

var ErrForceCancelAllCommandIsNotConstructed = errors.New(
	"ForceCancelAllCommand must be created via NewForceCancelAllCommand constructor",
)

// ForceCancelAllCommand represents the bulk administrative override that
// cancels every non-terminal request. Used when the facility shuts down.
type ForceCancelAllCommand struct { //nolint:recvcheck //using for validation
	actor string

	guard guard.ConstructorGuard
}

// NewForceCancelAllCommand creates a command for the bulk cancellation.
func NewForceCancelAllCommand(actor string) (ForceCancelAllCommand, error) {
	cmd := ForceCancelAllCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setActor(actor); err != nil {
		return ForceCancelAllCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ForceCancelAllCommand) Validate() error {
	return c.guard.Validate(ErrForceCancelAllCommandIsNotConstructed)
}

// Actor returns the admin identity recorded against every cancellation.
func (c ForceCancelAllCommand) Actor() string {
	return c.actor
}

func (c *ForceCancelAllCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
