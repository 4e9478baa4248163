package commands

import (
	"errors"

	"robowash/internal/pkg/guard"
)

var (
	ErrReassignOfflineCommandIsNotConstructed = errors.New(
		"ReassignOfflineRequestsCommand must be created via NewReassignOfflineRequestsCommand constructor",
	)
	ErrRobotNameIsRequired = errors.New("robot name is required")
)

// ReassignOfflineRequestsCommand represents the compensating demotion applied
// when a robot goes offline while holding a request: the request returns to
// the dispatch queue.
type ReassignOfflineRequestsCommand struct { //nolint:recvcheck //using for validation
	robotName string
	actor     string

	guard guard.ConstructorGuard
}

// NewReassignOfflineRequestsCommand creates a command to demote the offline
// robot's active request back to Pending.
func NewReassignOfflineRequestsCommand(robotName, actor string) (ReassignOfflineRequestsCommand, error) {
	cmd := ReassignOfflineRequestsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRobotName(robotName),
		cmd.setActor(actor),
	); err != nil {
		return ReassignOfflineRequestsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignOfflineRequestsCommand) Validate() error {
	return c.guard.Validate(ErrReassignOfflineCommandIsNotConstructed)
}

// RobotName returns the offline robot whose request is demoted.
func (c ReassignOfflineRequestsCommand) RobotName() string {
	return c.robotName
}

// Actor returns the identity recorded against the demotion.
func (c ReassignOfflineRequestsCommand) Actor() string {
	return c.actor
}

func (c *ReassignOfflineRequestsCommand) setRobotName(robotName string) error {
	if robotName == "" {
		return ErrRobotNameIsRequired
	}

	c.robotName = robotName
	return nil
}

func (c *ReassignOfflineRequestsCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
