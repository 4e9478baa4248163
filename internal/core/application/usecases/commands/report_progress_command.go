package commands

import (
	"errors"

	"robowash/internal/core/domain/model/request"
	"robowash/internal/pkg/guard"
)

var (
	ErrReportProgressCommandIsNotConstructed = errors.New(
		"ReportProgressCommand must be created via NewReportProgressCommand constructor",
	)
	ErrWeightRequiresTotalCost = errors.New("weight and total cost must be reported together")
)

// ReportProgressCommand represents a robot or facility confirming one forward
// lifecycle step. A LaundryLoaded report may carry the measured weight and the
// quoted total cost; both travel together.
type ReportProgressCommand struct { //nolint:recvcheck //using for validation
	requestID int64
	target    request.Status
	weight    *float64
	totalCost *float64
	actor     string

	guard guard.ConstructorGuard
}

// NewReportProgressCommand creates a command for one progress confirmation.
// The actor identifies the reporting robot or facility endpoint.
func NewReportProgressCommand(requestID int64, target request.Status, weight, totalCost *float64, actor string) (ReportProgressCommand, error) {
	cmd := ReportProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setTarget(target),
		cmd.setLoad(weight, totalCost),
		cmd.setActor(actor),
	); err != nil {
		return ReportProgressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportProgressCommand) Validate() error {
	return c.guard.Validate(ErrReportProgressCommandIsNotConstructed)
}

// RequestID returns the identifier of the progressing request.
func (c ReportProgressCommand) RequestID() int64 {
	return c.requestID
}

// Target returns the reported target status.
func (c ReportProgressCommand) Target() request.Status {
	return c.target
}

// Weight returns the measured laundry weight, if reported.
func (c ReportProgressCommand) Weight() *float64 {
	return c.weight
}

// TotalCost returns the quoted cost for the measured load, if reported.
func (c ReportProgressCommand) TotalCost() *float64 {
	return c.totalCost
}

// Actor returns the reporting identity recorded in the audit trail.
func (c ReportProgressCommand) Actor() string {
	return c.actor
}

func (c *ReportProgressCommand) setRequestID(requestID int64) error {
	if requestID <= 0 {
		return ErrRequestIDIsInvalid
	}

	c.requestID = requestID
	return nil
}

func (c *ReportProgressCommand) setTarget(target request.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ReportProgressCommand) setLoad(weight, totalCost *float64) error {
	if (weight == nil) != (totalCost == nil) {
		return ErrWeightRequiresTotalCost
	}

	c.weight = weight
	c.totalCost = totalCost
	return nil
}

func (c *ReportProgressCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
