// Package audit provides the append-only record of lifecycle actions.
// Every successful transition or dispatch decision produces exactly one
// AuditEntry; entries are created, persisted after the state mutation they
// document, and never mutated.
package audit

import (
	"fmt"
	"time"

	"robowash/internal/pkg/errs"

	"github.com/google/uuid"
)

// Action is the closed set of auditable lifecycle actions. Modelling this as
// an enum rather than free text keeps the action space exhaustive and
// testable.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionCreate records a request submission.
	ActionCreate

	// ActionAccept records an admin acceptance with a successful dispatch.
	ActionAccept

	// ActionDecline records an admin rejection.
	ActionDecline

	// ActionProgress records a robot- or facility-reported forward transition.
	ActionProgress

	// ActionReassign records the compensating demotion of a request back to
	// Pending when its robot is preempted or lost.
	ActionReassign

	// ActionMarkReady records the admin release of clean laundry for delivery.
	ActionMarkReady

	// ActionStartDelivery records the binding of a delivery robot.
	ActionStartDelivery

	// ActionComplete records lifecycle completion.
	ActionComplete

	// ActionCancel records a plain cancellation.
	ActionCancel

	// ActionForceCancel records an administrative cancellation override.
	ActionForceCancel
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:       "Unknown",
		ActionCreate:        "Create",
		ActionAccept:        "Accept",
		ActionDecline:       "Decline",
		ActionProgress:      "Progress",
		ActionReassign:      "Reassign",
		ActionMarkReady:     "MarkReady",
		ActionStartDelivery: "StartDelivery",
		ActionComplete:      "Complete",
		ActionCancel:        "Cancel",
		ActionForceCancel:   "ForceCancel",
	}
}

// Validate checks that the Action is one of the named actions.
func (a Action) Validate() error {
	if a == ActionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("audit action",
			fmt.Errorf("%d is not a valid audit action", a))
	}
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("audit action",
			fmt.Errorf("%d is not a valid audit action", a))
	}
	return nil
}

// String returns the human-readable name of the action.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "Unknown"
}

// Entry is one immutable audit record.
type Entry struct {
	id         uuid.UUID
	action     Action
	requestID  int64
	fromStatus string
	toStatus   string
	actor      string
	robotName  *string
	recordedAt time.Time
}

// NewEntry creates an audit entry for one action. The robot name is optional;
// pass empty for actions with no robot involvement.
func NewEntry(action Action, requestID int64, fromStatus, toStatus, actor, robotName string, now time.Time) (Entry, error) {
	if err := action.Validate(); err != nil {
		return Entry{}, err
	}
	if requestID <= 0 {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("request id",
			fmt.Errorf("%d is not a positive id", requestID))
	}
	if actor == "" {
		return Entry{}, errs.NewValueIsRequiredError("actor")
	}

	e := Entry{
		id:         uuid.New(),
		action:     action,
		requestID:  requestID,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		actor:      actor,
		recordedAt: now,
	}
	if robotName != "" {
		e.robotName = &robotName
	}
	return e, nil
}

// RestoreEntry rebuilds an audit entry from persistent storage.
func RestoreEntry(id uuid.UUID, action Action, requestID int64, fromStatus, toStatus, actor string, robotName *string, recordedAt time.Time) (Entry, error) {
	if err := action.Validate(); err != nil {
		return Entry{}, err
	}

	return Entry{
		id:         id,
		action:     action,
		requestID:  requestID,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		actor:      actor,
		robotName:  robotName,
		recordedAt: recordedAt,
	}, nil
}

func (e Entry) ID() uuid.UUID         { return e.id }
func (e Entry) Action() Action        { return e.action }
func (e Entry) RequestID() int64      { return e.requestID }
func (e Entry) FromStatus() string    { return e.fromStatus }
func (e Entry) ToStatus() string      { return e.toStatus }
func (e Entry) Actor() string         { return e.actor }
func (e Entry) RobotName() *string    { return e.robotName }
func (e Entry) RecordedAt() time.Time { return e.recordedAt }
