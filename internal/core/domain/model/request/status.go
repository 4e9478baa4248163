package request

import (
	"errors"
	"fmt"

	"robowash/internal/pkg/errs"
)

// ErrInvalidTransition is the errors.Is target for every rejected lifecycle
// move, including any attempt to leave a terminal status.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a lifecycle move that is not in the permitted
// transition table. Unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of a laundry request.
// It implements a closed state machine: a request is created Pending, moves
// forward through pickup, washing and delivery, and ends in exactly one of
// the terminal statuses Completed, Declined or Cancelled.
//
// Pickup phase (robot bound from Accepted):
//
//	Pending ──> Accepted ──> InProgress ──> RobotEnRoute ──> ArrivedAtRoom
//	        ──> LaundryLoaded ──> [WeighingComplete] ──> ReturnedToBase
//
// Washing phase (robot released):
//
//	ReturnedToBase ──> Washing ──> FinishedWashing ──> FinishedWashingReadyToDeliver
//
// Delivery phase (robot re-bound at delivery start):
//
//	FinishedWashingReadyToDeliver ──> FinishedWashingGoingToRoom
//	──> FinishedWashingArrivedAtRoom ──> FinishedWashingGoingToBase
//	──> [FinishedWashingAtBase ──> [PaymentPending]] ──> Completed
//
// Cancellation is permitted from any state before Washing; from Washing on,
// only the force-cancel override may end the request early.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status after customer submission; no robot bound.
	Pending

	// Accepted means an admin accepted the request and a robot was dispatched.
	Accepted

	// InProgress means the bound robot acknowledged the task.
	InProgress

	// RobotEnRoute means the robot is navigating to the customer's room.
	RobotEnRoute

	// ArrivedAtRoom means the robot reached the customer's room.
	ArrivedAtRoom

	// LaundryLoaded means the laundry was loaded and weighed aboard the robot.
	LaundryLoaded

	// WeighingComplete is a payment-adjacent confirmation of the recorded
	// weight, reported while the laundry is still aboard the robot.
	WeighingComplete

	// ReturnedToBase means the robot delivered the laundry to the facility.
	// The robot is released at this point.
	ReturnedToBase

	// Washing means the laundry is being processed at the facility.
	Washing

	// FinishedWashing means processing finished; awaiting admin release.
	FinishedWashing

	// FinishedWashingReadyToDeliver means an admin released the clean laundry
	// for delivery; a robot has not been bound yet.
	FinishedWashingReadyToDeliver

	// FinishedWashingGoingToRoom means a delivery robot was bound and is
	// navigating back to the customer's room.
	FinishedWashingGoingToRoom

	// FinishedWashingArrivedAtRoom means the delivery robot reached the room.
	FinishedWashingArrivedAtRoom

	// FinishedWashingGoingToBase means the delivery robot is returning home.
	FinishedWashingGoingToBase

	// FinishedWashingAtBase means the delivery robot is home again.
	// The robot is released at this point.
	FinishedWashingAtBase

	// PaymentPending is a payment-adjacent status awaiting settlement.
	PaymentPending

	// Completed is the successful terminal status.
	Completed

	// Declined is the terminal status for admin-rejected requests.
	Declined

	// Cancelled is the terminal status for cancelled requests.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                       "Unknown",
		Pending:                       "Pending",
		Accepted:                      "Accepted",
		InProgress:                    "InProgress",
		RobotEnRoute:                  "RobotEnRoute",
		ArrivedAtRoom:                 "ArrivedAtRoom",
		LaundryLoaded:                 "LaundryLoaded",
		WeighingComplete:              "WeighingComplete",
		ReturnedToBase:                "ReturnedToBase",
		Washing:                       "Washing",
		FinishedWashing:               "FinishedWashing",
		FinishedWashingReadyToDeliver: "FinishedWashingReadyToDeliver",
		FinishedWashingGoingToRoom:    "FinishedWashingGoingToRoom",
		FinishedWashingArrivedAtRoom:  "FinishedWashingArrivedAtRoom",
		FinishedWashingGoingToBase:    "FinishedWashingGoingToBase",
		FinishedWashingAtBase:         "FinishedWashingAtBase",
		PaymentPending:                "PaymentPending",
		Completed:                     "Completed",
		Declined:                      "Declined",
		Cancelled:                     "Cancelled",
	}
}

// transitionTable is the closed set of permitted automatic lifecycle moves.
// Compensating moves (preemption reset to Pending) and the force-cancel
// override are deliberately absent; they are distinct administrative
// operations on the aggregate, not part of the automatic table.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:                       {Accepted, Declined, Cancelled},
		Accepted:                      {InProgress, Cancelled},
		InProgress:                    {RobotEnRoute, Cancelled},
		RobotEnRoute:                  {ArrivedAtRoom, Cancelled},
		ArrivedAtRoom:                 {LaundryLoaded, Cancelled},
		LaundryLoaded:                 {WeighingComplete, ReturnedToBase, Cancelled},
		WeighingComplete:              {ReturnedToBase, Cancelled},
		ReturnedToBase:                {Washing, Cancelled},
		Washing:                       {FinishedWashing},
		FinishedWashing:               {FinishedWashingReadyToDeliver},
		FinishedWashingReadyToDeliver: {FinishedWashingGoingToRoom},
		FinishedWashingGoingToRoom:    {FinishedWashingArrivedAtRoom},
		FinishedWashingArrivedAtRoom:  {FinishedWashingGoingToBase},
		FinishedWashingGoingToBase:    {FinishedWashingAtBase, Completed},
		FinishedWashingAtBase:         {PaymentPending, Completed},
		PaymentPending:                {Completed},
	}
}

// Validate checks that the Status is one of the named lifecycle statuses.
// Unknown and any out-of-range value are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further lifecycle transition is permitted.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Declined || s == Cancelled
}

// IsRobotOwned reports whether a request in this status holds a bound robot.
// The aggregate maintains the invariant that AssignedRobotName is non-nil
// exactly in these statuses: the pickup leg from acceptance until the laundry
// is back at base, and the delivery leg from delivery start until the robot
// is home again.
func (s Status) IsRobotOwned() bool {
	switch s {
	case Accepted, InProgress, RobotEnRoute, ArrivedAtRoom, LaundryLoaded, WeighingComplete,
		FinishedWashingGoingToRoom, FinishedWashingArrivedAtRoom, FinishedWashingGoingToBase:
		return true
	default:
		return false
	}
}

// IsWashingOrLater reports whether the request has entered the washing phase.
// Plain cancellation is refused from here on; only the force-cancel override
// may end such a request.
func (s Status) IsWashingOrLater() bool {
	return s >= Washing && !s.IsTerminal()
}

// CanTransitionTo reports whether the automatic transition table permits a
// move from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates a move from s to target against the transition
// table and returns the new status, or an InvalidTransitionError.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}

// TerminalStatuses returns the closed set of terminal statuses.
// Used by repositories to exclude finished requests from active-work queries.
func TerminalStatuses() []Status {
	return []Status{Completed, Declined, Cancelled}
}

// StatusFromName parses a status by its human-readable name, as reported over
// the wire by robots and admin tooling.
func StatusFromName(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == name && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status name", name))
}
