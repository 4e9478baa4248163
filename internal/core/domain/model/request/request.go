package request

import (
	"errors"
	"fmt"
	"time"

	"robowash/internal/pkg/errs"
	"robowash/internal/pkg/guard"
)

var (
	// ErrRequestIsNotConstructed is returned when a Request instance was not
	// created through NewRequest or RestoreRequest.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")

	// ErrCustomerIsRequired is returned when a request is created without a customer.
	ErrCustomerIsRequired = errs.NewValueIsRequiredError("customer id")

	// ErrAddressIsRequired is returned when a request is created without an address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")

	// ErrRobotNameIsRequired is returned when a binding operation receives an
	// empty robot name.
	ErrRobotNameIsRequired = errs.NewValueIsRequiredError("robot name")

	// ErrReasonIsRequired is returned when a decline carries no reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("decline reason")

	// ErrNotRobotOwned is returned when a compensating reset is attempted on a
	// request that holds no robot.
	ErrNotRobotOwned = errors.New("request is not bound to a robot")
)

// Request is the aggregate root for one laundry job. It owns the lifecycle
// state machine: every status change goes through a method that validates the
// move, stamps the matching timestamp, and keeps the robot-binding invariant.
//
// Invariants:
//   - Status transitions follow the table in Status, except the documented
//     compensating operations (ResetToPending, ForceCancel)
//   - AssignedRobotName is non-nil if and only if Status.IsRobotOwned()
//   - Timestamps are monotonic: a later transition never records an instant
//     before an earlier one
//   - Terminal requests never change again
//
// Repeating a non-terminal transition with the same target is a no-op, not an
// error, so duplicate network retries from robots are harmless.
type Request struct {
	id            int64
	customerID    string
	customerName  string
	customerPhone string
	address       string
	roomName      string

	status            Status
	assignedRobotName *string
	declineReason     *string

	weight    *float64
	totalCost *float64

	requestedAt       time.Time
	acceptedAt        *time.Time
	arrivedAtRoomAt   *time.Time
	laundryLoadedAt   *time.Time
	returnedToBaseAt  *time.Time
	processedAt       *time.Time
	deliveryStartedAt *time.Time
	completedAt       *time.Time
	declinedAt        *time.Time
	cancelledAt       *time.Time

	// lastTransitionAt is the clamp floor for the monotonic timestamp rule.
	lastTransitionAt time.Time

	version int64
	guard   guard.ConstructorGuard
}

// NewRequest creates a Pending request for a customer submission.
// Customer id and address are required; a missing room assignment is a
// precondition failure because the robot cannot navigate without one.
func NewRequest(customerID, customerName, customerPhone, address, roomName string, now time.Time) (*Request, error) {
	if customerID == "" {
		return nil, ErrCustomerIsRequired
	}
	if address == "" {
		return nil, ErrAddressIsRequired
	}
	if roomName == "" {
		return nil, errs.NewPreconditionFailedError("room assignment")
	}

	return &Request{
		customerID:       customerID,
		customerName:     customerName,
		customerPhone:    customerPhone,
		address:          address,
		roomName:         roomName,
		status:           Pending,
		requestedAt:      now,
		lastTransitionAt: now,
		version:          1,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// RestoreProps carries the persisted state needed to rebuild a Request.
type RestoreProps struct {
	ID                int64
	CustomerID        string
	CustomerName      string
	CustomerPhone     string
	Address           string
	RoomName          string
	Status            Status
	AssignedRobotName *string
	DeclineReason     *string
	Weight            *float64
	TotalCost         *float64
	RequestedAt       time.Time
	AcceptedAt        *time.Time
	ArrivedAtRoomAt   *time.Time
	LaundryLoadedAt   *time.Time
	ReturnedToBaseAt  *time.Time
	ProcessedAt       *time.Time
	DeliveryStartedAt *time.Time
	CompletedAt       *time.Time
	DeclinedAt        *time.Time
	CancelledAt       *time.Time
	Version           int64
}

// RestoreRequest rebuilds a Request aggregate from persistent storage.
// The persisted state must already satisfy the aggregate invariants; in
// particular the robot binding must match the robot-owned status subset.
func RestoreRequest(props RestoreProps) (*Request, error) {
	if err := props.Status.Validate(); err != nil {
		return nil, err
	}
	if props.CustomerID == "" {
		return nil, ErrCustomerIsRequired
	}
	if err := validateRobotBinding(props.Status, props.AssignedRobotName); err != nil {
		return nil, err
	}
	if props.Version < 1 {
		return nil, errs.NewVersionIsInvalidError("request version",
			fmt.Errorf("%d is not a positive version", props.Version))
	}

	r := &Request{
		id:                props.ID,
		customerID:        props.CustomerID,
		customerName:      props.CustomerName,
		customerPhone:     props.CustomerPhone,
		address:           props.Address,
		roomName:          props.RoomName,
		status:            props.Status,
		assignedRobotName: props.AssignedRobotName,
		declineReason:     props.DeclineReason,
		weight:            props.Weight,
		totalCost:         props.TotalCost,
		requestedAt:       props.RequestedAt,
		acceptedAt:        props.AcceptedAt,
		arrivedAtRoomAt:   props.ArrivedAtRoomAt,
		laundryLoadedAt:   props.LaundryLoadedAt,
		returnedToBaseAt:  props.ReturnedToBaseAt,
		processedAt:       props.ProcessedAt,
		deliveryStartedAt: props.DeliveryStartedAt,
		completedAt:       props.CompletedAt,
		declinedAt:        props.DeclinedAt,
		cancelledAt:       props.CancelledAt,
		version:           props.Version,
		guard:             guard.NewConstructorGuard(),
	}
	r.lastTransitionAt = r.latestRecordedInstant()
	return r, nil
}

// validateRobotBinding enforces the robot-binding invariant on restored state.
func validateRobotBinding(status Status, robotName *string) error {
	bound := robotName != nil && *robotName != ""
	if bound && !status.IsRobotOwned() {
		return errs.NewValueIsInvalidErrorWithCause("assigned robot",
			fmt.Errorf("%s is not a status that holds a robot", status))
	}
	if !bound && status.IsRobotOwned() {
		return errs.NewValueIsInvalidErrorWithCause("assigned robot",
			fmt.Errorf("%s requires a bound robot", status))
	}
	return nil
}

// Validate ensures the Request was built through one of its constructors.
func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// AttachID records the storage-assigned identifier on a freshly created
// request. It may only be called once, by the repository, after insert.
func (r *Request) AttachID(id int64) error {
	if r.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("request id",
			fmt.Errorf("id already assigned: %d", r.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("request id",
			fmt.Errorf("%d is not a positive id", id))
	}
	r.id = id
	return nil
}

// BumpVersion advances the optimistic-concurrency version after a successful
// conditional write. Called by the repository only.
func (r *Request) BumpVersion() {
	r.version++
}

func (r *Request) ID() int64               { return r.id }
func (r *Request) CustomerID() string      { return r.customerID }
func (r *Request) CustomerName() string    { return r.customerName }
func (r *Request) CustomerPhone() string   { return r.customerPhone }
func (r *Request) Address() string         { return r.address }
func (r *Request) RoomName() string        { return r.roomName }
func (r *Request) Status() Status          { return r.status }
func (r *Request) DeclineReason() *string  { return r.declineReason }
func (r *Request) Weight() *float64        { return r.weight }
func (r *Request) TotalCost() *float64     { return r.totalCost }
func (r *Request) RequestedAt() time.Time  { return r.requestedAt }
func (r *Request) Version() int64          { return r.version }

func (r *Request) AcceptedAt() *time.Time        { return r.acceptedAt }
func (r *Request) ArrivedAtRoomAt() *time.Time   { return r.arrivedAtRoomAt }
func (r *Request) LaundryLoadedAt() *time.Time   { return r.laundryLoadedAt }
func (r *Request) ReturnedToBaseAt() *time.Time  { return r.returnedToBaseAt }
func (r *Request) ProcessedAt() *time.Time       { return r.processedAt }
func (r *Request) DeliveryStartedAt() *time.Time { return r.deliveryStartedAt }
func (r *Request) CompletedAt() *time.Time       { return r.completedAt }
func (r *Request) DeclinedAt() *time.Time        { return r.declinedAt }
func (r *Request) CancelledAt() *time.Time       { return r.cancelledAt }

// AssignedRobotName returns the bound robot's name, or nil while the request
// is not in a robot-owned status.
func (r *Request) AssignedRobotName() *string {
	return r.assignedRobotName
}

// Accept moves a Pending request to Accepted and binds the dispatched robot.
// Accepting an already Accepted request is a no-op.
func (r *Request) Accept(robotName string, now time.Time) (bool, error) {
	if robotName == "" {
		return false, ErrRobotNameIsRequired
	}

	changed, err := r.applyTransition(Accepted, now)
	if err != nil || !changed {
		return changed, err
	}

	r.assignedRobotName = &robotName
	return true, nil
}

// Decline moves a Pending request to Declined with a mandatory reason.
func (r *Request) Decline(reason string, now time.Time) (bool, error) {
	if reason == "" {
		return false, ErrReasonIsRequired
	}

	changed, err := r.applyTransition(Declined, now)
	if err != nil || !changed {
		return changed, err
	}

	r.declineReason = &reason
	r.assignedRobotName = nil
	return true, nil
}

// progressTargets is the subset of statuses a robot or facility confirmation
// may report through Progress. Binding changes happen as a side effect of the
// target: the robot is released when the laundry is back at base.
func progressTargets() map[Status]bool {
	return map[Status]bool{
		InProgress:                   true,
		RobotEnRoute:                 true,
		ArrivedAtRoom:                true,
		LaundryLoaded:                true,
		WeighingComplete:             true,
		ReturnedToBase:               true,
		Washing:                      true,
		FinishedWashing:              true,
		FinishedWashingArrivedAtRoom: true,
		FinishedWashingGoingToBase:   true,
		FinishedWashingAtBase:        true,
		PaymentPending:               true,
	}
}

// Progress applies one robot- or facility-reported forward transition.
// Duplicated reports of the same target are no-ops. Targets that bind a robot
// (Accept, StartDelivery) or end the lifecycle (Complete, Decline, Cancel)
// are separate operations and are rejected here.
func (r *Request) Progress(target Status, now time.Time) (bool, error) {
	if !progressTargets()[target] {
		return false, InvalidTransitionError{From: r.status, To: target}
	}

	changed, err := r.applyTransition(target, now)
	if err != nil || !changed {
		return changed, err
	}

	if target == ReturnedToBase || target == FinishedWashingAtBase {
		r.assignedRobotName = nil
	}
	return true, nil
}

// RecordLoad stores the measured weight and the cost quoted for it.
// Only valid while the request is in LaundryLoaded or WeighingComplete, and
// both values are write-once.
func (r *Request) RecordLoad(weight, totalCost float64) error {
	if r.status != LaundryLoaded && r.status != WeighingComplete {
		return errs.NewPreconditionFailedErrorWithCause("load measurement",
			fmt.Errorf("cannot record load in status %s", r.status))
	}
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	if totalCost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalCost", fmt.Errorf("%v is negative", totalCost))
	}
	if r.weight != nil || r.totalCost != nil {
		return errs.NewPreconditionFailedError("load already recorded")
	}

	r.weight = &weight
	r.totalCost = &totalCost
	return nil
}

// MarkReadyForDelivery is the admin-only release of clean laundry:
// FinishedWashing -> FinishedWashingReadyToDeliver.
func (r *Request) MarkReadyForDelivery(now time.Time) (bool, error) {
	return r.applyTransition(FinishedWashingReadyToDeliver, now)
}

// StartDelivery binds a delivery robot and moves the request to
// FinishedWashingGoingToRoom.
func (r *Request) StartDelivery(robotName string, now time.Time) (bool, error) {
	if robotName == "" {
		return false, ErrRobotNameIsRequired
	}

	changed, err := r.applyTransition(FinishedWashingGoingToRoom, now)
	if err != nil || !changed {
		return changed, err
	}

	r.assignedRobotName = &robotName
	return true, nil
}

// Complete finishes the lifecycle and releases the robot if one is still
// bound. Permitted from the tail of the delivery leg only.
func (r *Request) Complete(now time.Time) (bool, error) {
	changed, err := r.applyTransition(Completed, now)
	if err != nil || !changed {
		return changed, err
	}

	r.assignedRobotName = nil
	return true, nil
}

// Cancel ends the request before washing has begun. Once the laundry is in
// the wash, plain cancellation is an invalid transition; use ForceCancel.
func (r *Request) Cancel(now time.Time) (bool, error) {
	if r.status.IsWashingOrLater() {
		return false, InvalidTransitionError{From: r.status, To: Cancelled}
	}

	changed, err := r.applyTransition(Cancelled, now)
	if err != nil || !changed {
		return changed, err
	}

	r.assignedRobotName = nil
	return true, nil
}

// ForceCancel is the administrative override: it cancels from any non-terminal
// status, bypassing the automatic transition table.
func (r *Request) ForceCancel(now time.Time) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	if r.status.IsTerminal() {
		return false, InvalidTransitionError{From: r.status, To: Cancelled}
	}
	if r.status == Cancelled {
		return false, nil
	}

	r.status = Cancelled
	t := r.stamp(now)
	r.cancelledAt = &t
	r.assignedRobotName = nil
	return true, nil
}

// ResetToPending is the compensating transition used by preemption and by
// offline-robot reassignment: the request loses its robot and its acceptance
// and goes back to the dispatch queue.
func (r *Request) ResetToPending(now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !r.status.IsRobotOwned() || r.assignedRobotName == nil {
		return ErrNotRobotOwned
	}

	r.status = Pending
	r.assignedRobotName = nil
	r.acceptedAt = nil
	r.deliveryStartedAt = nil
	r.stamp(now)
	return nil
}

// applyTransition performs one table-validated move and stamps the matching
// timestamp. Returns changed=false without error when the request is already
// in the (non-terminal) target status.
func (r *Request) applyTransition(target Status, now time.Time) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	if r.status.IsTerminal() {
		return false, InvalidTransitionError{From: r.status, To: target}
	}
	if r.status == target {
		return false, nil
	}

	next, err := r.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	r.status = next
	t := r.stamp(now)

	switch next {
	case Accepted:
		r.acceptedAt = &t
	case ArrivedAtRoom:
		r.arrivedAtRoomAt = &t
	case LaundryLoaded:
		r.laundryLoadedAt = &t
	case ReturnedToBase:
		r.returnedToBaseAt = &t
	case FinishedWashing:
		r.processedAt = &t
	case FinishedWashingGoingToRoom:
		r.deliveryStartedAt = &t
	case Completed:
		r.completedAt = &t
	case Declined:
		r.declinedAt = &t
	case Cancelled:
		r.cancelledAt = &t
	}

	return true, nil
}

// stamp returns the instant to record for a transition happening at now,
// clamped so recorded timestamps never run backwards.
func (r *Request) stamp(now time.Time) time.Time {
	if now.Before(r.lastTransitionAt) {
		now = r.lastTransitionAt
	}
	r.lastTransitionAt = now
	return now
}

// latestRecordedInstant computes the clamp floor from persisted timestamps.
func (r *Request) latestRecordedInstant() time.Time {
	latest := r.requestedAt
	for _, t := range []*time.Time{
		r.acceptedAt, r.arrivedAtRoomAt, r.laundryLoadedAt, r.returnedToBaseAt,
		r.processedAt, r.deliveryStartedAt, r.completedAt, r.declinedAt, r.cancelledAt,
	} {
		if t != nil && t.After(latest) {
			latest = *t
		}
	}
	return latest
}
