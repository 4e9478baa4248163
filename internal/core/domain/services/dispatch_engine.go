package services

import (
	"errors"

	"robowash/internal/core/domain/model/robot"
)

var (
	// ErrNoRobotAvailable is returned when dispatch finds zero eligible robots.
	ErrNoRobotAvailable = errors.New("no robot available")

	// ErrNoActiveRobots is the delivery-start variant: the request is ready
	// to deliver but no active robot is connected.
	ErrNoActiveRobots = errors.New("no active robots")
)

// DispatchPolicy carries the tunable dispatch decisions. Preemption trades
// fairness for liveness: a new request may reclaim a Busy robot instead of
// waiting, demoting the preempted request back to the queue.
type DispatchPolicy struct {
	// AllowPreemption permits reclaiming a Busy robot when no Available
	// robot exists.
	AllowPreemption bool
}

// DefaultDispatchPolicy preempts, matching the reference behavior of never
// leaving a new request unserved while any active robot is connected.
func DefaultDispatchPolicy() DispatchPolicy {
	return DispatchPolicy{AllowPreemption: true}
}

// Selection is the outcome of one dispatch decision.
type Selection struct {
	// Robot is the chosen robot snapshot.
	Robot robot.Robot

	// Preempt is true when the chosen robot is Busy and must be reclaimed
	// from its current request before binding.
	Preempt bool
}

// DispatchEngine selects a robot for a request from a point-in-time registry
// snapshot. The decision is deterministic for a fixed snapshot:
//
//  1. The first Available robot in snapshot order wins. Snapshot order is
//     registration order, deliberately not proximity; "first available" is
//     the contract, not "nearest".
//  2. With no Available robot and preemption enabled, the Busy robot with
//     the oldest heartbeat (least recently serviced) is reclaimed.
//  3. Otherwise dispatch fails with ErrNoRobotAvailable.
//
// The engine only decides; the caller performs the compensating transitions
// and registry compare-and-set flips around the decision.
type DispatchEngine struct {
	policy DispatchPolicy
}

// NewDispatchEngine creates a DispatchEngine with the given policy.
func NewDispatchEngine(policy DispatchPolicy) DispatchEngine {
	return DispatchEngine{policy: policy}
}

// SelectRobot picks a robot from the snapshot of active robots.
// Returns ErrNoRobotAvailable when the snapshot is empty or holds no
// Available robot and no preemptable Busy robot.
func (e DispatchEngine) SelectRobot(robots []robot.Robot) (Selection, error) {
	if len(robots) == 0 {
		return Selection{}, ErrNoRobotAvailable
	}

	for _, r := range robots {
		if r.Status() == robot.StatusAvailable {
			return Selection{Robot: r}, nil
		}
	}

	if !e.policy.AllowPreemption {
		return Selection{}, ErrNoRobotAvailable
	}

	var (
		victim robot.Robot
		found  bool
	)
	for _, r := range robots {
		if r.Status() != robot.StatusBusy {
			continue
		}
		if !found || r.LastHeartbeat().Before(victim.LastHeartbeat()) {
			victim = r
			found = true
		}
	}

	if !found {
		return Selection{}, ErrNoRobotAvailable
	}
	return Selection{Robot: victim, Preempt: true}, nil
}
