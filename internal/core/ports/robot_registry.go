package ports

import (
	"robowash/internal/core/domain/model/robot"
)

// RobotRegistry is the single source of truth for robot presence and status.
// Implementations must be safe under concurrent access from heartbeats,
// dispatch decisions and the liveness sweep, and must mutate entries with
// per-entry compare-and-set semantics rather than bulk read-then-write.
//
// All read methods return value snapshots; callers never hold a live
// reference into the registry.
type RobotRegistry interface {
	// Register adds a robot or, if the name is already known, refreshes its
	// address and heartbeat. Registration is idempotent.
	Register(name, address string) (robot.Robot, error)

	// Heartbeat records a liveness signal. An unknown name is logged and
	// dropped; the robot must re-register.
	Heartbeat(name string)

	// Get returns a snapshot of one robot.
	Get(name string) (robot.Robot, bool)

	// ListAll returns snapshots of every registered robot in registration order.
	ListAll() []robot.Robot

	// ListActive returns snapshots of robots that are administratively
	// enabled and not offline, in registration order.
	ListActive() []robot.Robot

	// TrySetStatus compare-and-sets one robot's status. Returns false when
	// the robot is unknown or its current status does not match expected.
	// The task description is recorded for a Busy target and cleared otherwise.
	TrySetStatus(name string, expected, next robot.Status, task string) bool

	// SetActive flips the administrative enablement flag.
	SetActive(name string, active bool) error
}
