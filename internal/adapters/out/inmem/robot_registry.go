// Package inmem provides the in-memory robot registry. Robots are not
// persisted across restarts; a robot that reconnects simply re-registers.
package inmem

import (
	"log/slog"
	"sync"
	"time"

	"robowash/internal/core/domain/model/robot"
	"robowash/internal/pkg/errs"
)

// RobotRegistry is the canonical in-memory robot table. One mutex guards the
// table; every status change goes through a compare-and-set so that racing
// dispatch decisions cannot clobber a concurrent flip. All reads return value
// snapshots in registration order.
type RobotRegistry struct {
	mu               sync.RWMutex
	robots           map[string]*robot.Robot
	order            []string
	offlineThreshold time.Duration
	now              func() time.Time
	logger           *slog.Logger
}

// NewRobotRegistry creates an empty registry with the given offline threshold.
func NewRobotRegistry(offlineThreshold time.Duration, logger *slog.Logger) *RobotRegistry {
	return NewRobotRegistryWithClock(offlineThreshold, logger, time.Now)
}

// NewRobotRegistryWithClock creates a registry with an injected clock.
// Used by tests and by the liveness sweeper to control heartbeat aging.
func NewRobotRegistryWithClock(offlineThreshold time.Duration, logger *slog.Logger, now func() time.Time) *RobotRegistry {
	return &RobotRegistry{
		robots:           make(map[string]*robot.Robot),
		offlineThreshold: offlineThreshold,
		now:              now,
		logger:           logger.With("component", "robot_registry"),
	}
}

// OfflineThreshold returns the heartbeat age beyond which a robot counts as
// offline.
func (reg *RobotRegistry) OfflineThreshold() time.Duration {
	return reg.offlineThreshold
}

// Register adds a robot, or refreshes the address and heartbeat of an
// already-known name. Registration is idempotent and never resets the
// robot's status: a Busy robot that reconnects stays Busy.
func (reg *RobotRegistry) Register(name, address string) (robot.Robot, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if existing, ok := reg.robots[name]; ok {
		existing.Rehome(address)
		existing.Touch(reg.now())
		return *existing, nil
	}

	r, err := robot.NewRobot(name, address, reg.now())
	if err != nil {
		return robot.Robot{}, err
	}

	reg.robots[name] = &r
	reg.order = append(reg.order, name)
	reg.logger.Info("robot registered", "robot", name, "address", address)
	return r, nil
}

// Heartbeat records a liveness signal. Unknown names are logged and dropped;
// the robot must re-register.
func (reg *RobotRegistry) Heartbeat(name string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.robots[name]
	if !ok {
		reg.logger.Warn("heartbeat from unregistered robot", "robot", name)
		return
	}
	r.Touch(reg.now())
}

// Get returns a snapshot of one robot.
func (reg *RobotRegistry) Get(name string) (robot.Robot, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	r, ok := reg.robots[name]
	if !ok {
		return robot.Robot{}, false
	}
	return *r, true
}

// ListAll returns snapshots of every registered robot in registration order.
func (reg *RobotRegistry) ListAll() []robot.Robot {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]robot.Robot, 0, len(reg.order))
	for _, name := range reg.order {
		out = append(out, *reg.robots[name])
	}
	return out
}

// ListActive returns snapshots of administratively enabled robots whose
// heartbeat has not lapsed, in registration order. The snapshot is a
// consistent point-in-time view taken under one lock acquisition.
func (reg *RobotRegistry) ListActive() []robot.Robot {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	now := reg.now()
	out := make([]robot.Robot, 0, len(reg.order))
	for _, name := range reg.order {
		r := reg.robots[name]
		if r.IsActive() && !r.IsOffline(now, reg.offlineThreshold) {
			out = append(out, *r)
		}
	}
	return out
}

// TrySetStatus compare-and-sets one robot's status. Returns false when the
// robot is unknown or its current status no longer matches expected, which
// tells a racing dispatcher its snapshot went stale.
func (reg *RobotRegistry) TrySetStatus(name string, expected, next robot.Status, task string) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.robots[name]
	if !ok {
		reg.logger.Warn("status change for unregistered robot", "robot", name)
		return false
	}
	if r.Status() != expected {
		return false
	}
	if err := r.SetStatus(next, task); err != nil {
		reg.logger.Warn("rejected robot status change", "robot", name, "error", err)
		return false
	}
	return true
}

// SetActive flips the administrative enablement flag.
func (reg *RobotRegistry) SetActive(name string, active bool) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.robots[name]
	if !ok {
		return errs.NewObjectNotFoundError("robot", name)
	}
	r.SetActive(active)
	return nil
}
