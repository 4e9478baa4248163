package robot

import (
	"fmt"
	"time"

	"robowash/internal/pkg/errs"
)

// ErrNameIsRequired is returned when a robot is registered without a name.
var ErrNameIsRequired = errs.NewValueIsRequiredError("robot name")

// Status is the operational state of a connected robot.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusAvailable means the robot is idle and eligible for dispatch.
	StatusAvailable

	// StatusBusy means the robot is bound to a request.
	StatusBusy

	// StatusMaintenance means the robot is administratively withdrawn.
	StatusMaintenance
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "Unknown",
		StatusAvailable:   "Available",
		StatusBusy:        "Busy",
		StatusMaintenance: "Maintenance",
	}
}

// Validate checks that the Status is one of the named robot statuses.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("robot status",
			fmt.Errorf("%d is not a valid robot status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("robot status",
			fmt.Errorf("%d is not a valid robot status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Robot is one connected delivery unit. Robots live only in memory: the
// registry is the single owner of the canonical record, and every read path
// receives value copies, so a Robot held by a caller is always a snapshot.
//
// IsOffline is computed from heartbeat age, never stored.
type Robot struct {
	name          string
	address       string
	isActive      bool
	status        Status
	currentTask   string
	lastHeartbeat time.Time
	registeredAt  time.Time
}

// NewRobot creates an Available, active robot at registration time.
func NewRobot(name, address string, now time.Time) (Robot, error) {
	if name == "" {
		return Robot{}, ErrNameIsRequired
	}

	return Robot{
		name:          name,
		address:       address,
		isActive:      true,
		status:        StatusAvailable,
		lastHeartbeat: now,
		registeredAt:  now,
	}, nil
}

func (r Robot) Name() string             { return r.name }
func (r Robot) Address() string          { return r.address }
func (r Robot) IsActive() bool           { return r.isActive }
func (r Robot) Status() Status           { return r.status }
func (r Robot) CurrentTask() string      { return r.currentTask }
func (r Robot) LastHeartbeat() time.Time { return r.lastHeartbeat }
func (r Robot) RegisteredAt() time.Time  { return r.registeredAt }

// IsOffline reports whether the robot's heartbeat has lapsed beyond threshold.
func (r Robot) IsOffline(now time.Time, threshold time.Duration) bool {
	return now.Sub(r.lastHeartbeat) > threshold
}

// Touch records a heartbeat at now.
func (r *Robot) Touch(now time.Time) {
	r.lastHeartbeat = now
}

// Rehome updates the reported address on re-registration.
func (r *Robot) Rehome(address string) {
	r.address = address
}

// SetActive flips the administrative enablement flag.
func (r *Robot) SetActive(active bool) {
	r.isActive = active
}

// SetStatus moves the robot to status, recording the task description for a
// Busy robot and clearing it otherwise.
func (r *Robot) SetStatus(status Status, task string) error {
	if err := status.Validate(); err != nil {
		return err
	}

	r.status = status
	if status == StatusBusy {
		r.currentTask = task
	} else {
		r.currentTask = ""
	}
	return nil
}
