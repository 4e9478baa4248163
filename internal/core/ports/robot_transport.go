package ports

import "context"

// RobotTransport is the outbound, best-effort channel to robot hardware.
// Notifications are issued after the transition they follow has committed;
// a failed notification is logged and retried manually, never rolled back.
type RobotTransport interface {
	// NotifyStartNavigation asks the named robot to start navigating to the
	// target room. Returns false when the robot could not be reached.
	NotifyStartNavigation(ctx context.Context, robotName, address, target string) bool
}

// NotificationSender is the fire-and-forget channel toward customers and
// operators. Failures are logged and never affect the triggering transition.
type NotificationSender interface {
	Notify(ctx context.Context, subject, message string)
}
