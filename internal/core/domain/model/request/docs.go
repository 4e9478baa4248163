// Package request provides the domain model for laundry service requests.
// It implements the Request aggregate root and the Status state machine that
// drives the request lifecycle from submission through pickup, washing,
// delivery and completion.
//
// The package includes:
//   - Request: The aggregate root that owns customer data, robot binding,
//     load measurements and lifecycle timestamps
//   - Status: A closed state machine enforcing the permitted transition table
//
// Key business rules:
//   - A robot is bound exactly while the status is in the robot-owned subset
//   - Repeated non-terminal transitions with the same target are no-ops
//   - Terminal requests (Completed, Declined, Cancelled) never change again
//   - Recorded timestamps are monotonic per request
//   - Preemption and force-cancel are explicit compensating operations,
//     not part of the automatic transition table
package request
