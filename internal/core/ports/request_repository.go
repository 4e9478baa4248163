// Package ports defines the contracts between the dispatch core and its
// collaborators: durable request/audit/payment storage, the in-memory robot
// registry, and the fire-and-forget outbound channels. These interfaces keep
// the domain free of infrastructure concerns and make the core testable.
package ports

import (
	"context"

	"robowash/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for request aggregates.
//
// Update applies optimistic concurrency: the write is conditional on the
// aggregate version loaded with the request, and a stale version fails with
// errs.ErrConcurrentModification. Requests are never physically deleted;
// terminal records are retained for audit.
type RequestRepository interface {
	// Add persists a new request and attaches the storage-assigned id.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update persists changes to an existing request. Fails with
	// errs.ErrConcurrentModification when the stored version no longer
	// matches the version the aggregate was loaded with.
	Update(ctx context.Context, aggregate *request.Request) error

	// Get retrieves a request by its identifier.
	Get(ctx context.Context, id int64) (*request.Request, error)

	// GetActiveByRobot retrieves the most recently accepted non-terminal
	// request bound to the named robot. Used to locate a preemption victim.
	GetActiveByRobot(ctx context.Context, robotName string) (*request.Request, error)

	// GetAllPending retrieves all requests awaiting dispatch, oldest first.
	GetAllPending(ctx context.Context) ([]*request.Request, error)

	// GetAllNonTerminal retrieves every request that has not reached a
	// terminal status. Used by the bulk force-cancel operation.
	GetAllNonTerminal(ctx context.Context) ([]*request.Request, error)
}
