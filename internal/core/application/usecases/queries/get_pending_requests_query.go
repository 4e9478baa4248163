// Package queries contains the read models for the admin dashboard. Query
// handlers read straight from the database with raw SQL: the lifecycle
// invariants live on the write side, and a read model that bypasses aggregate
// hydration stays cheap for list endpoints.
package queries

import (
	"errors"
	"time"

	"robowash/internal/pkg/guard"
)

var ErrGetPendingRequestsQueryIsNotConstructed = errors.New(
	"GetPendingRequestsQuery must be created via NewGetPendingRequestsQuery constructor",
)

// GetPendingRequestsQuery retrieves the dispatch queue: every request still
// waiting for an admin decision, oldest first.
//
// Example:
//
//	query := NewGetPendingRequestsQuery()
//	handler := NewGetPendingRequestsQueryHandler(db)
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load dispatch queue: %w", err)
//	}
//	fmt.Printf("%d requests waiting\n", len(pending))
type GetPendingRequestsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingRequestsQuery creates a query for the dispatch queue.
func NewGetPendingRequestsQuery() GetPendingRequestsQuery {
	return GetPendingRequestsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingRequestsQueryIsNotConstructed)
}

// GetPendingRequestsQueryResponse is one row of the dispatch queue.
type GetPendingRequestsQueryResponse struct {
	ID           int64
	CustomerID   string
	CustomerName string
	RoomName     string
	RequestedAt  time.Time
}
