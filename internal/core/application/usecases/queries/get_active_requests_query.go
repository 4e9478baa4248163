package queries

import (
	"errors"
	"time"

	"robowash/internal/pkg/guard"
)

var ErrGetActiveRequestsQueryIsNotConstructed = errors.New(
	"GetActiveRequestsQuery must be created via NewGetActiveRequestsQuery constructor",
)

// GetActiveRequestsQuery retrieves every request still in flight: anything
// that has not reached a terminal status, including the pending queue.
type GetActiveRequestsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveRequestsQuery creates a query for in-flight requests.
func NewGetActiveRequestsQuery() GetActiveRequestsQuery {
	return GetActiveRequestsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveRequestsQueryIsNotConstructed)
}

// GetActiveRequestsQueryResponse is one in-flight request row.
type GetActiveRequestsQueryResponse struct {
	ID                int64
	CustomerID        string
	CustomerName      string
	RoomName          string
	Status            string
	AssignedRobotName *string
	Weight            *float64
	TotalCost         *float64
	RequestedAt       time.Time
}
