package queries

import (
	"errors"
	"time"

	"robowash/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrGetAuditTrailQueryIsNotConstructed = errors.New(
		"GetAuditTrailQuery must be created via NewGetAuditTrailQuery constructor",
	)
	ErrRequestIDIsInvalid = errors.New("request id must be greater than 0")
)

// GetAuditTrailQuery retrieves the full action history of one request in
// recording order.
//
// Example:
//
//	query, _ := NewGetAuditTrailQuery(42)
//	handler := NewGetAuditTrailQueryHandler(db)
//
//	trail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load audit trail: %w", err)
//	}
//	for _, e := range trail {
//	    fmt.Printf("%s: %s -> %s by %s\n", e.Action, e.FromStatus, e.ToStatus, e.Actor)
//	}
type GetAuditTrailQuery struct {
	requestID int64

	guard guard.ConstructorGuard
}

// NewGetAuditTrailQuery creates a query for one request's audit trail.
func NewGetAuditTrailQuery(requestID int64) (GetAuditTrailQuery, error) {
	if requestID <= 0 {
		return GetAuditTrailQuery{}, ErrRequestIDIsInvalid
	}

	return GetAuditTrailQuery{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditTrailQueryIsNotConstructed)
}

// RequestID returns the request whose trail is read.
func (q GetAuditTrailQuery) RequestID() int64 {
	return q.requestID
}

// GetAuditTrailQueryResponse is one audit trail row.
type GetAuditTrailQueryResponse struct {
	ID         uuid.UUID
	Action     string
	FromStatus string
	ToStatus   string
	Actor      string
	RobotName  *string
	RecordedAt time.Time
}
