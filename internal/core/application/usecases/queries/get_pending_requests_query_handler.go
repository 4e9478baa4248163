package queries

import (
	"context"

	"robowash/internal/core/domain/model/request"

	"gorm.io/gorm"
)

// GetPendingRequestsQueryHandler reads the dispatch queue from the database.
type GetPendingRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingRequestsQueryHandler creates a handler for dispatch queue reads.
func NewGetPendingRequestsQueryHandler(db *gorm.DB) GetPendingRequestsQueryHandler {
	return GetPendingRequestsQueryHandler{db: db}
}

// Handle executes the query. Results come back oldest first so the queue
// reads in arrival order.
func (h GetPendingRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingRequestsQuery,
) ([]GetPendingRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetPendingRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			customer_name,
			room_name,
			requested_at
		FROM requests
		WHERE status = ?
		ORDER BY requested_at, id
	`, int(request.Pending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingRequestsQueryResponse

		err = rows.Scan(
			&resp.ID,
			&resp.CustomerID,
			&resp.CustomerName,
			&resp.RoomName,
			&resp.RequestedAt,
		)
		if err != nil {
			return nil, err
		}

		requests = append(requests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
