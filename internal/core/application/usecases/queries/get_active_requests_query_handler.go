package queries

import (
	"context"

	"robowash/internal/core/domain/model/request"

	"gorm.io/gorm"
)

// GetActiveRequestsQueryHandler reads in-flight requests from the database.
type GetActiveRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveRequestsQueryHandler creates a handler for in-flight reads.
func NewGetActiveRequestsQueryHandler(db *gorm.DB) GetActiveRequestsQueryHandler {
	return GetActiveRequestsQueryHandler{db: db}
}

// Handle executes the query. The stored status code is mapped to its name so
// dashboard consumers never see raw enum values.
func (h GetActiveRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveRequestsQuery,
) ([]GetActiveRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetActiveRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			customer_name,
			room_name,
			status,
			assigned_robot_name,
			weight,
			total_cost,
			requested_at
		FROM requests
		WHERE status NOT IN (?, ?, ?)
		ORDER BY requested_at, id
	`, int(request.Completed), int(request.Declined), int(request.Cancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveRequestsQueryResponse
		var status int

		err = rows.Scan(
			&resp.ID,
			&resp.CustomerID,
			&resp.CustomerName,
			&resp.RoomName,
			&status,
			&resp.AssignedRobotName,
			&resp.Weight,
			&resp.TotalCost,
			&resp.RequestedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.Status = request.Status(status).String()
		requests = append(requests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
