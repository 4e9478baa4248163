package queries

import (
	"context"

	"robowash/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GetAuditTrailQueryHandler reads one request's audit trail from the database.
type GetAuditTrailQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditTrailQueryHandler creates a handler for audit trail reads.
func NewGetAuditTrailQueryHandler(db *gorm.DB) GetAuditTrailQueryHandler {
	return GetAuditTrailQueryHandler{db: db}
}

// Handle executes the query. Entries come back in recording order; the stored
// action code is mapped to its name.
func (h GetAuditTrailQueryHandler) Handle(
	ctx context.Context,
	query GetAuditTrailQuery,
) ([]GetAuditTrailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetAuditTrailQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			action,
			from_status,
			to_status,
			actor,
			robot_name,
			recorded_at
		FROM audit_entries
		WHERE request_id = ?
		ORDER BY recorded_at, id
	`, query.RequestID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAuditTrailQueryResponse
		var action int

		err = rows.Scan(
			&resp.ID,
			&action,
			&resp.FromStatus,
			&resp.ToStatus,
			&resp.Actor,
			&resp.RobotName,
			&resp.RecordedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.Action = audit.Action(action).String()
		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
