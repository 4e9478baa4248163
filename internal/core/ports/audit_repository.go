package ports

import (
	"context"

	"robowash/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

// AuditRepository defines the append-only persistence contract for audit
// entries. Entries are written strictly after the state mutation they
// document; there is no update or delete.
//
// Append is idempotent on the entry id, so a retried admin action that
// re-submits the same entry does not duplicate the trail.
type AuditRepository interface {
	// Append persists one audit entry. Appending an entry whose id already
	// exists is a no-op.
	Append(ctx context.Context, entry audit.Entry) error

	// ListByRequest retrieves the audit trail of one request in recording order.
	ListByRequest(ctx context.Context, requestID int64) ([]audit.Entry, error)

	// Get retrieves one entry by id.
	Get(ctx context.Context, id uuid.UUID) (audit.Entry, error)
}
