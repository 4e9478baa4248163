package commands

import (
	"context"
	"time"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/request"
)

// appendAudit writes the audit record for one applied action, inside the same
// transaction as the state change it documents. fromStatus is the status the
// request held before the change; the current status is read off the aggregate.
func appendAudit(
	ctx context.Context,
	uow AuditRepoFactory,
	action audit.Action,
	req *request.Request,
	fromStatus request.Status,
	actor string,
	robotName string,
) error {
	entry, err := audit.NewEntry(action, req.ID(), fromStatus.String(), req.Status().String(),
		actor, robotName, time.Now())
	if err != nil {
		return err
	}

	return uow.AuditRepository().Append(ctx, entry)
}

// robotNameOf flattens an optional robot binding for audit fields.
func robotNameOf(req *request.Request) string {
	if name := req.AssignedRobotName(); name != nil {
		return *name
	}
	return ""
}
