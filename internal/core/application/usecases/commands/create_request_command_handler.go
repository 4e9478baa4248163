package commands

import (
	"context"
	"time"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/request"
)

// CreateRequestCommandHandler handles the business logic for request creation.
// New requests enter the queue in Pending status and wait for an admin
// decision; no robot is involved yet.
//
// Example:
//
//	handler := NewCreateRequestCommandHandler(uowFactory)
//	cmd, _ := NewCreateRequestCommand("cust-17", "Dana", "+1555880",
//	    "10.0.3.12", "Room 412")
//
//	id, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("request creation failed: %w", err)
//	}
//	// Request id is now Pending and visible to the dispatch queue
type CreateRequestCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateRequestCommandHandler creates a handler for request creation.
func NewCreateRequestCommandHandler(uowFactory UoWFactory) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the request creation command and returns the assigned id.
// The insert and its Create audit entry commit in one transaction.
func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	req, err := request.NewRequest(cmd.CustomerID(), cmd.CustomerName(), cmd.CustomerPhone(),
		cmd.Address(), cmd.RoomName(), time.Now())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RequestRepository().Add(ctx, req); err != nil {
		return 0, err
	}

	if err = appendAudit(ctx, uow, audit.ActionCreate, req, request.Pending, cmd.CustomerID(), ""); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return req.ID(), nil
}
