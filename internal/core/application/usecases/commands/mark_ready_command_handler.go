package commands

import (
	"context"
	"time"

	"robowash/internal/core/domain/model/audit"
)

// MarkReadyForDeliveryCommandHandler handles the admin-only release of washed
// laundry into the delivery queue.
type MarkReadyForDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewMarkReadyForDeliveryCommandHandler creates a handler for the release.
func NewMarkReadyForDeliveryCommandHandler(uowFactory UoWFactory) MarkReadyForDeliveryCommandHandler {
	return MarkReadyForDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the release command. Repeating the release is a no-op.
func (h MarkReadyForDeliveryCommandHandler) Handle(ctx context.Context, cmd MarkReadyForDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()
	req, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	fromStatus := req.Status()
	changed, err := req.MarkReadyForDelivery(time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}
	if err = appendAudit(ctx, uow, audit.ActionMarkReady, req, fromStatus, cmd.Actor(), ""); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
