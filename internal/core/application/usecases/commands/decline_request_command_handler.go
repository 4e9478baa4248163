package commands

import (
	"context"
	"fmt"
	"time"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/ports"
)

// DeclineRequestCommandHandler handles the business logic for declining a
// pending request. No robot is involved; the request goes terminal with the
// recorded reason.
type DeclineRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSender
}

// NewDeclineRequestCommandHandler creates a handler for request declines.
func NewDeclineRequestCommandHandler(uowFactory UoWFactory, notifier ports.NotificationSender) DeclineRequestCommandHandler {
	return DeclineRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the decline command. Declining an already Declined request
// is an invalid transition because Declined is terminal.
func (h DeclineRequestCommandHandler) Handle(ctx context.Context, cmd DeclineRequestCommand) error {
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
	changed, err := req.Decline(cmd.Reason(), time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}
	if err = appendAudit(ctx, uow, audit.ActionDecline, req, fromStatus, cmd.Actor(), ""); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, "request declined",
		fmt.Sprintf("request #%d declined: %s", req.ID(), cmd.Reason()))
	return nil
}
