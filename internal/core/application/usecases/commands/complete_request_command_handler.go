package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/robot"
	"robowash/internal/core/ports"
)

// CompleteRequestCommandHandler finishes the lifecycle: the request goes
// terminal, a still-bound robot is released, and when a load was weighed a
// pending payment record for the quoted cost is written in the same
// transaction. Settlement belongs to the external payment system.
type CompleteRequestCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.RobotRegistry
	notifier   ports.NotificationSender
	logger     *slog.Logger
}

// NewCompleteRequestCommandHandler creates a handler for request completion.
func NewCompleteRequestCommandHandler(
	uowFactory UoWFactory,
	registry ports.RobotRegistry,
	notifier ports.NotificationSender,
	logger *slog.Logger,
) CompleteRequestCommandHandler {
	return CompleteRequestCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		notifier:   notifier,
		logger:     logger.With("component", "completion_handler"),
	}
}

// Handle processes the completion command. Completing an already Completed
// request is an invalid transition because Completed is terminal.
func (h CompleteRequestCommandHandler) Handle(ctx context.Context, cmd CompleteRequestCommand) error {
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
	boundRobot := robotNameOf(req)

	changed, err := req.Complete(time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}
	if err = appendAudit(ctx, uow, audit.ActionComplete, req, fromStatus, cmd.Actor(), boundRobot); err != nil {
		return err
	}

	if cost := req.TotalCost(); cost != nil {
		if err = uow.PaymentRepository().AddPending(ctx, req.ID(), *cost); err != nil {
			return err
		}
	} else {
		h.logger.WarnContext(ctx, "completed without a recorded load, no payment created",
			"request_id", req.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if boundRobot != "" {
		if !h.registry.TrySetStatus(boundRobot, robot.StatusBusy, robot.StatusAvailable, "") {
			h.logger.WarnContext(ctx, "robot was not busy at completion", "robot", boundRobot)
		}
	}

	h.notifier.Notify(ctx, "request completed",
		fmt.Sprintf("request #%d completed", req.ID()))
	return nil
}
