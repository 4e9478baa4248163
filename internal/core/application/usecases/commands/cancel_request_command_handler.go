package commands

import (
	"context"
	"log/slog"
	"time"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/robot"
	"robowash/internal/core/ports"
)

// CancelRequestCommandHandler handles plain cancellation. The aggregate
// refuses it once washing has begun; a bound robot is released after commit.
type CancelRequestCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.RobotRegistry
	logger     *slog.Logger
}

// NewCancelRequestCommandHandler creates a handler for cancellations.
func NewCancelRequestCommandHandler(uowFactory UoWFactory, registry ports.RobotRegistry, logger *slog.Logger) CancelRequestCommandHandler {
	return CancelRequestCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		logger:     logger.With("component", "cancel_handler"),
	}
}

// Handle processes the cancellation command.
func (h CancelRequestCommandHandler) Handle(ctx context.Context, cmd CancelRequestCommand) error {
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

	changed, err := req.Cancel(time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}
	if err = appendAudit(ctx, uow, audit.ActionCancel, req, fromStatus, cmd.Actor(), boundRobot); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.releaseRobot(ctx, boundRobot)
	return nil
}

func (h CancelRequestCommandHandler) releaseRobot(ctx context.Context, boundRobot string) {
	if boundRobot == "" {
		return
	}
	if !h.registry.TrySetStatus(boundRobot, robot.StatusBusy, robot.StatusAvailable, "") {
		h.logger.WarnContext(ctx, "robot was not busy at cancellation", "robot", boundRobot)
	}
}
