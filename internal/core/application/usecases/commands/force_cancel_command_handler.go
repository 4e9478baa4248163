package commands

import (
	"context"
	"log/slog"
	"time"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/robot"
	"robowash/internal/core/ports"
)

// ForceCancelCommandHandler applies the administrative cancellation override.
// Unlike plain cancellation it works from any non-terminal status, including
// mid-wash; the actor is always recorded in the audit trail.
type ForceCancelCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.RobotRegistry
	logger     *slog.Logger
}

// NewForceCancelCommandHandler creates a handler for forced cancellations.
func NewForceCancelCommandHandler(uowFactory UoWFactory, registry ports.RobotRegistry, logger *slog.Logger) ForceCancelCommandHandler {
	return ForceCancelCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		logger:     logger.With("component", "force_cancel_handler"),
	}
}

// Handle processes the forced cancellation.
func (h ForceCancelCommandHandler) Handle(ctx context.Context, cmd ForceCancelCommand) error {
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

	changed, boundRobot, err := forceCancelOne(ctx, uow, cmd.RequestID(), cmd.Actor())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if boundRobot != "" {
		if !h.registry.TrySetStatus(boundRobot, robot.StatusBusy, robot.StatusAvailable, "") {
			h.logger.WarnContext(ctx, "robot was not busy at forced cancellation", "robot", boundRobot)
		}
	}
	return nil
}

// forceCancelOne cancels one request inside an already-begun unit of work and
// reports the robot that was bound before the override, if any. Shared with
// the bulk variant.
func forceCancelOne(ctx context.Context, uow UoW, requestID int64, actor string) (bool, string, error) {
	requestRepo := uow.RequestRepository()
	req, err := requestRepo.Get(ctx, requestID)
	if err != nil {
		return false, "", err
	}

	fromStatus := req.Status()
	boundRobot := robotNameOf(req)

	changed, err := req.ForceCancel(time.Now())
	if err != nil {
		return false, "", err
	}
	if !changed {
		return false, "", nil
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return false, "", err
	}
	if err = appendAudit(ctx, uow, audit.ActionForceCancel, req, fromStatus, actor, boundRobot); err != nil {
		return false, "", err
	}

	return true, boundRobot, nil
}
