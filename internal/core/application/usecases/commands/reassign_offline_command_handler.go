package commands

import (
	"context"
	"errors"
	"time"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/robot"
	"robowash/internal/core/ports"
	"robowash/internal/pkg/errs"
)

// ReassignOfflineRequestsCommandHandler demotes the active request of an
// offline robot back to Pending so dispatch can hand it to another robot.
// Invoked by the liveness sweep when the auto-reassign policy is enabled.
type ReassignOfflineRequestsCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.RobotRegistry
}

// NewReassignOfflineRequestsCommandHandler creates a handler for offline
// demotions.
func NewReassignOfflineRequestsCommandHandler(uowFactory UoWFactory, registry ports.RobotRegistry) ReassignOfflineRequestsCommandHandler {
	return ReassignOfflineRequestsCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// Handle processes the demotion. A robot with no active request is a no-op:
// the sweep fires for every offline robot whether or not it held work.
func (h ReassignOfflineRequestsCommandHandler) Handle(ctx context.Context, cmd ReassignOfflineRequestsCommand) error {
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
	req, err := requestRepo.GetActiveByRobot(ctx, cmd.RobotName())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	fromStatus := req.Status()
	if err = req.ResetToPending(time.Now()); err != nil {
		return err
	}
	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}
	if err = appendAudit(ctx, uow, audit.ActionReassign, req, fromStatus, cmd.Actor(), cmd.RobotName()); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// The robot is unreachable, but flipping it Available means a comeback
	// starts from a clean slate instead of a phantom task.
	h.registry.TrySetStatus(cmd.RobotName(), robot.StatusBusy, robot.StatusAvailable, "")
	return nil
}
