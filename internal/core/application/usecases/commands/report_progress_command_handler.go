package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/request"
	"robowash/internal/core/domain/model/robot"
	"robowash/internal/core/ports"
)

// ReportProgressCommandHandler applies robot- and facility-reported forward
// transitions. Duplicate reports of the current status commit nothing and
// produce no audit entry, so robots may retry freely.
//
// When the target returns the laundry to base the bound robot is released in
// the registry after the transaction commits.
type ReportProgressCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.RobotRegistry
	notifier   ports.NotificationSender
	logger     *slog.Logger
}

// NewReportProgressCommandHandler creates a handler for progress reports.
func NewReportProgressCommandHandler(
	uowFactory UoWFactory,
	registry ports.RobotRegistry,
	notifier ports.NotificationSender,
	logger *slog.Logger,
) ReportProgressCommandHandler {
	return ReportProgressCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		notifier:   notifier,
		logger:     logger.With("component", "progress_handler"),
	}
}

// Handle processes one progress confirmation.
func (h ReportProgressCommandHandler) Handle(ctx context.Context, cmd ReportProgressCommand) error {
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

	changed, err := req.Progress(cmd.Target(), time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if cmd.Weight() != nil && req.Weight() == nil {
		if err = req.RecordLoad(*cmd.Weight(), *cmd.TotalCost()); err != nil {
			return err
		}
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}
	if err = appendAudit(ctx, uow, audit.ActionProgress, req, fromStatus, cmd.Actor(), boundRobot); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.releaseRobotIfReturned(ctx, cmd.Target(), boundRobot)

	if cmd.Target() == request.ArrivedAtRoom {
		h.notifier.Notify(ctx, "robot arrived",
			fmt.Sprintf("robot %s arrived at %s for request #%d", boundRobot, req.RoomName(), req.ID()))
	}
	return nil
}

// releaseRobotIfReturned frees the robot in the registry once the laundry is
// back at base. The aggregate already dropped the binding inside the
// transaction; the registry flip is the in-memory mirror of that release.
func (h ReportProgressCommandHandler) releaseRobotIfReturned(ctx context.Context, target request.Status, boundRobot string) {
	if target != request.ReturnedToBase && target != request.FinishedWashingAtBase {
		return
	}
	if boundRobot == "" {
		return
	}

	if !h.registry.TrySetStatus(boundRobot, robot.StatusBusy, robot.StatusAvailable, "") {
		h.logger.WarnContext(ctx, "robot was not busy at release", "robot", boundRobot)
	}
}
