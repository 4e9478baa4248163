package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/request"
	"robowash/internal/core/domain/model/robot"
	"robowash/internal/core/domain/services"
	"robowash/internal/core/ports"
)

// StartDeliveryCommandHandler binds a delivery robot to a released request
// and hands it the navigation command. Delivery never preempts: a request
// waiting for delivery is parked laundry, not a stalled customer, so it waits
// for a genuinely Available robot.
//
// The navigation command goes out after the transaction commits. A robot that
// cannot be reached keeps the request in FinishedWashingGoingToRoom; the robot
// picks the task up on its next poll or an operator retries.
type StartDeliveryCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.RobotRegistry
	engine     services.DispatchEngine
	transport  ports.RobotTransport
	logger     *slog.Logger
}

// NewStartDeliveryCommandHandler creates a handler for delivery starts.
func NewStartDeliveryCommandHandler(
	uowFactory UoWFactory,
	registry ports.RobotRegistry,
	engine services.DispatchEngine,
	transport ports.RobotTransport,
	logger *slog.Logger,
) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		engine:     engine,
		transport:  transport,
		logger:     logger.With("component", "delivery_handler"),
	}
}

// Handle processes the delivery start. Returns services.ErrNoActiveRobots
// when no Available robot is connected; the request stays ready to deliver.
func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
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

	if req.Status() == request.FinishedWashingGoingToRoom {
		return nil
	}

	selection, err := h.engine.SelectRobot(h.registry.ListActive())
	if errors.Is(err, services.ErrNoRobotAvailable) {
		return services.ErrNoActiveRobots
	}
	if err != nil {
		return err
	}
	if selection.Preempt {
		return services.ErrNoActiveRobots
	}

	robotName := selection.Robot.Name()
	task := fmt.Sprintf("deliver request #%d", req.ID())

	if !h.registry.TrySetStatus(robotName, robot.StatusAvailable, robot.StatusBusy, task) {
		return services.ErrNoActiveRobots
	}

	var committed bool
	defer func() {
		if !committed {
			h.registry.TrySetStatus(robotName, robot.StatusBusy, robot.StatusAvailable, "")
		}
	}()

	fromStatus := req.Status()
	changed, err := req.StartDelivery(robotName, time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}
	if err = appendAudit(ctx, uow, audit.ActionStartDelivery, req, fromStatus, cmd.Actor(), robotName); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}
	committed = true

	if !h.transport.NotifyStartNavigation(ctx, robotName, selection.Robot.Address(), req.RoomName()) {
		h.logger.WarnContext(ctx, "navigation command not delivered",
			"robot", robotName, "request_id", req.ID())
	}
	return nil
}
