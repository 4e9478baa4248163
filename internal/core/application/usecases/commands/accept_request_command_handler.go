package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/request"
	"robowash/internal/core/domain/model/robot"
	"robowash/internal/core/domain/services"
	"robowash/internal/core/ports"
	"robowash/internal/pkg/errs"
)

// AcceptRequestCommandHandler orchestrates acceptance and robot dispatch.
// Selection comes from the DispatchEngine over a live registry snapshot; the
// handler performs the surrounding compare-and-set flips and, on a preemptive
// selection, the compensating demotion of the robot's current request.
//
// The database transaction covers the request update, the victim reset and
// every audit entry. Registry flips happen outside the transaction and are
// compensated when the commit does not happen.
//
// Example:
//
//	handler := NewAcceptRequestCommandHandler(uowFactory, registry, engine, notifier)
//	cmd, _ := NewAcceptRequestCommand(42, "admin")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoRobotAvailable) {
//	    // request stays Pending; retry when a robot connects
//	}
type AcceptRequestCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.RobotRegistry
	engine     services.DispatchEngine
	notifier   ports.NotificationSender
}

// NewAcceptRequestCommandHandler creates a handler for request acceptance.
func NewAcceptRequestCommandHandler(
	uowFactory UoWFactory,
	registry ports.RobotRegistry,
	engine services.DispatchEngine,
	notifier ports.NotificationSender,
) AcceptRequestCommandHandler {
	return AcceptRequestCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		engine:     engine,
		notifier:   notifier,
	}
}

// Handle processes the acceptance command. A repeated acceptance of an
// already Accepted request is a no-op; when no robot can be selected the
// request stays Pending and services.ErrNoRobotAvailable is returned.
func (h AcceptRequestCommandHandler) Handle(ctx context.Context, cmd AcceptRequestCommand) error {
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

	switch {
	case req.Status() == request.Accepted:
		return nil
	case req.Status() != request.Pending:
		return request.InvalidTransitionError{From: req.Status(), To: request.Accepted}
	}

	selection, err := h.engine.SelectRobot(h.registry.ListActive())
	if err != nil {
		return err
	}

	robotName := selection.Robot.Name()
	previousTask := selection.Robot.CurrentTask()
	task := fmt.Sprintf("request #%d", req.ID())

	var preempted, bound, committed bool
	defer func() {
		if committed {
			return
		}
		// The transaction rolled back, so hand the registry back its
		// pre-command state.
		if preempted {
			if !h.registry.TrySetStatus(robotName, robot.StatusBusy, robot.StatusBusy, previousTask) {
				h.registry.TrySetStatus(robotName, robot.StatusAvailable, robot.StatusBusy, previousTask)
			}
			return
		}
		if bound {
			h.registry.TrySetStatus(robotName, robot.StatusBusy, robot.StatusAvailable, "")
		}
	}()

	if selection.Preempt {
		if err = h.preemptVictim(ctx, uow, robotName, cmd.Actor()); err != nil {
			return err
		}
		if !h.registry.TrySetStatus(robotName, robot.StatusBusy, robot.StatusAvailable, "") {
			return services.ErrNoRobotAvailable
		}
		preempted = true
	}

	if !h.registry.TrySetStatus(robotName, robot.StatusAvailable, robot.StatusBusy, task) {
		return services.ErrNoRobotAvailable
	}
	bound = true

	changed, err := req.Accept(robotName, time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}
	if err = appendAudit(ctx, uow, audit.ActionAccept, req, request.Pending, cmd.Actor(), robotName); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}
	committed = true

	h.notifier.Notify(ctx, "request accepted",
		fmt.Sprintf("request #%d accepted, robot %s dispatched", req.ID(), robotName))
	return nil
}

// preemptVictim demotes the active request bound to robotName back to Pending
// inside the current transaction. A Busy registry flag with no bound request
// is stale and nothing is demoted.
func (h AcceptRequestCommandHandler) preemptVictim(ctx context.Context, uow UoW, robotName, actor string) error {
	victim, err := uow.RequestRepository().GetActiveByRobot(ctx, robotName)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	fromStatus := victim.Status()
	if err = victim.ResetToPending(time.Now()); err != nil {
		return err
	}
	if err = uow.RequestRepository().Update(ctx, victim); err != nil {
		return err
	}

	return appendAudit(ctx, uow, audit.ActionReassign, victim, fromStatus, actor, robotName)
}
