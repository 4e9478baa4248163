package commands

import (
	"context"
	"log/slog"

	"robowash/internal/core/domain/model/robot"
	"robowash/internal/core/ports"
)

// ForceCancelAllCommandHandler cancels every non-terminal request. Each
// request gets its own transaction so one conflicting or broken record never
// blocks the sweep; failures are logged and skipped, and the handler reports
// how many requests it actually cancelled.
type ForceCancelAllCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.RobotRegistry
	logger     *slog.Logger
}

// NewForceCancelAllCommandHandler creates a handler for the bulk cancellation.
func NewForceCancelAllCommandHandler(uowFactory UoWFactory, registry ports.RobotRegistry, logger *slog.Logger) ForceCancelAllCommandHandler {
	return ForceCancelAllCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		logger:     logger.With("component", "force_cancel_all_handler"),
	}
}

// Handle processes the bulk cancellation and returns the cancelled count.
func (h ForceCancelAllCommandHandler) Handle(ctx context.Context, cmd ForceCancelAllCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	active, err := h.uowFactory.Create().RequestRepository().GetAllNonTerminal(ctx)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, req := range active {
		boundRobot, err := h.cancelOne(ctx, req.ID(), cmd.Actor())
		if err != nil {
			h.logger.WarnContext(ctx, "skipping request in bulk cancellation",
				"request_id", req.ID(), "error", err)
			continue
		}

		cancelled++
		if boundRobot != "" {
			h.registry.TrySetStatus(boundRobot, robot.StatusBusy, robot.StatusAvailable, "")
		}
	}

	return cancelled, nil
}

func (h ForceCancelAllCommandHandler) cancelOne(ctx context.Context, requestID int64, actor string) (string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	changed, boundRobot, err := forceCancelOne(ctx, uow, requestID, actor)
	if err != nil {
		return "", err
	}
	if !changed {
		return "", nil
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}
	return boundRobot, nil
}
