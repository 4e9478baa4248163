package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"robowash/internal/core/application/usecases/commands"
	"robowash/internal/core/ports"

	"github.com/patrickmn/go-cache"
)

// Reassigner demotes an offline robot's active request back to the dispatch
// queue. Satisfied by commands.ReassignOfflineRequestsCommandHandler.
type Reassigner interface {
	Handle(ctx context.Context, cmd commands.ReassignOfflineRequestsCommand) error
}

// Sweeper is one liveness pass over the robot registry. Offline detection is
// purely observational: a lapsed heartbeat produces an operator alert, and
// request state is only touched when a Reassigner is configured.
//
// Alerts are deduplicated per robot: one alert when the robot flips offline,
// silence until it heartbeats back or the re-alert window expires.
type Sweeper struct {
	registry   ports.RobotRegistry
	notifier   ports.NotificationSender
	reassigner Reassigner
	threshold  time.Duration
	alerted    *cache.Cache
	now        func() time.Time
	logger     *slog.Logger
}

// NewSweeper creates a liveness sweeper. reassigner may be nil, which keeps
// the sweep alert-only. realertAfter bounds how long a still-offline robot
// stays silenced after its first alert.
func NewSweeper(
	registry ports.RobotRegistry,
	notifier ports.NotificationSender,
	reassigner Reassigner,
	threshold time.Duration,
	realertAfter time.Duration,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		registry:   registry,
		notifier:   notifier,
		reassigner: reassigner,
		threshold:  threshold,
		alerted:    cache.New(realertAfter, 2*realertAfter),
		now:        time.Now,
		logger:     logger.With("component", "liveness_sweeper"),
	}
}

// NewSweeperWithClock creates a Sweeper with an injected clock.
func NewSweeperWithClock(
	registry ports.RobotRegistry,
	notifier ports.NotificationSender,
	reassigner Reassigner,
	threshold time.Duration,
	realertAfter time.Duration,
	logger *slog.Logger,
	now func() time.Time,
) *Sweeper {
	s := NewSweeper(registry, notifier, reassigner, threshold, realertAfter, logger)
	s.now = now
	return s
}

// Sweep runs one liveness pass over every registered robot.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := s.now()

	for _, r := range s.registry.ListAll() {
		if !r.IsActive() {
			continue
		}

		if !r.IsOffline(now, s.threshold) {
			s.alerted.Delete(r.Name())
			continue
		}

		if _, seen := s.alerted.Get(r.Name()); seen {
			continue
		}
		s.alerted.SetDefault(r.Name(), now)

		s.logger.WarnContext(ctx, "robot went offline",
			"robot", r.Name(), "last_heartbeat", r.LastHeartbeat())
		s.notifier.Notify(ctx, "robot offline",
			fmt.Sprintf("robot %s has not sent a heartbeat since %s",
				r.Name(), r.LastHeartbeat().Format(time.RFC3339)))

		s.reassign(ctx, r.Name())
	}
}

func (s *Sweeper) reassign(ctx context.Context, robotName string) {
	if s.reassigner == nil {
		return
	}

	cmd, err := commands.NewReassignOfflineRequestsCommand(robotName, "system")
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build reassign command",
			"robot", robotName, "error", err)
		return
	}

	if err := s.reassigner.Handle(ctx, cmd); err != nil {
		s.logger.ErrorContext(ctx, "failed to reassign offline robot's request",
			"robot", robotName, "error", err)
	}
}
