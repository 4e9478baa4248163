package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"robowash/internal/adapters/out/inmem"
	"robowash/internal/core/application/usecases/commands"
	"robowash/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingNotifier struct {
	mu       sync.Mutex
	subjects []string
}

func (n *recordingNotifier) Notify(_ context.Context, subject, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subjects = append(n.subjects, subject)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subjects)
}

type recordingReassigner struct {
	mu     sync.Mutex
	robots []string
}

func (r *recordingReassigner) Handle(_ context.Context, cmd commands.ReassignOfflineRequestsCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.robots = append(r.robots, cmd.RobotName())
	return nil
}

const (
	offlineThreshold = 15 * time.Second
	realertAfter     = 10 * time.Minute
)

func newSweepFixture(t *testing.T, reassigner jobs.Reassigner) (*jobs.Sweeper, *inmem.RobotRegistry, *fakeClock, *recordingNotifier) {
	t.Helper()

	clock := &fakeClock{now: base}
	registry := inmem.NewRobotRegistryWithClock(offlineThreshold, discardLogger(), clock.Now)
	notifier := &recordingNotifier{}
	sweeper := jobs.NewSweeperWithClock(registry, notifier, reassigner,
		offlineThreshold, realertAfter, discardLogger(), clock.Now)
	return sweeper, registry, clock, notifier
}

func TestSweeper_AlertsOncePerOfflineEpisode(t *testing.T) {
	sweeper, registry, clock, notifier := newSweepFixture(t, nil)
	ctx := t.Context()

	_, err := registry.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)

	// Online: no alert.
	sweeper.Sweep(ctx)
	assert.Equal(t, 0, notifier.count())

	// Offline: exactly one alert, repeated sweeps stay silent.
	clock.Advance(20 * time.Second)
	sweeper.Sweep(ctx)
	sweeper.Sweep(ctx)
	sweeper.Sweep(ctx)
	assert.Equal(t, 1, notifier.count())
}

func TestSweeper_RealertsAfterHeartbeatReturns(t *testing.T) {
	sweeper, registry, clock, notifier := newSweepFixture(t, nil)
	ctx := t.Context()

	_, err := registry.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)

	clock.Advance(20 * time.Second)
	sweeper.Sweep(ctx)
	require.Equal(t, 1, notifier.count())

	// The robot comes back, then dies again: that is a new episode.
	registry.Heartbeat("wash-bot-1")
	sweeper.Sweep(ctx)
	clock.Advance(20 * time.Second)
	sweeper.Sweep(ctx)
	assert.Equal(t, 2, notifier.count())
}

func TestSweeper_IgnoresDisabledRobots(t *testing.T) {
	sweeper, registry, clock, notifier := newSweepFixture(t, nil)
	ctx := t.Context()

	_, err := registry.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)
	require.NoError(t, registry.SetActive("wash-bot-1", false))

	clock.Advance(time.Hour)
	sweeper.Sweep(ctx)
	assert.Equal(t, 0, notifier.count())
}

func TestSweeper_ReassignsWhenConfigured(t *testing.T) {
	reassigner := &recordingReassigner{}
	sweeper, registry, clock, notifier := newSweepFixture(t, reassigner)
	ctx := t.Context()

	_, err := registry.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)
	_, err = registry.Register("wash-bot-2", "10.0.0.6:9000")
	require.NoError(t, err)

	clock.Advance(20 * time.Second)
	registry.Heartbeat("wash-bot-2")
	clock.Advance(time.Second)
	sweeper.Sweep(ctx)

	require.Equal(t, 1, notifier.count())
	assert.Equal(t, []string{"wash-bot-1"}, reassigner.robots)
}

func TestSweeper_AlertOnlyWithoutReassigner(t *testing.T) {
	sweeper, registry, clock, notifier := newSweepFixture(t, nil)
	ctx := t.Context()

	_, err := registry.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)

	clock.Advance(20 * time.Second)
	// Must not panic with no reassigner configured.
	sweeper.Sweep(ctx)
	assert.Equal(t, 1, notifier.count())
}
