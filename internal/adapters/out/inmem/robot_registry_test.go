package inmem_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"robowash/internal/adapters/out/inmem"
	"robowash/internal/core/domain/model/robot"
	"robowash/internal/pkg/errs"

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

func newTestRegistry(t *testing.T) (*inmem.RobotRegistry, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: base}
	reg := inmem.NewRobotRegistryWithClock(15*time.Second, discardLogger(), clock.Now)
	return reg, clock
}

func TestRobotRegistry_Register(t *testing.T) {
	reg, _ := newTestRegistry(t)

	r, err := reg.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)
	assert.Equal(t, robot.StatusAvailable, r.Status())
	assert.True(t, r.IsActive())

	_, err = reg.Register("", "10.0.0.5:9000")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRobotRegistry_RegisterIsIdempotent(t *testing.T) {
	reg, clock := newTestRegistry(t)

	_, err := reg.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)
	require.True(t, reg.TrySetStatus("wash-bot-1", robot.StatusAvailable, robot.StatusBusy, "request #7"))

	clock.Advance(time.Minute)
	r, err := reg.Register("wash-bot-1", "10.0.0.6:9000")
	require.NoError(t, err)

	// Re-registration refreshes address and heartbeat but keeps the status:
	// a Busy robot that reconnects is still on its task.
	assert.Equal(t, "10.0.0.6:9000", r.Address())
	assert.Equal(t, base.Add(time.Minute), r.LastHeartbeat())
	assert.Equal(t, robot.StatusBusy, r.Status())
	assert.Equal(t, "request #7", r.CurrentTask())

	assert.Len(t, reg.ListAll(), 1)
}

func TestRobotRegistry_HeartbeatUnknownIsDropped(t *testing.T) {
	reg, _ := newTestRegistry(t)

	// Must not panic or create an entry.
	reg.Heartbeat("ghost")
	assert.Empty(t, reg.ListAll())
}

func TestRobotRegistry_ListActive(t *testing.T) {
	reg, clock := newTestRegistry(t)

	_, err := reg.Register("bot-a", "10.0.0.1:9000")
	require.NoError(t, err)
	_, err = reg.Register("bot-b", "10.0.0.2:9000")
	require.NoError(t, err)
	_, err = reg.Register("bot-c", "10.0.0.3:9000")
	require.NoError(t, err)

	require.NoError(t, reg.SetActive("bot-b", false))

	// bot-c goes silent past the threshold; bot-a keeps beating.
	clock.Advance(20 * time.Second)
	reg.Heartbeat("bot-a")
	clock.Advance(time.Second)

	active := reg.ListActive()
	require.Len(t, active, 1)
	assert.Equal(t, "bot-a", active[0].Name())
}

func TestRobotRegistry_ListAllKeepsRegistrationOrder(t *testing.T) {
	reg, _ := newTestRegistry(t)

	for _, name := range []string{"bot-c", "bot-a", "bot-b"} {
		_, err := reg.Register(name, "10.0.0.1:9000")
		require.NoError(t, err)
	}

	all := reg.ListAll()
	require.Len(t, all, 3)
	assert.Equal(t, "bot-c", all[0].Name())
	assert.Equal(t, "bot-a", all[1].Name())
	assert.Equal(t, "bot-b", all[2].Name())
}

func TestRobotRegistry_TrySetStatus(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)

	assert.True(t, reg.TrySetStatus("wash-bot-1", robot.StatusAvailable, robot.StatusBusy, "request #7"))

	// The snapshot went stale: the robot is no longer Available.
	assert.False(t, reg.TrySetStatus("wash-bot-1", robot.StatusAvailable, robot.StatusBusy, "request #8"))

	r, ok := reg.Get("wash-bot-1")
	require.True(t, ok)
	assert.Equal(t, "request #7", r.CurrentTask())

	assert.False(t, reg.TrySetStatus("ghost", robot.StatusAvailable, robot.StatusBusy, ""))
}

func TestRobotRegistry_TrySetStatus_OnlyOneWinnerUnderContention(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)

	const goroutines = 32
	var wg sync.WaitGroup
	wins := make(chan string, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if reg.TrySetStatus("wash-bot-1", robot.StatusAvailable, robot.StatusBusy, "task") {
				wins <- "won"
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestRobotRegistry_SetActive(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)

	require.NoError(t, reg.SetActive("wash-bot-1", false))
	r, ok := reg.Get("wash-bot-1")
	require.True(t, ok)
	assert.False(t, r.IsActive())

	assert.ErrorIs(t, reg.SetActive("ghost", true), errs.ErrObjectNotFound)
}
