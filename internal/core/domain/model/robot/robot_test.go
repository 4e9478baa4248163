package robot_test

import (
	"testing"
	"time"

	"robowash/internal/core/domain/model/robot"
	"robowash/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewRobot(t *testing.T) {
	r, err := robot.NewRobot("wash-bot-1", "10.0.0.5:9000", base)
	require.NoError(t, err)

	assert.Equal(t, "wash-bot-1", r.Name())
	assert.Equal(t, "10.0.0.5:9000", r.Address())
	assert.True(t, r.IsActive())
	assert.Equal(t, robot.StatusAvailable, r.Status())
	assert.Empty(t, r.CurrentTask())
	assert.Equal(t, base, r.LastHeartbeat())
	assert.Equal(t, base, r.RegisteredAt())
}

func TestNewRobot_RequiresName(t *testing.T) {
	_, err := robot.NewRobot("", "10.0.0.5:9000", base)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRobot_IsOffline(t *testing.T) {
	r, err := robot.NewRobot("wash-bot-1", "10.0.0.5:9000", base)
	require.NoError(t, err)

	threshold := 15 * time.Second
	assert.False(t, r.IsOffline(base, threshold))
	assert.False(t, r.IsOffline(base.Add(15*time.Second), threshold))
	assert.True(t, r.IsOffline(base.Add(15*time.Second+time.Nanosecond), threshold))

	r.Touch(base.Add(time.Minute))
	assert.False(t, r.IsOffline(base.Add(time.Minute+10*time.Second), threshold))
}

func TestRobot_SetStatus(t *testing.T) {
	r, err := robot.NewRobot("wash-bot-1", "10.0.0.5:9000", base)
	require.NoError(t, err)

	require.NoError(t, r.SetStatus(robot.StatusBusy, "request #7"))
	assert.Equal(t, robot.StatusBusy, r.Status())
	assert.Equal(t, "request #7", r.CurrentTask())

	// Leaving Busy clears the task.
	require.NoError(t, r.SetStatus(robot.StatusAvailable, "ignored"))
	assert.Equal(t, robot.StatusAvailable, r.Status())
	assert.Empty(t, r.CurrentTask())

	assert.Error(t, r.SetStatus(robot.StatusUnknown, ""))
	assert.Equal(t, robot.StatusAvailable, r.Status())
}

func TestRobotStatus_Validate(t *testing.T) {
	assert.NoError(t, robot.StatusAvailable.Validate())
	assert.NoError(t, robot.StatusMaintenance.Validate())
	assert.Error(t, robot.StatusUnknown.Validate())
	assert.Error(t, robot.Status(42).Validate())
}
