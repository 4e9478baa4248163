package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.AllowPreemption)
	assert.False(t, policy.AutoReassignOffline)
	assert.Equal(t, 15*time.Second, policy.OfflineThreshold)
	assert.Equal(t, "*/5 * * * * *", policy.LivenessSchedule)
	assert.Equal(t, 10*time.Minute, policy.RealertAfter)
	assert.InDelta(t, 2.0, policy.HeartbeatRate, 0)
	assert.Equal(t, 5, policy.HeartbeatBurst)
	assert.NoError(t, policy.validate())
}

func TestLoadPolicy_EmptyPathUsesDefaults(t *testing.T) {
	policy, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), policy)
}

func TestLoadPolicy_MissingFileUsesDefaults(t *testing.T) {
	policy, err := LoadPolicy(filepath.Join(t.TempDir(), "no-such-policy.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), policy)
}

func TestLoadPolicy_FileOverlaysDefaults(t *testing.T) {
	path := writePolicyFile(t, `
auto_reassign_offline: true
offline_threshold: 30s
heartbeat_burst: 10
`)

	policy, err := LoadPolicy(path)
	require.NoError(t, err)

	assert.True(t, policy.AutoReassignOffline)
	assert.Equal(t, 30*time.Second, policy.OfflineThreshold)
	assert.Equal(t, 10, policy.HeartbeatBurst)

	// Untouched knobs keep their defaults.
	assert.True(t, policy.AllowPreemption)
	assert.Equal(t, "*/5 * * * * *", policy.LivenessSchedule)
	assert.Equal(t, 10*time.Minute, policy.RealertAfter)
}

func TestLoadPolicy_InvalidValuesAreRejected(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "non-positive threshold", content: "offline_threshold: 0s"},
		{name: "empty schedule", content: `liveness_schedule: ""`},
		{name: "non-positive realert", content: "realert_after: -1m"},
		{name: "non-positive heartbeat rate", content: "heartbeat_rate: 0"},
		{name: "malformed yaml", content: "offline_threshold: [nope"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writePolicyFile(t, tc.content)
			_, err := LoadPolicy(path)
			assert.Error(t, err)
		})
	}
}
