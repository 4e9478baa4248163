package cmd

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Policy carries the tunable dispatch and liveness decisions. Unlike Config
// these are operational knobs, kept in a YAML file so operators can adjust
// them without touching the environment.
type Policy struct {
	// AllowPreemption permits acceptance to reclaim a Busy robot when no
	// Available robot exists.
	AllowPreemption bool `yaml:"allow_preemption"`

	// AutoReassignOffline lets the liveness sweep demote an offline robot's
	// active request back to the queue. Off by default: reassignment moves
	// customer laundry without a human decision.
	AutoReassignOffline bool `yaml:"auto_reassign_offline"`

	// OfflineThreshold is the heartbeat age after which a robot counts as
	// offline.
	OfflineThreshold time.Duration `yaml:"offline_threshold"`

	// LivenessSchedule is the seconds-granularity cron expression for the
	// liveness sweep.
	LivenessSchedule string `yaml:"liveness_schedule"`

	// RealertAfter bounds how long a still-offline robot stays silenced
	// after its first alert.
	RealertAfter time.Duration `yaml:"realert_after"`

	// HeartbeatRate and HeartbeatBurst bound heartbeats per robot.
	HeartbeatRate  float64 `yaml:"heartbeat_rate"`
	HeartbeatBurst int     `yaml:"heartbeat_burst"`
}

// UnmarshalYAML layers the file's values over whatever the Policy already
// holds, so absent keys keep their defaults. Durations are written in Go
// notation ("15s", "10m"); yaml.v3 has no native time.Duration support.
func (p *Policy) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		AllowPreemption     *bool    `yaml:"allow_preemption"`
		AutoReassignOffline *bool    `yaml:"auto_reassign_offline"`
		OfflineThreshold    *string  `yaml:"offline_threshold"`
		LivenessSchedule    *string  `yaml:"liveness_schedule"`
		RealertAfter        *string  `yaml:"realert_after"`
		HeartbeatRate       *float64 `yaml:"heartbeat_rate"`
		HeartbeatBurst      *int     `yaml:"heartbeat_burst"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.AllowPreemption != nil {
		p.AllowPreemption = *raw.AllowPreemption
	}
	if raw.AutoReassignOffline != nil {
		p.AutoReassignOffline = *raw.AutoReassignOffline
	}
	if raw.OfflineThreshold != nil {
		d, err := time.ParseDuration(*raw.OfflineThreshold)
		if err != nil {
			return fmt.Errorf("offline_threshold: %w", err)
		}
		p.OfflineThreshold = d
	}
	if raw.LivenessSchedule != nil {
		p.LivenessSchedule = *raw.LivenessSchedule
	}
	if raw.RealertAfter != nil {
		d, err := time.ParseDuration(*raw.RealertAfter)
		if err != nil {
			return fmt.Errorf("realert_after: %w", err)
		}
		p.RealertAfter = d
	}
	if raw.HeartbeatRate != nil {
		p.HeartbeatRate = *raw.HeartbeatRate
	}
	if raw.HeartbeatBurst != nil {
		p.HeartbeatBurst = *raw.HeartbeatBurst
	}
	return nil
}

// DefaultPolicy returns the values used when no policy file is present.
func DefaultPolicy() Policy {
	return Policy{
		AllowPreemption:     true,
		AutoReassignOffline: false,
		OfflineThreshold:    15 * time.Second,
		LivenessSchedule:    "*/5 * * * * *",
		RealertAfter:        10 * time.Minute,
		HeartbeatRate:       2,
		HeartbeatBurst:      5,
	}
}

// LoadPolicy reads the policy file at path, layering it over the defaults.
// A missing file is not an error; the defaults apply as-is.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return policy, nil
	}
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	if err = yaml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}

	if err = policy.validate(); err != nil {
		return Policy{}, fmt.Errorf("invalid policy file %s: %w", path, err)
	}
	return policy, nil
}

func (p Policy) validate() error {
	if p.OfflineThreshold <= 0 {
		return fmt.Errorf("offline_threshold must be positive, got %s", p.OfflineThreshold)
	}
	if p.LivenessSchedule == "" {
		return fmt.Errorf("liveness_schedule must not be empty")
	}
	if p.RealertAfter <= 0 {
		return fmt.Errorf("realert_after must be positive, got %s", p.RealertAfter)
	}
	if p.HeartbeatRate <= 0 || p.HeartbeatBurst <= 0 {
		return fmt.Errorf("heartbeat limits must be positive, got rate %v burst %d",
			p.HeartbeatRate, p.HeartbeatBurst)
	}
	return nil
}
