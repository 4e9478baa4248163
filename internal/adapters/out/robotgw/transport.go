// Package robotgw provides the best-effort HTTP gateway toward robot
// hardware. Notifications are issued after the triggering transition has
// committed; a failure here is logged and left for manual retry.
package robotgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeout = 3 * time.Second

// HTTPRobotTransport implements ports.RobotTransport by POSTing navigation
// commands to the address each robot reported at registration.
type HTTPRobotTransport struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPRobotTransport creates a transport with a short request timeout so
// an unreachable robot never stalls the caller.
func NewHTTPRobotTransport(logger *slog.Logger) *HTTPRobotTransport {
	return &HTTPRobotTransport{
		client: &http.Client{Timeout: defaultTimeout},
		logger: logger.With("component", "robot_transport"),
	}
}

type navigationCommand struct {
	Command string `json:"command"`
	Target  string `json:"target"`
}

// NotifyStartNavigation asks the robot to start navigating to target.
// Returns false when the robot could not be reached or rejected the command.
func (t *HTTPRobotTransport) NotifyStartNavigation(ctx context.Context, robotName, address, target string) bool {
	body, err := json.Marshal(navigationCommand{Command: "start_navigation", Target: target})
	if err != nil {
		t.logger.WarnContext(ctx, "failed to encode navigation command",
			"robot", robotName, "error", err)
		return false
	}

	url := fmt.Sprintf("http://%s/navigate", address)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.logger.WarnContext(ctx, "failed to build navigation request",
			"robot", robotName, "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.WarnContext(ctx, "robot unreachable for navigation command",
			"robot", robotName, "address", address, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.logger.WarnContext(ctx, "robot rejected navigation command",
			"robot", robotName, "status", resp.StatusCode)
		return false
	}

	return true
}
