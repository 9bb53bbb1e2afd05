package docker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultComposeFile is the path to docker-compose.yml relative to cmd/scenarios.
	DefaultComposeFile = "../../docker-compose.yml"
	// ContainerStartupTimeout is the maximum time to wait for containers to start.
	ContainerStartupTimeout = 90 * time.Second
	// PostStartupDelay lets the services register and the gateway publish its first routing table.
	PostStartupDelay    = 5 * time.Second
	StatusCheckInterval = 2 * time.Second
)

// Compose runs docker-compose commands in the directory holding the compose file.
type Compose struct {
	Dir string
}

// NewCompose resolves composePath (DefaultComposeFile when empty) and checks that it exists.
func NewCompose(composePath string) (*Compose, error) {
	if composePath == "" {
		composePath = DefaultComposeFile
	}
	absPath, err := filepath.Abs(composePath)
	if err != nil {
		return nil, fmt.Errorf("resolve compose file path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("docker-compose.yml not found at %s", absPath)
	}
	return &Compose{Dir: filepath.Dir(absPath)}, nil
}

// SetupEnvironment runs down then up, waits until every container runs and then for PostStartupDelay.
func (c *Compose) SetupEnvironment() error {
	fmt.Fprintf(os.Stderr, "=== Setting up docker-compose environment in %s ===\n", c.Dir)

	if err := c.run("down"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: docker-compose down failed (this is okay if nothing was running): %v\n", err)
	}
	if err := c.run("up", "-d", "--build"); err != nil {
		return fmt.Errorf("docker-compose up failed: %w", err)
	}
	if err := c.waitForContainersReady(); err != nil {
		return fmt.Errorf("containers failed to start: %w", err)
	}

	fmt.Fprintf(os.Stderr, "All containers are ready. Waiting %v before starting scenarios...\n", PostStartupDelay)
	time.Sleep(PostStartupDelay)
	return nil
}

// StopService stops a compose service by name (e.g. "customers"). Containers get SIGTERM and shut down gracefully.
func (c *Compose) StopService(serviceName string) error {
	return c.run("stop", serviceName)
}

func (c *Compose) StartService(serviceName string) error {
	return c.run("start", serviceName)
}

// KillService sends SIGKILL, so the instance disappears without deregistering.
func (c *Compose) KillService(serviceName string) error {
	return c.run("kill", serviceName)
}

// ServiceContainerIDs returns all container IDs for a compose service.
func (c *Compose) ServiceContainerIDs(serviceName string) ([]string, error) {
	output, err := c.output("ps", "-q", serviceName)
	if err != nil {
		return nil, fmt.Errorf("docker-compose ps -q %s failed: %w", serviceName, err)
	}
	var ids []string
	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		if id := strings.TrimSpace(scanner.Text()); id != "" {
			ids = append(ids, id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse container ids: %w", err)
	}
	return ids, nil
}

func (c *Compose) run(args ...string) error {
	cmd := exec.Command("docker-compose", args...)
	cmd.Dir = c.Dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (c *Compose) output(args ...string) ([]byte, error) {
	cmd := exec.Command("docker-compose", args...)
	cmd.Dir = c.Dir
	return cmd.Output()
}

func (c *Compose) waitForContainersReady() error {
	ctx, cancel := context.WithTimeout(context.Background(), ContainerStartupTimeout)
	defer cancel()

	ticker := time.NewTicker(StatusCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for containers to start (waited %v)", ContainerStartupTimeout)
		case <-ticker.C:
			output, err := c.output("ps", "--format", "json")
			if err != nil {
				return fmt.Errorf("docker-compose ps failed: %w", err)
			}
			status, err := parseContainersStatus(output)
			if err != nil {
				return err
			}
			if status.hasFailed {
				return fmt.Errorf("one or more containers failed to start: %s", status.failedContainers)
			}
			if status.allUp {
				return nil
			}
		}
	}
}

type containerStatus struct {
	allUp            bool
	hasFailed        bool
	failedContainers string
}

// containerInfo is one line of docker-compose ps --format json.
type containerInfo struct {
	Name   string `json:"Name"`
	State  string `json:"State"`
	Status string `json:"Status"`
}

// parseContainersStatus reads the line-delimited JSON of docker-compose ps. No containers means not ready.
func parseContainersStatus(output []byte) (*containerStatus, error) {
	status := &containerStatus{allUp: true}
	var failedNames []string
	var count int

	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var container containerInfo
		if err := json.Unmarshal([]byte(line), &container); err != nil {
			continue
		}
		count++

		state := strings.ToLower(container.State)
		statusValue := strings.ToLower(container.Status)
		if state == "running" {
			continue
		}
		status.allUp = false
		if state == "exited" || state == "dead" ||
			strings.Contains(statusValue, "exit") ||
			strings.Contains(statusValue, "restarting") {
			status.hasFailed = true
			failedNames = append(failedNames, container.Name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse docker-compose ps output: %w", err)
	}

	status.failedContainers = strings.Join(failedNames, ", ")
	if count == 0 {
		status.allUp = false
	}
	return status, nil
}
