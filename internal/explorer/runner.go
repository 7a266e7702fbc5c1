package explorer

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Runner performs the OS-level primitives the Manager composes.
// SystemRunner talks to the real OS; tests substitute a recording fake.
type Runner interface {
	// Kill forcefully terminates every running instance of the named process.
	Kill(name string) Result

	// Start launches a new instance of the named process without waiting on it.
	Start(name string) Result

	// Sleep blocks the caller for exactly d.
	Sleep(d time.Duration)
}

const defaultTaskKill = "taskkill"

// SystemRunner executes primitives against the host operating system.
type SystemRunner struct {
	// TaskKill is the termination facility invoked by Kill.
	TaskKill string

	logger *slog.Logger
}

// NewSystemRunner returns a runner bound to taskkill and exec.
func NewSystemRunner() *SystemRunner {
	return &SystemRunner{
		TaskKill: defaultTaskKill,
		logger:   slog.With("component", "runner"),
	}
}

func (r *SystemRunner) Kill(name string) Result {
	tool := r.TaskKill
	if tool == "" {
		tool = defaultTaskKill
	}

	var stderr bytes.Buffer
	cmd := exec.Command(tool, "/F", "/IM", name)
	cmd.Stderr = &stderr

	r.log().Debug("terminating process", "name", name, "tool", tool)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			diag := strings.TrimSpace(stderr.String())
			if diag == "" {
				diag = exitErr.Error()
			}
			return Failed(fmt.Sprintf("Failed to terminate %s: %s", name, diag))
		}
		return Failed(fmt.Sprintf("Error executing %s: %v", tool, err))
	}

	return Succeeded(fmt.Sprintf("Successfully terminated %s", name))
}

func (r *SystemRunner) Start(name string) Result {
	cmd := exec.Command(name)
	detach(cmd)

	r.log().Debug("launching process", "name", name)

	if err := cmd.Start(); err != nil {
		return Failed(fmt.Sprintf("Error starting %s: %v", name, err))
	}

	// Fire and forget: the shell outlives us and its exit status is ignored.
	pid := cmd.Process.Pid
	if err := disown(cmd); err != nil {
		r.log().Warn("disowning launched process", "pid", pid, "error", err)
	}

	return Succeeded(fmt.Sprintf("Successfully started %s", name))
}

func (r *SystemRunner) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (r *SystemRunner) log() *slog.Logger {
	if r.logger == nil {
		return slog.Default()
	}
	return r.logger
}
