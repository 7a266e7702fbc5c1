// Package explorer restarts the Windows desktop shell.
//
// A Manager composes three Runner primitives (kill, start, sleep) into the
// kill, start and restart operations. Each operation has a silent form that
// returns the full Result and a narrating form that prints each step to the
// console and returns only the outcome.
package explorer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/benaskins/stuckbar/internal/style"
)

// TargetProcess is the shell process managed by stuckbar.
const TargetProcess = "explorer.exe"

// DefaultRestartDelay is how long Restart waits between termination and
// relaunch, giving the shell time to release window handles and tray icons.
const DefaultRestartDelay = 500 * time.Millisecond

// RestartSuccessMessage is the result message of a successful restart.
const RestartSuccessMessage = "Explorer.exe restarted successfully"

// Manager sequences Runner primitives into kill, start and restart.
type Manager struct {
	runner       Runner
	restartDelay time.Duration
	stdout       io.Writer
	stderr       io.Writer
	logger       *slog.Logger
}

// NewManager creates a Manager that owns runner and uses DefaultRestartDelay.
func NewManager(runner Runner) *Manager {
	return &Manager{
		runner:       runner,
		restartDelay: DefaultRestartDelay,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		logger:       slog.With("component", "explorer"),
	}
}

// WithRestartDelay sets the delay awaited between kill and start.
// Call it before the first operation.
func (m *Manager) WithRestartDelay(d time.Duration) *Manager {
	m.restartDelay = d
	return m
}

// WithOutput sets the writers used by the narrating operations.
func (m *Manager) WithOutput(stdout, stderr io.Writer) *Manager {
	m.stdout = stdout
	m.stderr = stderr
	return m
}

// RestartDelay returns the configured restart delay.
func (m *Manager) RestartDelay() time.Duration {
	return m.restartDelay
}

// Kill terminates the shell, narrating to the console.
func (m *Manager) Kill() bool {
	return m.kill(m.narrator()).Success
}

// Start launches the shell, narrating to the console.
func (m *Manager) Start() bool {
	return m.start(m.narrator()).Success
}

// Restart kills the shell, waits, then starts it, narrating to the console.
func (m *Manager) Restart() bool {
	n := m.narrator()
	n.heading(fmt.Sprintf("Restarting %s...", TargetProcess))

	result := m.restart(n)
	if result.Success {
		n.done(RestartSuccessMessage + "!")
	}
	return result.Success
}

// KillSilent terminates the shell and returns the runner's result untouched.
func (m *Manager) KillSilent() Result {
	return m.kill(nil)
}

// StartSilent launches the shell and returns the runner's result untouched.
func (m *Manager) StartSilent() Result {
	return m.start(nil)
}

// RestartSilent kills the shell, waits, then starts it. A failed step
// short-circuits the sequence and its result is returned as is.
func (m *Manager) RestartSilent() Result {
	return m.restart(nil)
}

func (m *Manager) kill(n *narrator) Result {
	n.notice(fmt.Sprintf("Terminating %s...", TargetProcess))
	result := m.runner.Kill(TargetProcess)
	m.logStep("kill", result)
	n.report(result)
	return result
}

func (m *Manager) start(n *narrator) Result {
	n.notice(fmt.Sprintf("Starting %s...", TargetProcess))
	result := m.runner.Start(TargetProcess)
	m.logStep("start", result)
	n.report(result)
	return result
}

func (m *Manager) restart(n *narrator) Result {
	if result := m.kill(n); !result.Success {
		return result
	}

	m.logger.Debug("waiting before relaunch", "delay", m.restartDelay)
	m.runner.Sleep(m.restartDelay)

	if result := m.start(n); !result.Success {
		return result
	}

	m.logger.Info("shell restarted", "process", TargetProcess)
	return Succeeded(RestartSuccessMessage)
}

func (m *Manager) logStep(op string, result Result) {
	if result.Success {
		m.logger.Debug("step succeeded", "op", op, "message", result.Message)
		return
	}
	m.logger.Info("step failed", "op", op, "message", result.Message)
}

func (m *Manager) narrator() *narrator {
	return &narrator{stdout: m.stdout, stderr: m.stderr}
}

// narrator prints step progress. A nil narrator is silent.
type narrator struct {
	stdout io.Writer
	stderr io.Writer
}

func (n *narrator) heading(msg string) {
	if n == nil {
		return
	}
	fmt.Fprintln(n.stdout, style.Heading.Render(msg))
}

func (n *narrator) notice(msg string) {
	if n == nil {
		return
	}
	fmt.Fprintln(n.stdout, style.Notice.Render(msg))
}

func (n *narrator) report(result Result) {
	if n == nil {
		return
	}
	if result.Success {
		fmt.Fprintln(n.stdout, style.Success.Render(result.Message))
		return
	}
	fmt.Fprintln(n.stderr, style.Failure.Render(result.Message))
}

func (n *narrator) done(msg string) {
	if n == nil {
		return
	}
	fmt.Fprintln(n.stdout, style.Done.Render(msg))
}
