package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benaskins/stuckbar/internal/config"
	"github.com/benaskins/stuckbar/internal/explorer"
	"github.com/benaskins/stuckbar/internal/logging"
	"github.com/benaskins/stuckbar/internal/platform"
	"github.com/benaskins/stuckbar/internal/style"
	"github.com/benaskins/stuckbar/internal/version"
	"github.com/spf13/cobra"
)

// errOperationFailed marks a failure the narration has already reported.
var errOperationFailed = errors.New("operation failed")

// platformAnnotation marks commands that touch the shell and therefore
// only run on Windows.
const platformAnnotation = "stuckbar/platform"

func platformOnly() map[string]string {
	return map[string]string{platformAnnotation: platform.Supported}
}

// app holds the state shared by every command of one invocation.
type app struct {
	newRunner     func() explorer.Runner
	checkPlatform func() error

	configPath string
	logLevel   string
	noColor    bool

	cfg     *config.Config
	cleanup func()
}

func newApp() *app {
	return &app{
		newRunner:     func() explorer.Runner { return explorer.NewSystemRunner() },
		checkPlatform: platform.Check,
		cleanup:       func() {},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "stuckbar",
		Short: "Fix a stuck Windows taskbar by restarting explorer.exe",
		Long: `stuckbar kills, starts or restarts Windows Explorer (explorer.exe).

Run without a command to restart Explorer. Use 'serve' to expose the
same operations to AI assistants over the Model Context Protocol.`,
		Version:           version.String(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		Annotations:       platformOnly(),
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOp(cmd, (*explorer.Manager).Restart)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath(), "Path to config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newKillCmd(a),
		newStartCmd(a),
		newRestartCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	// Register --version up front; otherwise it is only added after command
	// lookup and a following flag would be parsed as its value.
	root.InitDefaultVersionFlag()
	return root
}

// setup applies the platform gate to commands annotated with platformOnly,
// then loads config and installs logging. The gate comes first so a
// mismatch is reported even when the config file is broken.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	style.Configure(a.noColor)

	if cmd.Annotations[platformAnnotation] == platform.Supported {
		if err := a.checkPlatform(); err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	cleanup, err := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	a.cleanup = cleanup
	return nil
}

func (a *app) manager(cmd *cobra.Command) *explorer.Manager {
	return explorer.NewManager(a.newRunner()).
		WithRestartDelay(a.cfg.RestartDelay).
		WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func (a *app) runOp(cmd *cobra.Command, op func(*explorer.Manager) bool) error {
	if !op(a.manager(cmd)) {
		return errOperationFailed
	}
	return nil
}

// run executes the CLI and returns the process exit code.
func run(a *app, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	a.cleanup()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errOperationFailed) {
		fmt.Fprintln(stderr, style.Fatal.Render(err.Error()))
	}
	return 1
}

func main() {
	os.Exit(run(newApp(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
