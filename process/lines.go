package process

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	apperrors "github.com/kbukum/streamkit/errors"
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/stream"
)

// Lines returns a cold stream that, on each subscription, starts the
// command and reports its stdout line by line. The stream completes when
// the process exits cleanly and fails with a ProcessFailed error when it
// exits non-zero. Unsubscribing cancels the producer context, which sends
// SIGTERM to the process group and escalates to SIGKILL after the
// command's grace period.
func Lines(cmd Command) *stream.Stream[string] {
	return stream.FromContextProducer(func(ctx context.Context, r *stream.Reporter[string]) error {
		log := logger.Get("process")

		if cmd.Binary == "" {
			return apperrors.InvalidConfig("binary", "is required")
		}

		gracePeriod := cmd.GracePeriod
		if gracePeriod == 0 {
			gracePeriod = 5 * time.Second
		}

		c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // dynamic args are the purpose of this package
		c.Dir = cmd.Dir
		c.Env = mergeEnv(cmd.Env)
		if cmd.Stdin != nil {
			c.Stdin = cmd.Stdin
		}
		c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		c.Cancel = func() error {
			if c.Process == nil {
				return nil
			}
			return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
		}
		c.WaitDelay = gracePeriod

		stdout, err := c.StdoutPipe()
		if err != nil {
			return fmt.Errorf("process: stdout pipe: %w", err)
		}

		if err := c.Start(); err != nil {
			return apperrors.ProcessFailed(cmd.Binary, -1, err)
		}

		log.Debug("process started", map[string]interface{}{
			logger.FieldCommand: cmd.Binary,
			logger.FieldPID:     c.Process.Pid,
		})

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if err := r.Report(scanner.Text()); err != nil {
				// Downstream rejected the event; kill the process and
				// surface the rejection as the terminal error.
				_ = c.Cancel()
				_ = c.Wait()
				return err
			}
		}
		scanErr := scanner.Err()

		waitErr := c.Wait()
		exitCode := c.ProcessState.ExitCode()

		switch {
		case ctx.Err() != nil:
			// Cancellation already settled the subscription; the return
			// value lands in the cancelled terminal either way.
			log.Debug("process killed by cancellation", map[string]interface{}{
				logger.FieldCommand: cmd.Binary,
			})
			return ctx.Err()
		case scanErr != nil:
			return fmt.Errorf("process: reading stdout: %w", scanErr)
		case waitErr != nil:
			log.Warn("process exited non-zero", map[string]interface{}{
				logger.FieldCommand:  cmd.Binary,
				logger.FieldExitCode: exitCode,
			})
			return apperrors.ProcessFailed(cmd.Binary, exitCode, waitErr)
		default:
			return nil
		}
	})
}
