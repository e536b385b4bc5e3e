package worker

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"modelbridge/internal/domain"
	"modelbridge/internal/infra/telemetry"
)

// stderrDrainDelay bounds how long a reap waits for the worker's stderr to
// drain after the process exits. A forked child holding the pipe's write end
// must not stall Terminate forever.
const stderrDrainDelay = time.Second

type processCleanup func()

// Process is the supervised worker process handle. It is exclusively owned
// by one instance.
type Process struct {
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	cleanup processCleanup
	logger  *zap.Logger

	reapOnce sync.Once
	reapErr  error
}

// Spawn execs a fresh worker process image running the bootstrap entry point
// with the fixed argument contract: endpoint, model module path, instance
// name. A spawn failure is fatal to instance initialization.
func Spawn(cfg domain.BackendConfig, inst domain.InstanceConfig, endpoint string, logger *zap.Logger) (*Process, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	args := make([]string, 0, 7)
	if cfg.WorkerEntryPoint != "" {
		args = append(args, cfg.WorkerEntryPoint)
	}
	args = append(args,
		"--socket", endpoint,
		"--model-path", inst.ModelPath(),
		"--instance-name", inst.Name,
	)

	startCtx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(startCtx, cfg.WorkerRuntime, args...)
	cleanup := setupProcessHandling(cmd)

	// exec.Cmd owns the stderr copy goroutine and Wait blocks until the copy
	// completes, so output written right before exit is never dropped.
	cmd.Stderr = &stderrMirror{logger: logger.With(
		zap.String(telemetry.FieldLogSource, telemetry.LogSourceWorker),
		zap.String(telemetry.FieldLogStream, "stderr"),
		zap.String(telemetry.FieldInstance, inst.Name),
	)}
	cmd.WaitDelay = stderrDrainDelay

	if err := cmd.Start(); err != nil {
		cancel()
		if cleanup != nil {
			cleanup()
		}
		logger.Error("cannot run worker runtime",
			zap.String("runtime", cfg.WorkerRuntime),
			zap.String("entrypoint", cfg.WorkerEntryPoint),
			zap.String("model_path", inst.ModelPath()),
			zap.String(telemetry.FieldInstance, inst.Name),
			zap.Error(err))
		return nil, domain.E(domain.CodeSpawnFailed, "worker.spawn",
			"failed to initialize model instance "+inst.Name, err)
	}

	return &Process{
		cmd:     cmd,
		cancel:  cancel,
		cleanup: cleanup,
		logger:  logger,
	}, nil
}

// PID exposes the worker's process id for logging and tests.
func (p *Process) PID() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Terminate sends the graceful-termination signal and blocks until the
// process has been reaped, preventing zombies. Safe to call more than once
// and after the process has already exited. An unresponsive process is
// force-killed once ctx expires; errors here are for logging only.
func (p *Process) Terminate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if p.cmd.Process != nil {
		if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
			p.logger.Warn("worker SIGTERM failed", zap.Error(err))
		}
	}
	p.reapOnce.Do(func() {
		done := make(chan error, 1)
		go func() {
			done <- p.cmd.Wait()
		}()
		var err error
		select {
		case err = <-done:
		case <-ctx.Done():
			if p.cmd.Process != nil {
				_ = p.cmd.Process.Kill()
			}
			err = <-done
		}
		p.cancel()
		if p.cleanup != nil {
			p.cleanup()
		}
		p.reapErr = normalizeExitError(err)
	})
	return p.reapErr
}

func normalizeExitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	if errors.Is(err, exec.ErrWaitDelay) {
		return nil
	}
	return err
}

// stderrMirror forwards worker stderr into zap line by line.
type stderrMirror struct {
	logger *zap.Logger
}

func (w *stderrMirror) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
