package worker

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"modelbridge/internal/domain"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worker.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func testInstanceConfig() domain.InstanceConfig {
	return domain.InstanceConfig{
		Name:            "echo_0",
		Kind:            domain.KindCPU,
		ModelName:       "echo",
		ModelVersion:    1,
		ModelRepository: "/models/echo",
	}
}

func TestSpawnUnknownRuntime(t *testing.T) {
	cfg := domain.BackendConfig{WorkerRuntime: "/nonexistent/worker-runtime"}

	_, err := Spawn(cfg, testInstanceConfig(), "unix:///tmp/x.sock", zap.NewNop())
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeSpawnFailed, code)
	assert.Contains(t, err.Error(), "failed to initialize model instance echo_0")
}

func TestTerminateReapsProcess(t *testing.T) {
	cfg := domain.BackendConfig{
		WorkerRuntime:    "/bin/sh",
		WorkerEntryPoint: writeScript(t, "sleep 60"),
	}
	proc, err := Spawn(cfg, testInstanceConfig(), "unix:///tmp/x.sock", zap.NewNop())
	require.NoError(t, err)
	require.NotZero(t, proc.PID())

	require.NoError(t, proc.Terminate(context.Background()))

	// The process is reaped, not left as a zombie.
	err = syscall.Kill(proc.PID(), 0)
	assert.ErrorIs(t, err, syscall.ESRCH)

	// Second call is a no-op.
	require.NoError(t, proc.Terminate(context.Background()))
}

func TestTerminateKillsUnresponsiveProcess(t *testing.T) {
	cfg := domain.BackendConfig{
		WorkerRuntime:    "/bin/sh",
		WorkerEntryPoint: writeScript(t, "trap '' TERM\nsleep 60"),
	}
	proc, err := Spawn(cfg, testInstanceConfig(), "unix:///tmp/x.sock", zap.NewNop())
	require.NoError(t, err)

	// Give the script a moment to install its trap.
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	require.NoError(t, proc.Terminate(ctx))
	assert.ErrorIs(t, syscall.Kill(proc.PID(), 0), syscall.ESRCH)
}

func TestWorkerStderrIsMirrored(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	cfg := domain.BackendConfig{
		WorkerRuntime:    "/bin/sh",
		WorkerEntryPoint: writeScript(t, `echo "worker booted" 1>&2`),
	}
	proc, err := Spawn(cfg, testInstanceConfig(), "unix:///tmp/x.sock", logger)
	require.NoError(t, err)
	require.NoError(t, proc.Terminate(context.Background()))

	// Terminate reaps only after the stderr copy completes, so output the
	// worker wrote before exiting has already been mirrored.
	assert.Equal(t, 1, observed.FilterMessage("worker booted").Len())
}

func TestStderrMirroredUpToExit(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	cfg := domain.BackendConfig{
		WorkerRuntime:    "/bin/sh",
		WorkerEntryPoint: writeScript(t, `echo "line one" 1>&2`+"\n"+`echo "line two" 1>&2`),
	}
	proc, err := Spawn(cfg, testInstanceConfig(), "unix:///tmp/x.sock", logger)
	require.NoError(t, err)
	require.NoError(t, proc.Terminate(context.Background()))

	assert.Equal(t, 1, observed.FilterMessage("line one").Len())
	assert.Equal(t, 1, observed.FilterMessage("line two").Len())
}
