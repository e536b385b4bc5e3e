// Package worker supervises model worker processes and drives their
// lifecycle: allocate endpoint, spawn, connect, init, execute, and the
// strictly-ordered teardown.
package worker

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"modelbridge/internal/domain"
	"modelbridge/internal/infra/batch"
	"modelbridge/internal/infra/channel"
	"modelbridge/internal/infra/socket"
	"modelbridge/internal/infra/telemetry"
)

// Instance owns exactly one worker process and one channel. Instances share
// nothing mutable; the BackendConfig they read is immutable after load.
type Instance struct {
	cfg     domain.InstanceConfig
	logger  *zap.Logger
	metrics domain.Metrics

	socketDir string
	endpoint  string
	proc      *Process
	ch        *channel.Channel
	executor  *batch.Executor

	closed bool
}

type Options struct {
	// RootDir hosts the per-instance socket directories. Empty selects the
	// allocator default.
	RootDir string
	Logger  *zap.Logger
	Metrics domain.Metrics
	Stats   domain.StatsReporter
}

// Start runs the ordered startup sequence: allocate endpoint, spawn worker,
// connect, init. Any failure unwinds whatever exists and is fatal to the
// instance; no partially-started instance is ever returned.
func Start(ctx context.Context, backend domain.BackendConfig, cfg domain.InstanceConfig, opts Options) (*Instance, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("worker").With(
		zap.String(telemetry.FieldInstance, cfg.Name),
		zap.Int32(telemetry.FieldDevice, cfg.DeviceID),
	)
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}

	startTime := time.Now()

	socketDir, endpoint, err := socket.Allocate(opts.RootDir, cfg.Name)
	if err != nil {
		return nil, domain.E(domain.CodeResourceExhausted, "instance.start",
			"failed to create a unique socket endpoint", err)
	}

	proc, err := Spawn(backend, cfg, endpoint, logger)
	if err != nil {
		_ = os.RemoveAll(socketDir)
		metrics.ObserveWorkerStart(cfg.Name, time.Since(startTime), err)
		return nil, err
	}

	connectStart := time.Now()
	ch, err := channel.Connect(endpoint, channel.DefaultLimits(), backend.ConnectTimeout, logger)
	if err == nil {
		err = ch.Init(ctx, cfg.InitParams())
	}
	metrics.ObserveConnect(cfg.Name, time.Since(connectStart), err)
	if err != nil {
		if ch != nil {
			_ = ch.Close()
		}
		_ = proc.Terminate(ctx)
		_ = os.RemoveAll(socketDir)
		metrics.ObserveWorkerStart(cfg.Name, time.Since(startTime), err)
		return nil, err
	}

	metrics.ObserveWorkerStart(cfg.Name, time.Since(startTime), nil)
	metrics.SetWorkerRunning(cfg.Name, true)
	logger.Info("model instance initialized",
		zap.String(telemetry.FieldEndpoint, endpoint),
		zap.String("kind", string(cfg.Kind)),
		zap.Int("pid", proc.PID()))

	inst := &Instance{
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		socketDir: socketDir,
		endpoint:  endpoint,
		proc:      proc,
		ch:        ch,
	}
	inst.executor = batch.New(ch, batch.Options{
		Logger:  logger,
		Stats:   opts.Stats,
		Metrics: metrics,
	})
	return inst, nil
}

// Execute runs one batch through the worker. Calls are synchronous and the
// caller serializes them; concurrent Execute on one instance is out of
// contract.
func (i *Instance) Execute(ctx context.Context, requests []domain.Request) {
	i.executor.Execute(ctx, i.cfg.Name, requests)
}

// Endpoint returns the instance's scheme-prefixed IPC address.
func (i *Instance) Endpoint() string {
	return i.endpoint
}

// Close tears the instance down in the one safe order: notify the worker,
// close the channel and block on its internal cleanup, signal and reap the
// process, then remove the socket directory. Reordering risks transport
// goroutines touching freed resources.
func (i *Instance) Close(ctx context.Context) error {
	if i.closed {
		return nil
	}
	i.closed = true

	if err := i.ch.Fini(ctx); err != nil {
		i.logger.Error("cannot shutdown worker gracefully", zap.Error(err))
	}

	if err := i.ch.Close(); err != nil {
		i.logger.Warn("channel close failed", zap.Error(err))
	}

	if err := i.proc.Terminate(ctx); err != nil {
		i.logger.Warn("worker terminate failed", zap.Error(err))
	}

	if i.socketDir != "" {
		if err := os.RemoveAll(i.socketDir); err != nil {
			i.logger.Warn("socket dir cleanup failed", zap.Error(err))
		}
	}

	i.metrics.SetWorkerRunning(i.cfg.Name, false)
	i.logger.Debug("instance shutdown complete")
	return nil
}
