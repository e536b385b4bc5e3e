// modelbridge is a host-side driver: it spawns a worker instance from a config
// file, pushes one sample batch through it, prints the outcomes, and tears
// the instance down. It exists for integration runs outside a real serving
// host.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"modelbridge/internal/domain"
	"modelbridge/internal/infra/hostsim"
	"modelbridge/internal/infra/telemetry"
	"modelbridge/internal/infra/worker"
)

type runOptions struct {
	configPath string
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := runOptions{configPath: "bridge.yaml"}

	root := &cobra.Command{
		Use:   "modelbridge",
		Short: "Out-of-process model execution bridge driver",
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "path to run config file")
	root.AddCommand(newRunCmd(logger, &opts))
	return root
}

func newRunCmd(logger *zap.Logger, opts *runOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start a worker instance and execute a sample batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return run(ctx, logger, opts.configPath)
		},
	}
}

func run(ctx context.Context, logger *zap.Logger, configPath string) error {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetDefault("instance.name", "model_0")
	v.SetDefault("instance.kind", string(domain.KindCPU))
	v.SetDefault("batch.size", 2)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read run config: %w", err)
	}

	backend, err := domain.NewBackendConfig(v.GetString("backend.artifact-dir"), v.GetStringMapString("backend.cmdline"))
	if err != nil {
		return err
	}

	inst := domain.InstanceConfig{
		Name:            v.GetString("instance.name"),
		Kind:            domain.InstanceKind(v.GetString("instance.kind")),
		DeviceID:        v.GetInt32("instance.device-id"),
		ModelName:       v.GetString("model.name"),
		ModelVersion:    v.GetInt64("model.version"),
		ModelRepository: v.GetString("model.repository"),
		ModelConfigJSON: v.GetString("model.config-json"),
	}

	metrics := telemetry.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	stats := &hostsim.RecordingStats{}

	instance, err := worker.Start(ctx, backend, inst, worker.Options{
		Logger:  logger,
		Metrics: metrics,
		Stats:   stats,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := instance.Close(context.Background()); err != nil {
			logger.Warn("instance close failed", zap.Error(err))
		}
	}()

	requests := sampleBatch(v.GetInt("batch.size"))
	instance.Execute(ctx, toDomain(requests))

	for _, req := range requests {
		resp := req.ResponseSlot
		if resp == nil || !resp.Sent {
			fmt.Printf("%s: no terminal response\n", req.ID())
			continue
		}
		if resp.Err != nil {
			fmt.Printf("%s: error: %v\n", req.ID(), resp.Err)
			continue
		}
		fmt.Printf("%s: ok, %d output(s)\n", req.ID(), len(resp.Outputs))
	}
	return nil
}

// sampleBatch builds identical single-input requests echoing through OUTPUT0.
func sampleBatch(size int) []*hostsim.Request {
	requests := make([]*hostsim.Request, 0, size)
	for i := 0; i < size; i++ {
		in := &hostsim.Tensor{
			TensorName: "INPUT0",
			Dtype:      domain.TypeInt32,
			Dims:       []int64{4},
			Data:       []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0},
		}
		requests = append(requests, hostsim.NewRequest(uint64(i), []*hostsim.Tensor{in}, "OUTPUT0"))
	}
	return requests
}

func toDomain(requests []*hostsim.Request) []domain.Request {
	out := make([]domain.Request, len(requests))
	for i, req := range requests {
		out[i] = req
	}
	return out
}
