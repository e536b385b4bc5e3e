// modelworker is a reference worker bootstrap. The bridge invokes it with
// the fixed argument contract (--socket, --model-path, --instance-name); it
// binds the listener and serves an echo model until terminated.
package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"modelbridge/pkg/worker"
)

type workerOptions struct {
	socket       string
	modelPath    string
	instanceName string
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Fatal("worker failed", zap.Error(err))
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := workerOptions{}

	root := &cobra.Command{
		Use:   "modelworker",
		Short: "Reference model worker for the out-of-process execution bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.With(
				zap.String("instance", opts.instanceName),
				zap.String("model_path", opts.modelPath),
			)
			log.Info("worker starting", zap.String("socket", opts.socket))
			return worker.Serve(context.Background(), opts.socket, worker.EchoModel{}, log)
		},
	}

	root.Flags().StringVar(&opts.socket, "socket", "", "endpoint to bind the worker listener on")
	root.Flags().StringVar(&opts.modelPath, "model-path", "", "path to the model module")
	root.Flags().StringVar(&opts.instanceName, "instance-name", "", "owning model instance name")
	_ = root.MarkFlagRequired("socket")

	return root
}
