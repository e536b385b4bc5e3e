// Package worker is the serve-side harness for writing model workers in Go.
// A worker binds its listener on the endpoint handed to it by the bridge
// before the bridge's bounded connect-retry window elapses, then answers the
// Init/Execute/Fini contract until told to stop.
package worker

import (
	"context"
	"math"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"modelbridge/internal/infra/socket"
	workerv1 "modelbridge/pkg/api/worker/v1"
)

// Model is the user-supplied logic behind the RPC boundary.
type Model interface {
	// Initialize receives the flat parameter map sent on Init.
	Initialize(args map[string]string) error

	// Execute handles one batch. The returned slice must be index-aligned
	// with requests; per-request failures are expressed with the Failed
	// marker, never by shrinking the slice.
	Execute(requests []*workerv1.InferenceRequest) []*workerv1.InferenceResponse

	Finalize() error
}

// Serve listens on the given endpoint and blocks until ctx is canceled or a
// termination signal arrives, then stops gracefully.
func Serve(ctx context.Context, endpoint string, model Model, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	path := socket.Path(endpoint)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	_ = os.Remove(path)
	lis, err := net.Listen("unix", path)
	if err != nil {
		return err
	}

	server := grpc.NewServer(
		grpc.MaxRecvMsgSize(math.MaxInt32),
		grpc.MaxSendMsgSize(math.MaxInt32),
	)
	workerv1.RegisterModelWorkerServer(server, &service{model: model, logger: logger})

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		server.GracefulStop()
		<-errCh
		return nil
	}
}

type service struct {
	workerv1.UnimplementedModelWorkerServer

	model  Model
	logger *zap.Logger

	mu          sync.Mutex
	initialized bool
}

func (s *service) Init(_ context.Context, args *workerv1.InitializationArgs) (*workerv1.Empty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return &workerv1.Empty{}, nil
	}
	params := make(map[string]string, len(args.GetArgs()))
	for _, kv := range args.GetArgs() {
		params[kv.GetKey()] = kv.GetValue()
	}
	if err := s.model.Initialize(params); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	s.initialized = true
	s.logger.Info("model initialized",
		zap.String("instance", params["model_instance_name"]),
		zap.String("model", params["model_name"]))
	return &workerv1.Empty{}, nil
}

func (s *service) Execute(_ context.Context, req *workerv1.ExecuteRequest) (*workerv1.ExecuteResponse, error) {
	s.mu.Lock()
	initialized := s.initialized
	s.mu.Unlock()
	if !initialized {
		return nil, status.Error(codes.FailedPrecondition, "worker not initialized")
	}
	responses := s.model.Execute(req.GetRequests())
	return &workerv1.ExecuteResponse{Responses: responses}, nil
}

func (s *service) Fini(context.Context, *workerv1.Empty) (*workerv1.Empty, error) {
	if err := s.model.Finalize(); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &workerv1.Empty{}, nil
}
