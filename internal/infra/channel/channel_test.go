package channel

import (
	"context"
	"net"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"modelbridge/internal/domain"
	"modelbridge/internal/infra/socket"
	workerv1 "modelbridge/pkg/api/worker/v1"
)

type testServer struct {
	workerv1.UnimplementedModelWorkerServer

	initAttempts  atomic.Int64
	failInitFirst int64
	initArgs      *workerv1.InitializationArgs
}

func (s *testServer) Init(_ context.Context, args *workerv1.InitializationArgs) (*workerv1.Empty, error) {
	n := s.initAttempts.Add(1)
	if n <= s.failInitFirst {
		return nil, status.Error(codes.Unavailable, "not ready")
	}
	s.initArgs = args
	return &workerv1.Empty{}, nil
}

func (s *testServer) Execute(_ context.Context, batch *workerv1.ExecuteRequest) (*workerv1.ExecuteResponse, error) {
	reply := &workerv1.ExecuteResponse{}
	for range batch.GetRequests() {
		reply.Responses = append(reply.Responses, &workerv1.InferenceResponse{})
	}
	return reply, nil
}

func (s *testServer) Fini(context.Context, *workerv1.Empty) (*workerv1.Empty, error) {
	return &workerv1.Empty{}, nil
}

func serveWorker(t *testing.T, srv *testServer) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worker.sock")
	lis, err := net.Listen("unix", path)
	require.NoError(t, err)

	server := grpc.NewServer()
	workerv1.RegisterModelWorkerServer(server, srv)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	return socket.Scheme + path
}

func connect(t *testing.T, endpoint string) *Channel {
	t.Helper()
	ch, err := Connect(endpoint, DefaultLimits(), 10*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })
	return ch
}

func TestInitRetriesUntilWorkerReady(t *testing.T) {
	srv := &testServer{failInitFirst: 2}
	ch := connect(t, serveWorker(t, srv))

	err := ch.Init(context.Background(), map[string]string{"model_name": "m"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), srv.initAttempts.Load())
}

func TestInitDeliversSortedParams(t *testing.T) {
	srv := &testServer{}
	ch := connect(t, serveWorker(t, srv))

	require.NoError(t, ch.Init(context.Background(), map[string]string{
		"model_version": "1",
		"model_name":    "m",
		"model_config":  "{}",
	}))

	require.NotNil(t, srv.initArgs)
	var keys []string
	for _, kv := range srv.initArgs.GetArgs() {
		keys = append(keys, kv.GetKey())
	}
	assert.Equal(t, []string{"model_config", "model_name", "model_version"}, keys)
}

func TestInitGivesUpAfterBoundedAttempts(t *testing.T) {
	srv := &testServer{failInitFirst: ConnectAttempts + 3}
	ch := connect(t, serveWorker(t, srv))

	err := ch.Init(context.Background(), nil)
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeConnectionFailed, code)
	assert.Equal(t, int64(ConnectAttempts), srv.initAttempts.Load())
}

func TestInitReachesLateBoundListener(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker.sock")
	ch, err := Connect(socket.Scheme+path, DefaultLimits(), 60*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	// The worker binds its listener partway through the init window, after
	// the first dial has already failed.
	srv := &testServer{}
	serverReady := make(chan *grpc.Server, 1)
	go func() {
		time.Sleep(150 * time.Millisecond)
		lis, lerr := net.Listen("unix", path)
		if lerr != nil {
			serverReady <- nil
			return
		}
		server := grpc.NewServer()
		workerv1.RegisterModelWorkerServer(server, srv)
		serverReady <- server
		_ = server.Serve(lis)
	}()
	t.Cleanup(func() {
		if server := <-serverReady; server != nil {
			server.Stop()
		}
	})

	require.NoError(t, ch.Init(context.Background(), map[string]string{"model_name": "m"}))
	assert.GreaterOrEqual(t, srv.initAttempts.Load(), int64(1))
}

func TestInitFailsWhenNoWorkerListens(t *testing.T) {
	endpoint := socket.Scheme + filepath.Join(t.TempDir(), "absent.sock")
	ch := connect(t, endpoint)

	err := ch.Init(context.Background(), nil)
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeConnectionFailed, code)
}

func TestInitHonorsContextCancellation(t *testing.T) {
	endpoint := socket.Scheme + filepath.Join(t.TempDir(), "absent.sock")
	ch, err := Connect(endpoint, DefaultLimits(), time.Minute, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = ch.Init(ctx, nil)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestExecuteRoundTrip(t *testing.T) {
	srv := &testServer{}
	ch := connect(t, serveWorker(t, srv))
	require.NoError(t, ch.Init(context.Background(), nil))

	reply, err := ch.Execute(context.Background(), &workerv1.ExecuteRequest{
		Requests: []*workerv1.InferenceRequest{{Id: "a"}, {Id: "b"}},
	})
	require.NoError(t, err)
	assert.Len(t, reply.GetResponses(), 2)

	assert.NoError(t, ch.Fini(context.Background()))
}

func TestExecuteTransportFailure(t *testing.T) {
	endpoint := socket.Scheme + filepath.Join(t.TempDir(), "absent.sock")
	ch := connect(t, endpoint)

	_, err := ch.Execute(context.Background(), &workerv1.ExecuteRequest{})
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeTransportFailed, code)
}
