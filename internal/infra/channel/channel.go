// Package channel owns the RPC connection between the bridge and one worker
// process.
package channel

import (
	"context"
	"math"
	"net"
	"sort"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"modelbridge/internal/domain"
	"modelbridge/internal/infra/socket"
	workerv1 "modelbridge/pkg/api/worker/v1"
)

// ConnectAttempts bounds the init retry loop that bridges the race between
// "worker process started" and "worker's listener is ready".
const ConnectAttempts = 5

// Limits caps message sizes in both directions.
type Limits struct {
	MaxSendMsgSize int
	MaxRecvMsgSize int
}

func DefaultLimits() Limits {
	return Limits{
		MaxSendMsgSize: math.MaxInt32,
		MaxRecvMsgSize: math.MaxInt32,
	}
}

// Channel is a bounded-size bidirectional connection to one worker. It is
// exclusively owned by one instance and carries a single in-flight call at a
// time; callers serialize Execute.
type Channel struct {
	conn          *grpc.ClientConn
	client        workerv1.ModelWorkerClient
	retryInterval time.Duration
	logger        *zap.Logger
}

// Connect prepares the channel for the given endpoint. gRPC dials lazily, so
// readiness is established by the bounded retry inside Init, not here.
func Connect(endpoint string, limits Limits, retryInterval time.Duration, logger *zap.Logger) (*Channel, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retryInterval <= 0 {
		retryInterval = domain.DefaultConnectTimeout
	}
	path := socket.Path(endpoint)
	conn, err := grpc.NewClient(socket.Scheme+path,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		// Re-dial at the retry interval. The default backoff base (~1s)
		// would leave the channel idle across the whole init window when
		// the interval is shorter, so a listener that binds mid-window
		// would never be reached.
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff: backoff.Config{
				BaseDelay:  retryInterval,
				Multiplier: 1.0,
				Jitter:     0.2,
				MaxDelay:   retryInterval,
			},
			MinConnectTimeout: retryInterval,
		}),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(limits.MaxRecvMsgSize),
			grpc.MaxCallSendMsgSize(limits.MaxSendMsgSize),
		),
		grpc.WithContextDialer(func(dialCtx context.Context, _ string) (net.Conn, error) {
			dialer := &net.Dialer{}
			return dialer.DialContext(dialCtx, "unix", path)
		}),
	)
	if err != nil {
		return nil, domain.E(domain.CodeConnectionFailed, "channel.connect", "worker dial", err)
	}
	return &Channel{
		conn:          conn,
		client:        workerv1.NewModelWorkerClient(conn),
		retryInterval: retryInterval,
		logger:        logger,
	}, nil
}

// Init delivers the flat parameter map, retrying up to ConnectAttempts times
// with the configured interval between attempts. Each attempt waits for the
// channel to become ready under its own interval-sized deadline, so a worker
// whose listener binds partway through the window is still reached. On
// success the worker has acknowledged and Init must not be called again.
func (c *Channel) Init(ctx context.Context, params map[string]string) error {
	args := initArgs(params)

	var lastErr error
	for attempt := 0; attempt < ConnectAttempts; attempt++ {
		attemptStart := time.Now()
		attemptCtx, cancel := context.WithTimeout(ctx, c.retryInterval)
		_, err := c.client.Init(attemptCtx, args, grpc.WaitForReady(true))
		cancel()
		if err == nil {
			c.logger.Debug("worker connection established",
				zap.Int("attempt", attempt+1))
			return nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return domain.E(domain.CodeConnectionFailed, "channel.init", status.Convert(lastErr).Message(), ctx.Err())
		}
		// An attempt that failed fast (a reachable worker returning an
		// error) still waits out its interval before the next try.
		if remaining := c.retryInterval - time.Since(attemptStart); remaining > 0 {
			select {
			case <-ctx.Done():
				return domain.E(domain.CodeConnectionFailed, "channel.init", status.Convert(lastErr).Message(), ctx.Err())
			case <-time.After(remaining):
			}
		}
	}
	return domain.E(domain.CodeConnectionFailed, "channel.init", status.Convert(lastErr).Message(), lastErr)
}

// Execute performs one synchronous batch round trip. A failure here is a
// channel-level failure for the whole batch; the channel itself remains
// usable for subsequent calls and no retry is attempted.
func (c *Channel) Execute(ctx context.Context, batch *workerv1.ExecuteRequest) (*workerv1.ExecuteResponse, error) {
	resp, err := c.client.Execute(ctx, batch)
	if err != nil {
		return nil, domain.E(domain.CodeTransportFailed, "channel.execute", status.Convert(err).Message(), err)
	}
	return resp, nil
}

// Fini is the best-effort graceful shutdown notification.
func (c *Channel) Fini(ctx context.Context) error {
	_, err := c.client.Fini(ctx, &workerv1.Empty{})
	return err
}

// Close tears the connection down and blocks until the transport's internal
// cleanup is finished. It must complete before the worker process is killed
// so no transport goroutine touches the socket mid-teardown.
func (c *Channel) Close() error {
	return c.conn.Close()
}

func initArgs(params map[string]string) *workerv1.InitializationArgs {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := &workerv1.InitializationArgs{Args: make([]*workerv1.KeyValue, 0, len(keys))}
	for _, key := range keys {
		args.Args = append(args.Args, &workerv1.KeyValue{Key: key, Value: params[key]})
	}
	return args
}
