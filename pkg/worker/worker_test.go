package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"modelbridge/internal/infra/channel"
	"modelbridge/internal/infra/socket"
	workerv1 "modelbridge/pkg/api/worker/v1"
)

func serveEcho(t *testing.T) string {
	t.Helper()
	endpoint := socket.Scheme + filepath.Join(t.TempDir(), "worker.sock")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, endpoint, EchoModel{}, zaptest.NewLogger(t))
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("worker did not stop after context cancellation")
		}
	})
	return endpoint
}

func dialWorker(t *testing.T, endpoint string) *channel.Channel {
	t.Helper()
	ch, err := channel.Connect(endpoint, channel.DefaultLimits(), 50*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })
	return ch
}

func TestServeEchoContract(t *testing.T) {
	endpoint := serveEcho(t)
	ch := dialWorker(t, endpoint)

	require.NoError(t, ch.Init(context.Background(), map[string]string{
		"model_instance_name": "echo_0",
		"model_name":          "echo",
	}))

	reply, err := ch.Execute(context.Background(), &workerv1.ExecuteRequest{
		Requests: []*workerv1.InferenceRequest{{
			Id: "r1",
			Inputs: []*workerv1.Tensor{{
				Name:    "INPUT0",
				Dtype:   3,
				Dims:    []int64{2},
				RawData: []byte{1, 2},
			}},
			RequestedOutputNames: []string{"OUTPUT0", "OUTPUT1"},
		}},
	})
	require.NoError(t, err)
	require.Len(t, reply.GetResponses(), 1)

	// Pairwise echo: one input, so only the first requested output exists.
	outs := reply.GetResponses()[0].GetOutputs()
	require.Len(t, outs, 1)
	assert.Equal(t, "OUTPUT0", outs[0].GetName())
	assert.Equal(t, []byte{1, 2}, outs[0].GetRawData())

	assert.NoError(t, ch.Fini(context.Background()))
}

func TestServeRejectsExecuteBeforeInit(t *testing.T) {
	endpoint := serveEcho(t)
	ch := dialWorker(t, endpoint)

	_, err := ch.Execute(context.Background(), &workerv1.ExecuteRequest{})
	require.Error(t, err)

	st := status.Convert(unwrapAll(err))
	assert.Equal(t, codes.FailedPrecondition, st.Code())
}

func unwrapAll(err error) error {
	type causer interface{ Unwrap() error }
	for {
		c, ok := err.(causer)
		if !ok || c.Unwrap() == nil {
			return err
		}
		err = c.Unwrap()
	}
}
