package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := E(CodeConnectionFailed, "channel.init", "worker unreachable", nil)
	assert.Equal(t, "channel.init: CONNECTION_FAILED: worker unreachable", err.Error())

	bare := &Error{Code: CodeInternal}
	assert.Equal(t, "INTERNAL", bare.Error())
}

func TestErrorMessageFallsBackToCause(t *testing.T) {
	cause := errors.New("dial refused")
	err := E(CodeConnectionFailed, "channel.init", "", cause)
	assert.Contains(t, err.Error(), "dial refused")
	assert.ErrorIs(t, err, cause)
}

func TestCodeFrom(t *testing.T) {
	err := E(CodeSpawnFailed, "worker.spawn", "no runtime", nil)
	wrapped := fmt.Errorf("starting instance: %w", err)

	code, ok := CodeFrom(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeSpawnFailed, code)

	_, ok = CodeFrom(errors.New("plain"))
	assert.False(t, ok)
	_, ok = CodeFrom(nil)
	assert.False(t, ok)
}

func TestRequestScoped(t *testing.T) {
	assert.True(t, RequestScoped(E(CodeUnsupportedSize, "", "too big", nil)))
	assert.True(t, RequestScoped(E(CodeUnsupportedLocation, "", "gpu", nil)))
	assert.True(t, RequestScoped(E(CodeWorkerError, "", "model raised", nil)))
	assert.False(t, RequestScoped(E(CodeTransportFailed, "", "rpc", nil)))
	assert.False(t, RequestScoped(errors.New("plain")))
}
