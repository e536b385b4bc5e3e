package socket

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateUnique(t *testing.T) {
	root := t.TempDir()

	dir1, ep1, err := Allocate(root, "model_0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir1) })

	dir2, ep2, err := Allocate(root, "model_0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir2) })

	assert.NotEqual(t, dir1, dir2)
	assert.NotEqual(t, ep1, ep2)

	info, err := os.Stat(dir1)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestAllocateEndpointShape(t *testing.T) {
	root := t.TempDir()
	dir, ep, err := Allocate(root, "My Model/0")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ep, Scheme))
	path := Path(ep)
	assert.True(t, strings.HasPrefix(path, dir))
	assert.True(t, strings.HasSuffix(path, "worker.sock"))
	// Sanitized, lowered, capped prefix.
	assert.Contains(t, dir, "my-model")
}

func TestPathStripsScheme(t *testing.T) {
	assert.Equal(t, "/tmp/x/worker.sock", Path("unix:///tmp/x/worker.sock"))
	assert.Equal(t, "/tmp/x/worker.sock", Path("/tmp/x/worker.sock"))
}
