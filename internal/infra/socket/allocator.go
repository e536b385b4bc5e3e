// Package socket allocates collision-free unix-socket endpoints for worker
// processes. Uniqueness comes from the atomically-created temp directory,
// never from the socket file name.
package socket

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	socketFileName = "worker.sock"

	// Scheme prefixes every endpoint the allocator hands out.
	Scheme = "unix://"
)

// DefaultRootDir deliberately avoids os.TempDir(): macOS resolves it under
// /var/folders/... which can overflow the 104-108 byte unix socket path cap.
const DefaultRootDir = "/tmp"

// Allocate creates a fresh directory under rootDir and returns it together
// with the scheme-prefixed endpoint for the socket inside it. The directory
// is the caller's to remove once the channel and process are torn down.
func Allocate(rootDir, instanceName string) (string, string, error) {
	if rootDir == "" {
		rootDir = DefaultRootDir
	}
	prefix := sanitizeName(instanceName)
	if prefix == "" {
		prefix = "w"
	}
	// Keep the prefix short so the full socket path stays under the unix
	// path limit.
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	dir, err := os.MkdirTemp(rootDir, prefix+"-")
	if err != nil {
		return "", "", fmt.Errorf("create worker socket dir: %w", err)
	}
	path := filepath.Join(dir, socketFileName)
	if err := os.RemoveAll(path); err != nil {
		return "", "", fmt.Errorf("cleanup worker socket: %w", err)
	}
	return dir, Scheme + path, nil
}

// Path strips the transport scheme from an endpoint, yielding the filesystem
// path usable with net.Listen and net.Dial.
func Path(endpoint string) string {
	return strings.TrimPrefix(endpoint, Scheme)
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, string(os.PathSeparator), "-")
	return name
}
