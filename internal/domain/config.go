package domain

import (
	"path/filepath"
	"strconv"
	"time"
)

const (
	// DefaultWorkerRuntime is resolved from $PATH when no override is given.
	DefaultWorkerRuntime = "python3"

	// DefaultConnectTimeout separates the bounded connect attempts.
	DefaultConnectTimeout = 2000 * time.Millisecond

	// Config keys accepted from the host's flat cmdline bag.
	ConfigKeyWorkerRuntime    = "worker-runtime"
	ConfigKeyWorkerEntryPoint = "worker-entrypoint"
	ConfigKeyConnectTimeout   = "connect-timeout-milliseconds"

	// DefaultEntryPointName is the bootstrap script looked up inside the
	// backend artifact directory when no explicit entry point is configured.
	DefaultEntryPointName = "startup.py"
)

// BackendConfig is read once at plugin load and shared read-only by every
// instance.
type BackendConfig struct {
	// WorkerRuntime is the executable that hosts worker processes.
	WorkerRuntime string

	// WorkerEntryPoint is the bootstrap script handed to the runtime as its
	// first argument. Empty means the runtime is the worker binary itself.
	WorkerEntryPoint string

	// ConnectTimeout is the interval between connect attempts.
	ConnectTimeout time.Duration
}

// NewBackendConfig builds the immutable backend configuration from the
// backend artifact directory and the host's flat key/value cmdline bag.
// Unknown keys are ignored; they belong to the collaborator layer.
func NewBackendConfig(artifactDir string, cmdline map[string]string) (BackendConfig, error) {
	cfg := BackendConfig{
		WorkerRuntime:  DefaultWorkerRuntime,
		ConnectTimeout: DefaultConnectTimeout,
	}
	if artifactDir != "" {
		cfg.WorkerEntryPoint = filepath.Join(artifactDir, DefaultEntryPointName)
	}
	if v, ok := cmdline[ConfigKeyWorkerRuntime]; ok && v != "" {
		cfg.WorkerRuntime = v
	}
	if v, ok := cmdline[ConfigKeyWorkerEntryPoint]; ok {
		cfg.WorkerEntryPoint = v
	}
	if v, ok := cmdline[ConfigKeyConnectTimeout]; ok {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return BackendConfig{}, E(CodeInvalidArgument, "config.parse", "invalid "+ConfigKeyConnectTimeout, err)
		}
		cfg.ConnectTimeout = time.Duration(ms) * time.Millisecond
	}
	return cfg, nil
}

// InstanceKind tags the execution context an instance was placed on.
type InstanceKind string

const (
	KindCPU  InstanceKind = "KIND_CPU"
	KindGPU  InstanceKind = "KIND_GPU"
	KindAuto InstanceKind = "KIND_AUTO"
)

// InstanceConfig identifies one model instance and the artifacts it runs.
type InstanceConfig struct {
	Name            string
	Kind            InstanceKind
	DeviceID        int32
	ModelName       string
	ModelVersion    int64
	ModelRepository string

	// ModelConfigJSON is the serialized model configuration blob forwarded
	// verbatim to the worker at init time.
	ModelConfigJSON string
}

// ModelPath is the conventional location of the model module inside the
// versioned repository layout.
func (c InstanceConfig) ModelPath() string {
	return filepath.Join(c.ModelRepository, strconv.FormatInt(c.ModelVersion, 10), "model.py")
}

// InitParams is the flat parameter map sent on the Init call.
func (c InstanceConfig) InitParams() map[string]string {
	return map[string]string{
		"model_config":             c.ModelConfigJSON,
		"model_instance_kind":      string(c.Kind),
		"model_instance_name":      c.Name,
		"model_instance_device_id": strconv.FormatInt(int64(c.DeviceID), 10),
		"model_repository":         c.ModelRepository,
		"model_version":            strconv.FormatInt(c.ModelVersion, 10),
		"model_name":               c.ModelName,
	}
}
