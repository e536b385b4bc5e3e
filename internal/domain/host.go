package domain

import "time"

// MemoryType distinguishes host-visible buffers from device-resident ones.
type MemoryType int

const (
	MemoryCPU MemoryType = iota
	MemoryCPUPinned
	MemoryGPU
)

func (m MemoryType) String() string {
	switch m {
	case MemoryCPU:
		return "CPU"
	case MemoryCPUPinned:
		return "CPU_PINNED"
	case MemoryGPU:
		return "GPU"
	default:
		return "UNKNOWN"
	}
}

// HostVisible reports whether the bridge may copy into the buffer directly.
func (m MemoryType) HostVisible() bool {
	return m == MemoryCPU || m == MemoryCPUPinned
}

// InputTensor is one input of a host request. Read gathers the full raw
// contents into dst, which the caller sizes from ByteSize.
type InputTensor interface {
	Name() string
	DataType() DataType
	Shape() []int64
	ByteSize() int64
	Read(dst []byte) error
}

// Request is the host runtime's view of a single inference request. The
// bridge never outlives one execute call holding a Request.
type Request interface {
	ID() string
	CorrelationID() uint64
	InputCount() int
	Input(i int) (InputTensor, error)
	RequestedOutputs() []string

	// NewResponse creates the terminal response slot for this request.
	NewResponse() (Response, error)

	// Release returns the request to the host. Called exactly once, after
	// the terminal response has been produced.
	Release()
}

// Response is the single terminal outcome slot for one request. Send is
// called exactly once: with nil for success, or with the collapsed error.
type Response interface {
	// OutputBuffer allocates a host-provided destination for a named output.
	OutputBuffer(name string, dtype DataType, shape []int64, byteSize int64) (Buffer, error)

	Send(err error) error
}

// Buffer is a host-owned destination for output bytes.
type Buffer interface {
	MemoryType() MemoryType
	Bytes() []byte
}

// StatsReporter receives the four-timestamp performance counters. Reporting
// failures are logged by callers, never escalated.
type StatsReporter interface {
	ReportRequest(req Request, success bool, batchStart, computeStart, computeEnd, batchEnd time.Time) error
	ReportBatch(batchSize int, batchStart, computeStart, computeEnd, batchEnd time.Time) error
}

// Metrics is the process-level instrumentation surface.
type Metrics interface {
	ObserveWorkerStart(instance string, d time.Duration, err error)
	ObserveConnect(instance string, d time.Duration, err error)
	ObserveExecute(instance string, batchSize int, d time.Duration, err error)
	SetWorkerRunning(instance string, running bool)
}
