// Package hostsim is an in-memory stand-in for the host inference runtime's
// request/response surface. The demo driver runs sample batches through it,
// and tests use it to observe terminal outcomes.
package hostsim

import (
	"fmt"

	"github.com/google/uuid"

	"modelbridge/internal/domain"
)

// Tensor is a fully-materialized input tensor.
type Tensor struct {
	TensorName string
	Dtype      domain.DataType
	Dims       []int64
	Data       []byte

	// SizeOverride, when positive, is reported instead of len(Data); it
	// lets tests present an oversized tensor without allocating it.
	SizeOverride int64
}

func (t *Tensor) Name() string              { return t.TensorName }
func (t *Tensor) DataType() domain.DataType { return t.Dtype }
func (t *Tensor) Shape() []int64            { return t.Dims }

func (t *Tensor) ByteSize() int64 {
	if t.SizeOverride > 0 {
		return t.SizeOverride
	}
	return int64(len(t.Data))
}

func (t *Tensor) Read(dst []byte) error {
	if int64(len(dst)) != int64(len(t.Data)) {
		return fmt.Errorf("destination size %d does not match tensor size %d", len(dst), len(t.Data))
	}
	copy(dst, t.Data)
	return nil
}

var _ domain.InputTensor = (*Tensor)(nil)

// Request implements domain.Request over in-memory tensors.
type Request struct {
	RequestID    string
	Correlation  uint64
	Inputs       []*Tensor
	OutputNames  []string
	ResponseMem  domain.MemoryType
	Released     int
	ResponseSlot *Response
}

// NewRequest builds a request with a fresh uuid id and CPU-resident output
// buffers.
func NewRequest(correlation uint64, inputs []*Tensor, outputs ...string) *Request {
	return &Request{
		RequestID:   uuid.NewString(),
		Correlation: correlation,
		Inputs:      inputs,
		OutputNames: outputs,
		ResponseMem: domain.MemoryCPU,
	}
}

func (r *Request) ID() string                 { return r.RequestID }
func (r *Request) CorrelationID() uint64      { return r.Correlation }
func (r *Request) InputCount() int            { return len(r.Inputs) }
func (r *Request) RequestedOutputs() []string { return r.OutputNames }

func (r *Request) Input(i int) (domain.InputTensor, error) {
	if i < 0 || i >= len(r.Inputs) {
		return nil, fmt.Errorf("input index %d out of range", i)
	}
	return r.Inputs[i], nil
}

func (r *Request) NewResponse() (domain.Response, error) {
	if r.ResponseSlot != nil {
		return nil, fmt.Errorf("response already created for request %s", r.RequestID)
	}
	r.ResponseSlot = &Response{mem: r.ResponseMem}
	return r.ResponseSlot, nil
}

func (r *Request) Release() { r.Released++ }

var _ domain.Request = (*Request)(nil)
