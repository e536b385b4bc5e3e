// Package tensor converts between the host's native tensor representation
// and the flat wire form carried over the worker channel.
package tensor

import (
	"fmt"

	"modelbridge/internal/domain"
	workerv1 "modelbridge/pkg/api/worker/v1"
)

// ToWire copies one host input into a wire tensor. The size ceiling is
// checked before any copying so an oversized input never causes a partial
// large allocation.
func ToWire(in domain.InputTensor) (*workerv1.Tensor, error) {
	size := in.ByteSize()
	if size >= domain.MaxWireSize {
		return nil, domain.E(
			domain.CodeUnsupportedSize, "tensor.to_wire",
			fmt.Sprintf("input %q does not support size larger than 2GB, consider partitioning it into multiple inputs", in.Name()),
			nil,
		)
	}
	data := make([]byte, size)
	if err := in.Read(data); err != nil {
		return nil, domain.E(domain.CodeInternal, "tensor.to_wire", "read input "+in.Name(), err)
	}
	shape := in.Shape()
	return &workerv1.Tensor{
		Name:    in.Name(),
		Dtype:   int32(in.DataType()),
		Dims:    append([]int64(nil), shape...),
		RawData: data,
	}, nil
}

// WireByteSize is the destination size implied by a wire tensor: payload
// length for the variable-length BYTES dtype, dtype x shape otherwise.
func WireByteSize(t *workerv1.Tensor) (int64, error) {
	dt := domain.DataType(t.GetDtype())
	if dt == domain.TypeBytes {
		return int64(len(t.GetRawData())), nil
	}
	size, err := domain.ByteSize(dt, t.GetDims())
	if err != nil {
		return 0, domain.E(domain.CodeInvalidArgument, "tensor.byte_size", "output "+t.GetName(), err)
	}
	return size, nil
}

// FromWire copies a wire tensor's payload into a host buffer. The buffer
// must already be sized via WireByteSize and must live in host-visible
// memory; the bridge never binds outputs into accelerator memory.
func FromWire(t *workerv1.Tensor, dst domain.Buffer) error {
	if !dst.MemoryType().HostVisible() {
		return domain.E(
			domain.CodeUnsupportedLocation, "tensor.from_wire",
			"can't create response in GPU memory", nil,
		)
	}
	copy(dst.Bytes(), t.GetRawData())
	return nil
}
