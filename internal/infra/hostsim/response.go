package hostsim

import (
	"fmt"

	"modelbridge/internal/domain"
)

// Buffer is a host-owned output destination with an explicit memory type.
type Buffer struct {
	mem  domain.MemoryType
	data []byte
}

func (b *Buffer) MemoryType() domain.MemoryType { return b.mem }
func (b *Buffer) Bytes() []byte                 { return b.data }

var _ domain.Buffer = (*Buffer)(nil)

// Output is one bound output as the host observed it.
type Output struct {
	Name   string
	Dtype  domain.DataType
	Dims   []int64
	Buffer *Buffer
}

// Response records the single terminal outcome of one request.
type Response struct {
	mem     domain.MemoryType
	Outputs []Output

	Sent bool
	Err  error
}

func (r *Response) OutputBuffer(name string, dtype domain.DataType, shape []int64, byteSize int64) (domain.Buffer, error) {
	if r.Sent {
		return nil, fmt.Errorf("response already sent")
	}
	buf := &Buffer{mem: r.mem, data: make([]byte, byteSize)}
	r.Outputs = append(r.Outputs, Output{
		Name:   name,
		Dtype:  dtype,
		Dims:   append([]int64(nil), shape...),
		Buffer: buf,
	})
	return buf, nil
}

func (r *Response) Send(err error) error {
	if r.Sent {
		return fmt.Errorf("terminal response already sent")
	}
	r.Sent = true
	r.Err = err
	return nil
}

// OutputNamed finds a bound output by name.
func (r *Response) OutputNamed(name string) (Output, bool) {
	for _, out := range r.Outputs {
		if out.Name == name {
			return out, true
		}
	}
	return Output{}, false
}

var _ domain.Response = (*Response)(nil)
