package domain

import (
	"fmt"
	"math"
)

// DataType carries the host runtime's numeric tensor data-type tags. The
// values travel on the wire unchanged, so they must never be renumbered.
type DataType int32

const (
	TypeInvalid DataType = iota
	TypeBool
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFP16
	TypeFP32
	TypeFP64
	// TypeBytes is the variable-length dtype: its byte size comes from the
	// payload itself, not from the shape.
	TypeBytes
)

// MaxWireSize is the per-message transfer ceiling in both directions. Any
// single tensor at or above it is rejected before serialization.
const MaxWireSize = int64(math.MaxInt32)

var dtypeNames = map[DataType]string{
	TypeInvalid: "INVALID",
	TypeBool:    "BOOL",
	TypeUint8:   "UINT8",
	TypeUint16:  "UINT16",
	TypeUint32:  "UINT32",
	TypeUint64:  "UINT64",
	TypeInt8:    "INT8",
	TypeInt16:   "INT16",
	TypeInt32:   "INT32",
	TypeInt64:   "INT64",
	TypeFP16:    "FP16",
	TypeFP32:    "FP32",
	TypeFP64:    "FP64",
	TypeBytes:   "BYTES",
}

func (d DataType) String() string {
	if name, ok := dtypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DATATYPE(%d)", int32(d))
}

// ElementSize returns the fixed per-element width in bytes. The second
// return is false for TypeBytes and unknown tags.
func (d DataType) ElementSize() (int64, bool) {
	switch d {
	case TypeBool, TypeUint8, TypeInt8:
		return 1, true
	case TypeUint16, TypeInt16, TypeFP16:
		return 2, true
	case TypeUint32, TypeInt32, TypeFP32:
		return 4, true
	case TypeUint64, TypeInt64, TypeFP64:
		return 8, true
	default:
		return 0, false
	}
}

// ByteSize computes product(shape) * element width for fixed-width dtypes.
// TypeBytes has no shape-implied size and is rejected here; callers take the
// payload length instead.
func ByteSize(d DataType, shape []int64) (int64, error) {
	width, ok := d.ElementSize()
	if !ok {
		return 0, fmt.Errorf("no fixed element size for dtype %s", d)
	}
	size := width
	for _, dim := range shape {
		if dim < 0 {
			return 0, fmt.Errorf("negative dimension %d in shape", dim)
		}
		size *= dim
	}
	return size, nil
}
