package imu

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidFrameLength is returned when a burst-read buffer is not exactly FrameLength bytes.
	ErrInvalidFrameLength = errors.New("invalid frame length")

	// ErrUnsupportedAxis is returned when a reference axis name is not one of x, y or z.
	ErrUnsupportedAxis = errors.New("unsupported axis")

	// ErrInvalidCalibrationRange is returned when a calibration range is empty or inverted.
	ErrInvalidCalibrationRange = errors.New("invalid calibration range")

	// ErrClosed is returned by accessors called after Close.
	ErrClosed = errors.New("motion sensor is closed")
)

// BusError wraps a failure reported by the bus transport.
type BusError struct {
	Op       string
	Register byte
	Err      error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("%s at register 0x%02X: %v", e.Op, e.Register, e.Err)
}

// Unwrap returns the transport error.
func (e *BusError) Unwrap() error {
	return e.Err
}
