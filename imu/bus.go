package imu

import (
	"context"
	"io"
	"math"

	"github.com/pkg/errors"
	"go.viam.com/rdk/components/board/genericlinux/buses"
	"periph.io/x/conn/v3/i2c"
)

// Bus is the register transport the sensor talks through. Implementations are not expected
// to be safe for concurrent use.
type Bus interface {
	// Write stores value in a single register.
	Write(ctx context.Context, register, value byte) error
	// ReadInto fills buf with len(buf) consecutive registers starting at register.
	ReadInto(ctx context.Context, register byte, buf []byte) error
	// Close releases the transport.
	Close() error
}

// i2cBus holds one rdk I2C handle for the lifetime of the sensor.
type i2cBus struct {
	handle buses.I2CHandle
}

// NewI2CBus opens a handle to the device at address on an rdk I2C bus.
func NewI2CBus(bus buses.I2C, address byte) (Bus, error) {
	handle, err := bus.OpenHandle(address)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open I2C handle for address 0x%02X", address)
	}
	return &i2cBus{handle: handle}, nil
}

func (b *i2cBus) Write(ctx context.Context, register, value byte) error {
	return b.handle.WriteByteData(ctx, register, value)
}

func (b *i2cBus) ReadInto(ctx context.Context, register byte, buf []byte) error {
	if len(buf) > math.MaxUint8 {
		return errors.Errorf("can't read %d bytes in one block", len(buf))
	}
	data, err := b.handle.ReadBlockData(ctx, register, uint8(len(buf)))
	if err != nil {
		return err
	}
	if len(data) != len(buf) {
		return errors.Errorf("short read: got %d bytes, want %d", len(data), len(buf))
	}
	copy(buf, data)
	return nil
}

func (b *i2cBus) Close() error {
	return b.handle.Close()
}

// periphBus talks to the device through a periph.io I2C bus.
type periphBus struct {
	dev    *i2c.Dev
	closer io.Closer
}

// NewPeriphBus attaches to the device at address on a periph.io bus. If bus is an
// i2c.BusCloser, Close closes it.
func NewPeriphBus(bus i2c.Bus, address uint16) Bus {
	b := &periphBus{dev: &i2c.Dev{Bus: bus, Addr: address}}
	if c, ok := bus.(i2c.BusCloser); ok {
		b.closer = c
	}
	return b
}

func (b *periphBus) Write(ctx context.Context, register, value byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.dev.Tx([]byte{register, value}, nil)
}

func (b *periphBus) ReadInto(ctx context.Context, register byte, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.dev.Tx([]byte{register}, buf)
}

func (b *periphBus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}
