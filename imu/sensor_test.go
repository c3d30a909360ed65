package imu

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
	"go.viam.com/test"
)

type write struct {
	register, value byte
}

// fakeBus serves frames in order, repeating the last one once the queue runs dry.
type fakeBus struct {
	frames   []RawFrame
	writes   []write
	reads    int
	readErr  error
	writeErr error
	closed   int
}

func (b *fakeBus) Write(_ context.Context, register, value byte) error {
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes = append(b.writes, write{register, value})
	return nil
}

func (b *fakeBus) ReadInto(_ context.Context, register byte, buf []byte) error {
	if b.readErr != nil {
		return b.readErr
	}
	if register != RegisterAccelXOutH || len(buf) != FrameLength {
		return errors.Errorf("unexpected read of %d bytes at 0x%02X", len(buf), register)
	}
	frame := b.frames[0]
	if len(b.frames) > 1 {
		b.frames = b.frames[1:]
	}
	b.reads++
	copy(buf, frameBytes(frame))
	return nil
}

func (b *fakeBus) Close() error {
	b.closed++
	return nil
}

func newTestSensor(t *testing.T, axis Axis, frames ...RawFrame) (*MotionSensor, *fakeBus) {
	t.Helper()
	bus := &fakeBus{frames: frames}
	sensor, err := NewMotionSensor(context.Background(), bus, Settings{Address: 0x68, Axis: axis}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return sensor, bus
}

func TestNewMotionSensor(t *testing.T) {
	sensor, bus := newTestSensor(t, AxisX, RawFrame{})
	test.That(t, bus.writes, test.ShouldResemble, []write{{RegisterPowerManagement1, 0}})
	test.That(t, bus.reads, test.ShouldEqual, 0)
	test.That(t, sensor.Address(), test.ShouldEqual, byte(0x68))
	test.That(t, sensor.Axis(), test.ShouldEqual, AxisX)
	test.That(t, sensor.Calibrated(), test.ShouldBeFalse)
	test.That(t, sensor.Baseline(), test.ShouldResemble, RawFrame{})

	t.Run("wake failure", func(t *testing.T) {
		wakeErr := errors.New("nack")
		_, err := NewMotionSensor(context.Background(), &fakeBus{writeErr: wakeErr}, Settings{}, logging.NewTestLogger(t))
		var busErr *BusError
		test.That(t, errors.As(err, &busErr), test.ShouldBeTrue)
		test.That(t, busErr.Register, test.ShouldEqual, byte(RegisterPowerManagement1))
		test.That(t, errors.Is(err, wakeErr), test.ShouldBeTrue)
	})

	t.Run("bad calibration range", func(t *testing.T) {
		bus := &fakeBus{}
		settings := Settings{Calibration: CalibrationRange{Min: 5, Max: 1}}
		_, err := NewMotionSensor(context.Background(), bus, settings, logging.NewTestLogger(t))
		test.That(t, errors.Is(err, ErrInvalidCalibrationRange), test.ShouldBeTrue)
		test.That(t, bus.writes, test.ShouldBeEmpty)
	})
}

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	sensor, bus := newTestSensor(t, AxisX, RawFrame{AccelX: 300, AccelY: 300, AccelZ: 300, GyroX: 10, GyroY: 20, GyroZ: 30})

	rate, err := sensor.RateAlongX(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rate, test.ShouldEqual, 10.0)

	rate, err = sensor.RateAlongY(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rate, test.ShouldEqual, 20.0)

	rate, err = sensor.RateAlongZ(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rate, test.ShouldEqual, 30.0)

	temp, err := sensor.TemperatureCelsius(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, temp, test.ShouldAlmostEqual, 36.53)

	test.That(t, bus.reads, test.ShouldEqual, 4)

	angle, err := sensor.AngleAlongX(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, angle, test.ShouldAlmostEqual, DefaultCalibrationRange.TiltX(RawFrame{AccelX: 300, AccelY: 300, AccelZ: 300}))
	test.That(t, bus.reads, test.ShouldEqual, 5)
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	frame := RawFrame{AccelX: 280, AccelY: 390, AccelZ: 300, GyroX: -5, GyroY: 17, GyroZ: 99}

	for _, tc := range []struct {
		axis  Axis
		angle func(*MotionSensor, context.Context) (float64, error)
		rate  float64
	}{
		{AxisX, (*MotionSensor).AngleAlongX, -5},
		{AxisY, (*MotionSensor).AngleAlongY, 17},
		{AxisZ, (*MotionSensor).AngleAlongZ, 99},
	} {
		t.Run(tc.axis.String(), func(t *testing.T) {
			sensor, _ := newTestSensor(t, tc.axis, frame)

			got, err := sensor.Angle(ctx)
			test.That(t, err, test.ShouldBeNil)
			want, err := tc.angle(sensor, ctx)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, got, test.ShouldEqual, want)

			rate, err := sensor.Rate(ctx)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, rate, test.ShouldEqual, tc.rate)
		})
	}

	t.Run("unknown axis reports zero", func(t *testing.T) {
		sensor, bus := newTestSensor(t, Axis(7), frame)
		angle, err := sensor.Angle(ctx)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, angle, test.ShouldEqual, 0.0)
		rate, err := sensor.Rate(ctx)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, rate, test.ShouldEqual, 0.0)
		test.That(t, bus.reads, test.ShouldEqual, 0)
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	rest := RawFrame{AccelX: 120, AccelY: -45, AccelZ: 16200, TemperatureRaw: -1200, GyroX: 3, GyroY: -7, GyroZ: 11}
	sensor, bus := newTestSensor(t, AxisY, rest)

	test.That(t, sensor.Reset(ctx), test.ShouldBeNil)
	test.That(t, sensor.Calibrated(), test.ShouldBeTrue)
	test.That(t, sensor.Baseline(), test.ShouldResemble, rest)

	sample, err := sensor.Sample(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sample.Frame, test.ShouldResemble, RawFrame{TemperatureRaw: -1200})
	test.That(t, bus.reads, test.ShouldEqual, 2)

	t.Run("baseline is the unadjusted frame", func(t *testing.T) {
		moved := RawFrame{AccelX: 130, AccelY: -45, AccelZ: 16200, GyroX: 4, GyroY: -7, GyroZ: 11}
		bus.frames = []RawFrame{moved}
		test.That(t, sensor.Reset(ctx), test.ShouldBeNil)
		test.That(t, sensor.Baseline(), test.ShouldResemble, moved)
	})

	t.Run("failed read keeps the old baseline", func(t *testing.T) {
		before := sensor.Baseline()
		bus.readErr = errors.New("timeout")
		err := sensor.Reset(ctx)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, sensor.Baseline(), test.ShouldResemble, before)
		bus.readErr = nil
	})
}

func TestCalibrateIsNoop(t *testing.T) {
	ctx := context.Background()
	frame := RawFrame{AccelX: 280, AccelY: 390, AccelZ: 300, GyroX: 8}
	plain, _ := newTestSensor(t, AxisZ, frame)
	calibrated, bus := newTestSensor(t, AxisZ, frame)

	test.That(t, calibrated.Calibrate(ctx), test.ShouldBeNil)
	test.That(t, bus.reads, test.ShouldEqual, 0)
	test.That(t, bus.writes, test.ShouldHaveLength, 1)
	test.That(t, calibrated.Calibrated(), test.ShouldBeFalse)

	a1, err := plain.Angle(ctx)
	test.That(t, err, test.ShouldBeNil)
	a2, err := calibrated.Angle(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a2, test.ShouldEqual, a1)

	r1, err := plain.Rate(ctx)
	test.That(t, err, test.ShouldBeNil)
	r2, err := calibrated.Rate(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r2, test.ShouldEqual, r1)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	sensor, bus := newTestSensor(t, AxisX, RawFrame{})

	test.That(t, sensor.Close(), test.ShouldBeNil)
	test.That(t, sensor.Close(), test.ShouldBeNil)
	test.That(t, bus.closed, test.ShouldEqual, 1)

	_, err := sensor.AngleAlongX(ctx)
	test.That(t, errors.Is(err, ErrClosed), test.ShouldBeTrue)
	test.That(t, errors.Is(sensor.Reset(ctx), ErrClosed), test.ShouldBeTrue)
}

func TestBusErrorPropagates(t *testing.T) {
	ctx := context.Background()
	sensor, bus := newTestSensor(t, AxisX, RawFrame{})
	readErr := errors.New("device not responding")
	bus.readErr = readErr

	for _, read := range []func(context.Context) (float64, error){
		sensor.Angle, sensor.Rate, sensor.AngleAlongY, sensor.RateAlongZ, sensor.TemperatureCelsius,
	} {
		_, err := read(ctx)
		var busErr *BusError
		test.That(t, errors.As(err, &busErr), test.ShouldBeTrue)
		test.That(t, busErr.Register, test.ShouldEqual, byte(RegisterAccelXOutH))
		test.That(t, errors.Is(err, readErr), test.ShouldBeTrue)
	}
}

func TestAllTiltAngles(t *testing.T) {
	ctx := context.Background()
	frame := RawFrame{AccelX: 280, AccelY: 390, AccelZ: 300}
	sensor, bus := newTestSensor(t, AxisX, frame)

	x, y, z, err := sensor.AllTiltAngles(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bus.reads, test.ShouldEqual, 1)

	wantX, _ := sensor.AngleAlongX(ctx)
	wantY, _ := sensor.AngleAlongY(ctx)
	wantZ, _ := sensor.AngleAlongZ(ctx)
	test.That(t, x, test.ShouldEqual, wantX)
	test.That(t, y, test.ShouldEqual, wantY)
	test.That(t, z, test.ShouldEqual, wantZ)
}

func TestSample(t *testing.T) {
	ctx := context.Background()
	frame := RawFrame{AccelX: 280, AccelY: 390, AccelZ: 300, TemperatureRaw: 340, GyroX: 131, GyroY: 20, GyroZ: 30}
	bus := &fakeBus{frames: []RawFrame{frame}}
	settings := Settings{Axis: AxisY, Thermometer: Thermometer{Sensitivity: 340, Offset: 20}}
	sensor, err := NewMotionSensor(ctx, bus, settings, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	sample, err := sensor.Sample(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bus.reads, test.ShouldEqual, 1)
	test.That(t, sample.Axis, test.ShouldEqual, "y")
	test.That(t, sample.TemperatureCelsius, test.ShouldAlmostEqual, 21.0)
	test.That(t, sample.Angle(AxisY), test.ShouldEqual, DefaultCalibrationRange.TiltY(frame))
	test.That(t, sample.Rate(AxisY), test.ShouldEqual, 20.0)
	test.That(t, sample.Rate(Axis(5)), test.ShouldEqual, 0.0)
	test.That(t, sample.AngularRate().X, test.ShouldAlmostEqual, 1.0)
	test.That(t, math.IsNaN(sample.AngleZ), test.ShouldBeFalse)
}
