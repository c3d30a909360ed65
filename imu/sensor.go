// Package imu reads an InvenSense MPU-6050 style accelerometer/gyroscope over a register
// bus and turns its burst reads into tilt angles, gyro rates and temperature.
//
// Every accessor performs exactly one 14-byte burst read; nothing is cached between
// calls and no background sampling is done. A MotionSensor does no locking of its own, so
// callers must not use one from several goroutines at once.
//
// Tilt angles are in radians and are a static estimate from the gravity vector of the
// current frame, not an integral of the gyro. Rates are bias-adjusted gyro counts with no
// unit conversion; see RawFrame.AngularRate for degrees per second.
package imu

import (
	"context"

	"go.viam.com/rdk/logging"
)

// Registers used by the driver.
const (
	RegisterAccelXOutH       = 0x3B
	RegisterPowerManagement1 = 0x6B
	RegisterWhoAmI           = 0x75
)

// Settings configures a MotionSensor. Zero values select the defaults.
type Settings struct {
	Address     byte
	Axis        Axis
	Calibration CalibrationRange
	Thermometer Thermometer
}

// MotionSensor is a bias-calibrated view of one physical device.
type MotionSensor struct {
	address     byte
	bus         Bus
	axis        Axis
	calibration CalibrationRange
	thermometer Thermometer
	logger      logging.Logger

	// baseline is the unadjusted frame captured by the last Reset, zero before that.
	baseline   RawFrame
	calibrated bool
}

// NewMotionSensor wakes the device and returns an uncalibrated sensor. The bus is owned by
// the sensor from here on and is released by Close.
func NewMotionSensor(ctx context.Context, bus Bus, settings Settings, logger logging.Logger) (*MotionSensor, error) {
	calibration := settings.Calibration
	if calibration.IsZero() {
		calibration = DefaultCalibrationRange
	}
	if err := calibration.Validate(); err != nil {
		return nil, err
	}
	thermometer := settings.Thermometer
	if thermometer.Sensitivity == 0 {
		thermometer = DefaultThermometer
	}

	// The chip powers up with the sleep bit set in PWR_MGMT_1; clearing the register wakes it.
	if err := bus.Write(ctx, RegisterPowerManagement1, 0); err != nil {
		return nil, &BusError{Op: "wake", Register: RegisterPowerManagement1, Err: err}
	}
	logger.CDebugf(ctx, "woke motion sensor at address 0x%02X, reference axis %s", settings.Address, settings.Axis)

	return &MotionSensor{
		address:     settings.Address,
		bus:         bus,
		axis:        settings.Axis,
		calibration: calibration,
		thermometer: thermometer,
		logger:      logger,
	}, nil
}

// Address returns the bus address of the device.
func (s *MotionSensor) Address() byte {
	return s.address
}

// Axis returns the reference axis used by Angle and Rate.
func (s *MotionSensor) Axis() Axis {
	return s.axis
}

// Baseline returns the frame subtracted from every reading.
func (s *MotionSensor) Baseline() RawFrame {
	return s.baseline
}

// Calibrated reports whether Reset has captured a baseline.
func (s *MotionSensor) Calibrated() bool {
	return s.calibrated
}

// readRaw performs the single burst read every accessor goes through and returns the frame
// with the baseline removed.
func (s *MotionSensor) readRaw(ctx context.Context) (RawFrame, error) {
	frame, err := s.readUnadjusted(ctx)
	if err != nil {
		return RawFrame{}, err
	}
	return frame.Subtract(s.baseline), nil
}

func (s *MotionSensor) readUnadjusted(ctx context.Context) (RawFrame, error) {
	if s.bus == nil {
		return RawFrame{}, ErrClosed
	}
	buf := make([]byte, FrameLength)
	if err := s.bus.ReadInto(ctx, RegisterAccelXOutH, buf); err != nil {
		return RawFrame{}, &BusError{Op: "burst read", Register: RegisterAccelXOutH, Err: err}
	}
	return ParseFrame(buf)
}

// Reset samples the device once and makes that frame the new baseline, so later readings
// are relative to the current orientation and bias. A failed read leaves the old baseline.
func (s *MotionSensor) Reset(ctx context.Context) error {
	frame, err := s.readUnadjusted(ctx)
	if err != nil {
		return err
	}
	s.baseline = frame
	s.calibrated = true
	s.logger.CDebugf(ctx, "captured baseline %+v", frame)
	return nil
}

// Calibrate does nothing. It exists so MotionSensor satisfies Gyro; the baseline is set
// with Reset.
func (s *MotionSensor) Calibrate(context.Context) error {
	return nil
}

// Close releases the bus. Calls after the first do nothing.
func (s *MotionSensor) Close() error {
	if s.bus == nil {
		return nil
	}
	err := s.bus.Close()
	s.bus = nil
	return err
}

// AngleAlongX returns the tilt about the X axis in radians.
func (s *MotionSensor) AngleAlongX(ctx context.Context) (float64, error) {
	frame, err := s.readRaw(ctx)
	if err != nil {
		return 0, err
	}
	return s.calibration.TiltX(frame), nil
}

// AngleAlongY returns the tilt about the Y axis in radians.
func (s *MotionSensor) AngleAlongY(ctx context.Context) (float64, error) {
	frame, err := s.readRaw(ctx)
	if err != nil {
		return 0, err
	}
	return s.calibration.TiltY(frame), nil
}

// AngleAlongZ returns the tilt about the Z axis in radians.
func (s *MotionSensor) AngleAlongZ(ctx context.Context) (float64, error) {
	frame, err := s.readRaw(ctx)
	if err != nil {
		return 0, err
	}
	return s.calibration.TiltZ(frame), nil
}

// RateAlongX returns the bias-adjusted X gyro count.
func (s *MotionSensor) RateAlongX(ctx context.Context) (float64, error) {
	frame, err := s.readRaw(ctx)
	if err != nil {
		return 0, err
	}
	return float64(frame.GyroX), nil
}

// RateAlongY returns the bias-adjusted Y gyro count.
func (s *MotionSensor) RateAlongY(ctx context.Context) (float64, error) {
	frame, err := s.readRaw(ctx)
	if err != nil {
		return 0, err
	}
	return float64(frame.GyroY), nil
}

// RateAlongZ returns the bias-adjusted Z gyro count.
func (s *MotionSensor) RateAlongZ(ctx context.Context) (float64, error) {
	frame, err := s.readRaw(ctx)
	if err != nil {
		return 0, err
	}
	return float64(frame.GyroZ), nil
}

// TemperatureCelsius returns the die temperature. Temperature is never bias-adjusted.
func (s *MotionSensor) TemperatureCelsius(ctx context.Context) (float64, error) {
	frame, err := s.readRaw(ctx)
	if err != nil {
		return 0, err
	}
	return s.thermometer.Celsius(frame.TemperatureRaw), nil
}

// Angle returns the tilt about the reference axis. An unknown axis yields 0.
func (s *MotionSensor) Angle(ctx context.Context) (float64, error) {
	switch s.axis {
	case AxisX:
		return s.AngleAlongX(ctx)
	case AxisY:
		return s.AngleAlongY(ctx)
	case AxisZ:
		return s.AngleAlongZ(ctx)
	default:
		return 0, nil
	}
}

// Rate returns the gyro count of the reference axis. An unknown axis yields 0.
func (s *MotionSensor) Rate(ctx context.Context) (float64, error) {
	switch s.axis {
	case AxisX:
		return s.RateAlongX(ctx)
	case AxisY:
		return s.RateAlongY(ctx)
	case AxisZ:
		return s.RateAlongZ(ctx)
	default:
		return 0, nil
	}
}

// AllTiltAngles returns the X, Y and Z tilt angles computed from a single frame.
func (s *MotionSensor) AllTiltAngles(ctx context.Context) (x, y, z float64, err error) {
	frame, err := s.readRaw(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	return s.calibration.TiltX(frame), s.calibration.TiltY(frame), s.calibration.TiltZ(frame), nil
}
