package imu

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/rdk/utils"
)

// FrameLength is the size of the accelerometer, temperature and gyroscope burst read.
const FrameLength = 14

const (
	// Full-scale sensitivities for the power-on ranges (+/- 2g, +/- 250 deg/s).
	accelCountsPerG   = 16384.0
	gyroCountsPerDegS = 131.0
)

// RawFrame holds one burst read of the sensor's data registers as signed counts. The
// layout is big-endian: accel X/Y/Z at offsets 0, 2, 4, temperature at 6 and gyro X/Y/Z
// at 8, 10, 12.
type RawFrame struct {
	AccelX         int16 `json:"ax"`
	AccelY         int16 `json:"ay"`
	AccelZ         int16 `json:"az"`
	TemperatureRaw int16 `json:"temp"`
	GyroX          int16 `json:"gx"`
	GyroY          int16 `json:"gy"`
	GyroZ          int16 `json:"gz"`
}

// ParseFrame decodes a 14-byte burst read. Any bit pattern is accepted; only the length is
// checked.
func ParseFrame(buf []byte) (RawFrame, error) {
	if len(buf) != FrameLength {
		return RawFrame{}, errors.Wrapf(ErrInvalidFrameLength, "got %d bytes, want %d", len(buf), FrameLength)
	}
	return RawFrame{
		AccelX:         utils.Int16FromBytesBE(buf[0:2]),
		AccelY:         utils.Int16FromBytesBE(buf[2:4]),
		AccelZ:         utils.Int16FromBytesBE(buf[4:6]),
		TemperatureRaw: utils.Int16FromBytesBE(buf[6:8]),
		GyroX:          utils.Int16FromBytesBE(buf[8:10]),
		GyroY:          utils.Int16FromBytesBE(buf[10:12]),
		GyroZ:          utils.Int16FromBytesBE(buf[12:14]),
	}, nil
}

// Subtract returns f with baseline removed from the accelerometer and gyroscope channels.
// Each difference wraps like int16 arithmetic. The temperature is copied from f since it
// has no bias calibration.
func (f RawFrame) Subtract(baseline RawFrame) RawFrame {
	return RawFrame{
		AccelX:         f.AccelX - baseline.AccelX,
		AccelY:         f.AccelY - baseline.AccelY,
		AccelZ:         f.AccelZ - baseline.AccelZ,
		TemperatureRaw: f.TemperatureRaw,
		GyroX:          f.GyroX - baseline.GyroX,
		GyroY:          f.GyroY - baseline.GyroY,
		GyroZ:          f.GyroZ - baseline.GyroZ,
	}
}

// TemperatureCelsius converts the temperature channel using the MPU-6050 datasheet formula.
func (f RawFrame) TemperatureCelsius() float64 {
	return DefaultThermometer.Celsius(f.TemperatureRaw)
}

// Acceleration returns the accelerometer channels in g.
func (f RawFrame) Acceleration() r3.Vector {
	return r3.Vector{
		X: float64(f.AccelX) / accelCountsPerG,
		Y: float64(f.AccelY) / accelCountsPerG,
		Z: float64(f.AccelZ) / accelCountsPerG,
	}
}

// AngularRate returns the gyroscope channels in degrees per second.
func (f RawFrame) AngularRate() r3.Vector {
	return r3.Vector{
		X: float64(f.GyroX) / gyroCountsPerDegS,
		Y: float64(f.GyroY) / gyroCountsPerDegS,
		Z: float64(f.GyroZ) / gyroCountsPerDegS,
	}
}

// Thermometer converts raw temperature counts: celsius = raw/Sensitivity + Offset.
type Thermometer struct {
	Sensitivity float64
	Offset      float64
}

// DefaultThermometer is the MPU-6050 conversion.
var DefaultThermometer = Thermometer{Sensitivity: 340, Offset: 36.53}

// Celsius converts a raw temperature reading. A zero Sensitivity uses DefaultThermometer.
func (t Thermometer) Celsius(raw int16) float64 {
	if t.Sensitivity == 0 {
		t = DefaultThermometer
	}
	return float64(raw)/t.Sensitivity + t.Offset
}
