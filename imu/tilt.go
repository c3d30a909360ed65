package imu

import (
	"math"

	"github.com/pkg/errors"
)

// Output span of the accelerometer remap, in degrees.
const (
	tiltMin = -90.0
	tiltMax = 90.0
)

// CalibrationRange is the raw accelerometer span that is stretched onto [-90, 90] before the
// tilt angle is taken. The zero value selects DefaultCalibrationRange.
type CalibrationRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultCalibrationRange is the empirical span measured on the reference MPU-6050 board.
var DefaultCalibrationRange = CalibrationRange{Min: 265, Max: 402}

// IsZero reports whether r is unset.
func (r CalibrationRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Validate checks that the range is non-empty.
func (r CalibrationRange) Validate() error {
	if r.Min >= r.Max {
		return errors.Wrapf(ErrInvalidCalibrationRange, "min %v must be below max %v", r.Min, r.Max)
	}
	return nil
}

func (r CalibrationRange) remap(raw int16) float64 {
	return (float64(raw)-r.Min)*(tiltMax-tiltMin)/(r.Max-r.Min) + tiltMin
}

// tilt returns atan2(-map(num), -map(den)) + pi. Negating with 0 - x keeps a level reading
// at +0 so that it lands on pi rather than wrapping to 0.
func (r CalibrationRange) tilt(num, den int16) float64 {
	return math.Atan2(0-r.remap(num), 0-r.remap(den)) + math.Pi
}

// TiltX is the tilt about the X axis, from the Y and Z accelerometer channels.
func (r CalibrationRange) TiltX(f RawFrame) float64 {
	return r.tilt(f.AccelY, f.AccelZ)
}

// TiltY is the tilt about the Y axis, from the X and Z accelerometer channels.
func (r CalibrationRange) TiltY(f RawFrame) float64 {
	return r.tilt(f.AccelX, f.AccelZ)
}

// TiltZ is the tilt about the Z axis, from the Y and X accelerometer channels.
func (r CalibrationRange) TiltZ(f RawFrame) float64 {
	return r.tilt(f.AccelY, f.AccelX)
}
