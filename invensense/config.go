// Package invensense exposes an imu.MotionSensor as a Viam movement sensor. The chip
// specific packages (mpu6050, mpu9250) register models that construct it with their own
// Profile.
package invensense

import (
	"github.com/pkg/errors"
	"go.viam.com/rdk/resource"

	"invensense-tilt/imu"
)

const (
	defaultAddress   = 0x68
	alternateAddress = 0x69
)

// Config is used to configure the attributes of the chip.
type Config struct {
	I2cBus                 string `json:"i2c_bus"`
	UseAlternateI2CAddress bool   `json:"use_alt_i2c_address,omitempty"`
	// ReferenceAxis is the axis reported by the angle and rate commands: x, y or z.
	ReferenceAxis string `json:"reference_axis,omitempty"`
	// Raw accelerometer span mapped onto [-90, 90] degrees before taking tilt angles.
	TiltRangeMin *float64 `json:"tilt_range_min,omitempty"`
	TiltRangeMax *float64 `json:"tilt_range_max,omitempty"`
	ResetOnStart bool     `json:"reset_on_start,omitempty"`
}

// Validate ensures all parts of the config are valid, and then returns the list of things we
// depend on.
func (conf *Config) Validate(path string) ([]string, error) {
	if conf.I2cBus == "" {
		return nil, resource.NewConfigValidationFieldRequiredError(path, "i2c_bus")
	}
	if _, err := imu.ParseAxis(conf.ReferenceAxis); err != nil {
		return nil, resource.NewConfigValidationError(path, err)
	}
	if err := conf.calibrationRange().Validate(); err != nil {
		return nil, resource.NewConfigValidationError(path, errors.Wrap(err, "tilt_range_min/tilt_range_max"))
	}

	var deps []string
	return deps, nil
}

func (conf *Config) address() byte {
	if conf.UseAlternateI2CAddress {
		return alternateAddress
	}
	return defaultAddress
}

func (conf *Config) calibrationRange() imu.CalibrationRange {
	r := imu.DefaultCalibrationRange
	if conf.TiltRangeMin != nil {
		r.Min = *conf.TiltRangeMin
	}
	if conf.TiltRangeMax != nil {
		r.Max = *conf.TiltRangeMax
	}
	return r
}

// Profile describes the chip-specific parts of a model.
type Profile struct {
	Name string
	// WhoAmI is the expected content of the WHO_AM_I register.
	WhoAmI      byte
	Thermometer imu.Thermometer
}
