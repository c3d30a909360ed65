// Package mpu9250 registers the MPU-9250 tilt movement sensor. A datasheet for this chip is at
// https://invensense.tdk.com/wp-content/uploads/2015/02/PS-MPU-9250A-01-v1.1.pdf and a
// description of the I2C registers is at
// https://invensense.tdk.com/wp-content/uploads/2015/02/RM-MPU-9250A-00-v1.6.pdf
//
// The accelerometer, temperature and gyroscope registers share the MPU-6050 layout, so the
// same tilt pipeline applies. We do not read the magnetometer.
//
// The chip has two possible I2C addresses, which can be selected by wiring the AD0 pin to either
// hot or ground:
//   - if AD0 is wired to ground, it uses the default I2C address of 0x68
//   - if AD0 is wired to hot, it uses the alternate I2C address of 0x69
//
// If you use the alternate address, your config file for this component must set its
// "use_alt_i2c_address" boolean to true.
package mpu9250

import (
	"go.viam.com/rdk/components/movementsensor"
	"go.viam.com/rdk/resource"

	"invensense-tilt/imu"
	"invensense-tilt/invensense"
)

// Model for viam supported tdk-invensense mpu9250 movement sensor.
var Model = resource.NewModel("viam", "tdk-invensense", "mpu9250")

// Profile describes the MPU-9250: WHO_AM_I reads 0x71 and the die temperature is
// raw/333.87 + 21.
var Profile = invensense.Profile{
	Name:        "MPU9250",
	WhoAmI:      0x71,
	Thermometer: imu.Thermometer{Sensitivity: 333.87, Offset: 21.0},
}

func init() {
	resource.RegisterComponent(movementsensor.API, Model, resource.Registration[movementsensor.MovementSensor, *invensense.Config]{
		Constructor: newMpu9250,
	})
}
