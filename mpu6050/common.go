// Package mpu6050 registers the MPU-6050 tilt movement sensor. A datasheet for this chip is at
// https://invensense.tdk.com/wp-content/uploads/2015/02/MPU-6000-Datasheet1.pdf and a
// description of the I2C registers is at
// https://invensense.tdk.com/wp-content/uploads/2015/02/MPU-6000-Register-Map1.pdf
//
// The chip has two possible I2C addresses, selected by wiring the AD0 pin:
//   - if AD0 is wired to ground, it uses the default I2C address of 0x68
//   - if AD0 is wired to hot, it uses the alternate I2C address of 0x69
//
// The component is only implemented for Linux systems.
package mpu6050

import (
	"go.viam.com/rdk/components/movementsensor"
	"go.viam.com/rdk/resource"

	"invensense-tilt/imu"
	"invensense-tilt/invensense"
)

// Model for viam supported tdk-invensense mpu6050 movement sensor.
var Model = resource.NewModel("viam", "tdk-invensense", "mpu6050")

// Profile describes the MPU-6050. WHO_AM_I reads 0x68 whatever AD0 is wired to.
var Profile = invensense.Profile{
	Name:        "MPU6050",
	WhoAmI:      0x68,
	Thermometer: imu.DefaultThermometer,
}

func init() {
	resource.RegisterComponent(movementsensor.API, Model, resource.Registration[movementsensor.MovementSensor, *invensense.Config]{
		Constructor: newMpu6050,
	})
}
