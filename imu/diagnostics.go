package imu

import (
	"context"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/utils"
)

// Diagnostics formats samples for a human watching the logs.
type Diagnostics struct {
	logger logging.Logger
}

// NewDiagnostics returns a Diagnostics writing at info level to logger.
func NewDiagnostics(logger logging.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

// LogAngles logs the three tilt angles in degrees.
func (d *Diagnostics) LogAngles(ctx context.Context, s Sample) {
	d.logger.CInfof(ctx, "angles: %.2f, %.2f, %.2f",
		utils.RadToDeg(s.AngleX), utils.RadToDeg(s.AngleY), utils.RadToDeg(s.AngleZ))
}

// LogAccelData logs the raw accelerometer counts.
func (d *Diagnostics) LogAccelData(ctx context.Context, s Sample) {
	d.logger.CInfof(ctx, "acc x: %d acc y: %d acc z: %d", s.Frame.AccelX, s.Frame.AccelY, s.Frame.AccelZ)
}

// LogGyroData logs the raw gyroscope counts.
func (d *Diagnostics) LogGyroData(ctx context.Context, s Sample) {
	d.logger.CInfof(ctx, "gyro x: %d gyro y: %d gyro z: %d", s.Frame.GyroX, s.Frame.GyroY, s.Frame.GyroZ)
}

// LogTemperature logs the die temperature.
func (d *Diagnostics) LogTemperature(ctx context.Context, s Sample) {
	d.logger.CInfof(ctx, "temperature: %.2f C", s.TemperatureCelsius)
}

// LogAllData logs acceleration in g, temperature and angular rate in degrees per second.
func (d *Diagnostics) LogAllData(ctx context.Context, s Sample) {
	acc := s.Acceleration()
	rate := s.AngularRate()
	d.logger.CInfof(ctx, "acc: (%.3f, %.3f, %.3f) temp: %.2f gyro: (%.2f, %.2f, %.2f)",
		acc.X, acc.Y, acc.Z, s.TemperatureCelsius, rate.X, rate.Y, rate.Z)
}
