package imu

import "context"

// Gyro is the capability set a heading consumer needs. MotionSensor implements it; tests
// and simulations can substitute their own.
type Gyro interface {
	Angle(ctx context.Context) (float64, error)
	Rate(ctx context.Context) (float64, error)
	Reset(ctx context.Context) error
	Calibrate(ctx context.Context) error
	Close() error
}

var _ Gyro = (*MotionSensor)(nil)
