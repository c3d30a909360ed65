package imu

import (
	"context"
	"time"

	"github.com/golang/geo/r3"
)

// Sample is everything derivable from one burst read.
type Sample struct {
	Time               time.Time `json:"time"`
	Axis               string    `json:"axis"`
	Frame              RawFrame  `json:"frame"`
	AngleX             float64   `json:"angle_x"`
	AngleY             float64   `json:"angle_y"`
	AngleZ             float64   `json:"angle_z"`
	TemperatureCelsius float64   `json:"temperature_celsius"`
}

// Angle returns the tilt about axis, or 0 for an unknown axis.
func (s Sample) Angle(axis Axis) float64 {
	switch axis {
	case AxisX:
		return s.AngleX
	case AxisY:
		return s.AngleY
	case AxisZ:
		return s.AngleZ
	default:
		return 0
	}
}

// Rate returns the gyro count for axis, or 0 for an unknown axis.
func (s Sample) Rate(axis Axis) float64 {
	switch axis {
	case AxisX:
		return float64(s.Frame.GyroX)
	case AxisY:
		return float64(s.Frame.GyroY)
	case AxisZ:
		return float64(s.Frame.GyroZ)
	default:
		return 0
	}
}

// Acceleration returns the bias-adjusted acceleration in g.
func (s Sample) Acceleration() r3.Vector {
	return s.Frame.Acceleration()
}

// AngularRate returns the bias-adjusted angular rate in degrees per second.
func (s Sample) AngularRate() r3.Vector {
	return s.Frame.AngularRate()
}

// Sample reads the device once and derives every output from that frame.
func (s *MotionSensor) Sample(ctx context.Context) (Sample, error) {
	frame, err := s.readRaw(ctx)
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		Time:               time.Now(),
		Axis:               s.axis.String(),
		Frame:              frame,
		AngleX:             s.calibration.TiltX(frame),
		AngleY:             s.calibration.TiltY(frame),
		AngleZ:             s.calibration.TiltZ(frame),
		TemperatureCelsius: s.thermometer.Celsius(frame.TemperatureRaw),
	}, nil
}
