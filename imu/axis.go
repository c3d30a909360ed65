package imu

import (
	"strings"

	"github.com/pkg/errors"
)

// Axis selects which tilt angle and gyro channel Angle and Rate report.
type Axis int

// The reference axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// ParseAxis parses "x", "y" or "z" in any case. The empty string selects AxisX.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	default:
		return AxisX, errors.Wrapf(ErrUnsupportedAxis, "%q", s)
	}
}
