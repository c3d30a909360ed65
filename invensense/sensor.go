package invensense

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang/geo/r3"
	geo "github.com/kellydunn/golang-geo"
	"github.com/pkg/errors"
	"go.viam.com/rdk/components/board/genericlinux/buses"
	"go.viam.com/rdk/components/movementsensor"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/spatialmath"

	"invensense-tilt/imu"
)

const standardGravity = 9.81 // m/sec/sec

// DoCommand keys.
const (
	resetCommand     = "reset"
	calibrateCommand = "calibrate"
	angleCommand     = "angle"
	rateCommand      = "rate"
)

type tiltSensor struct {
	resource.Named
	resource.AlwaysRebuild

	// imu.MotionSensor does no locking of its own; mu serializes every call into it.
	mu      sync.Mutex
	sensor *imu.MotionSensor
	logger logging.Logger
}

func addressReadError(err error, address byte, bus string) error {
	msg := fmt.Sprintf("can't read from I2C address %d on bus %s", address, bus)
	return errors.Wrap(err, msg)
}

func unexpectedDeviceError(name string, address, whoAmI byte) error {
	return errors.Errorf("unexpected non-%s device at address %d: response '%d'", name, address, whoAmI)
}

// NewMovementSensor builds the component on an already opened I2C bus. The model packages
// open the bus; tests inject a mock one.
func NewMovementSensor(
	ctx context.Context,
	conf resource.Config,
	logger logging.Logger,
	bus buses.I2C,
	profile Profile,
) (movementsensor.MovementSensor, error) {
	newConf, err := resource.NativeConfig[*Config](conf)
	if err != nil {
		return nil, err
	}
	axis, err := imu.ParseAxis(newConf.ReferenceAxis)
	if err != nil {
		return nil, err
	}

	address := newConf.address()
	logger.CDebugf(ctx, "Using address %d for %s sensor", address, profile.Name)

	transport, err := imu.NewI2CBus(bus, address)
	if err != nil {
		return nil, addressReadError(err, address, newConf.I2cBus)
	}

	// Reading WHO_AM_I checks that we can talk to the chip and that it is the one we expect.
	whoAmI := make([]byte, 1)
	if err := transport.ReadInto(ctx, imu.RegisterWhoAmI, whoAmI); err != nil {
		closeQuietly(ctx, transport, logger)
		return nil, addressReadError(err, address, newConf.I2cBus)
	}
	if whoAmI[0] != profile.WhoAmI {
		closeQuietly(ctx, transport, logger)
		return nil, unexpectedDeviceError(profile.Name, address, whoAmI[0])
	}

	sensor, err := imu.NewMotionSensor(ctx, transport, imu.Settings{
		Address:     address,
		Axis:        axis,
		Calibration: newConf.calibrationRange(),
		Thermometer: profile.Thermometer,
	}, logger)
	if err != nil {
		closeQuietly(ctx, transport, logger)
		return nil, errors.Wrapf(err, "unable to wake up %s", profile.Name)
	}

	if newConf.ResetOnStart {
		if err := sensor.Reset(ctx); err != nil {
			closeQuietly(ctx, sensor, logger)
			return nil, errors.Wrap(err, "unable to capture baseline")
		}
	}

	return &tiltSensor{
		Named:  conf.ResourceName().AsNamed(),
		sensor: sensor,
		logger: logger,
	}, nil
}

func closeQuietly(ctx context.Context, c interface{ Close() error }, logger logging.Logger) {
	if err := c.Close(); err != nil {
		logger.CError(ctx, err)
	}
}

func (ts *tiltSensor) sample(ctx context.Context) (imu.Sample, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.sensor.Sample(ctx)
}

func (ts *tiltSensor) AngularVelocity(ctx context.Context, extra map[string]interface{}) (spatialmath.AngularVelocity, error) {
	s, err := ts.sample(ctx)
	if err != nil {
		return spatialmath.AngularVelocity{}, err
	}
	rate := s.AngularRate()
	return spatialmath.AngularVelocity{X: rate.X, Y: rate.Y, Z: rate.Z}, nil
}

func (ts *tiltSensor) LinearVelocity(ctx context.Context, extra map[string]interface{}) (r3.Vector, error) {
	return r3.Vector{}, movementsensor.ErrMethodUnimplementedLinearVelocity
}

func (ts *tiltSensor) LinearAcceleration(ctx context.Context, extra map[string]interface{}) (r3.Vector, error) {
	s, err := ts.sample(ctx)
	if err != nil {
		return r3.Vector{}, err
	}
	return s.Acceleration().Mul(standardGravity), nil
}

// Orientation reports the three accelerometer tilt angles as roll, pitch and yaw. They are a
// per-read gravity estimate, so yaw is only meaningful when the Z axis is not vertical.
func (ts *tiltSensor) Orientation(ctx context.Context, extra map[string]interface{}) (spatialmath.Orientation, error) {
	s, err := ts.sample(ctx)
	if err != nil {
		return spatialmath.NewOrientationVector(), err
	}
	return &spatialmath.EulerAngles{Roll: s.AngleX, Pitch: s.AngleY, Yaw: s.AngleZ}, nil
}

func (ts *tiltSensor) CompassHeading(ctx context.Context, extra map[string]interface{}) (float64, error) {
	return 0, movementsensor.ErrMethodUnimplementedCompassHeading
}

func (ts *tiltSensor) Position(ctx context.Context, extra map[string]interface{}) (*geo.Point, float64, error) {
	return geo.NewPoint(0, 0), 0, movementsensor.ErrMethodUnimplementedPosition
}

func (ts *tiltSensor) Accuracy(ctx context.Context, extra map[string]interface{}) (*movementsensor.Accuracy, error) {
	return movementsensor.UnimplementedOptionalAccuracies(), nil
}

func (ts *tiltSensor) Readings(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
	s, err := ts.sample(ctx)
	if err != nil {
		return nil, err
	}
	axis := ts.sensor.Axis()
	rate := s.AngularRate()

	readings := make(map[string]interface{})
	readings["linear_acceleration"] = s.Acceleration().Mul(standardGravity)
	readings["angular_velocity"] = spatialmath.AngularVelocity{X: rate.X, Y: rate.Y, Z: rate.Z}
	readings["temperature_celsius"] = s.TemperatureCelsius
	readings["tilt_angle_x"] = s.AngleX
	readings["tilt_angle_y"] = s.AngleY
	readings["tilt_angle_z"] = s.AngleZ
	readings["angle"] = s.Angle(axis)
	readings["rate"] = s.Rate(axis)
	return readings, nil
}

func (ts *tiltSensor) Properties(ctx context.Context, extra map[string]interface{}) (*movementsensor.Properties, error) {
	return &movementsensor.Properties{
		AngularVelocitySupported:    true,
		LinearAccelerationSupported: true,
		OrientationSupported:        true,
	}, nil
}

// DoCommand supports {"calibrate": true}, {"reset": true}, {"angle": true} and
// {"rate": true}, in that order when combined.
func (ts *tiltSensor) DoCommand(ctx context.Context, cmd map[string]interface{}) (map[string]interface{}, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	resp := make(map[string]interface{})
	if _, ok := cmd[calibrateCommand]; ok {
		if err := ts.sensor.Calibrate(ctx); err != nil {
			return nil, err
		}
		resp[calibrateCommand] = true
	}
	if _, ok := cmd[resetCommand]; ok {
		if err := ts.sensor.Reset(ctx); err != nil {
			return nil, err
		}
		resp[resetCommand] = true
	}
	if _, ok := cmd[angleCommand]; ok {
		angle, err := ts.sensor.Angle(ctx)
		if err != nil {
			return nil, err
		}
		resp[angleCommand] = angle
	}
	if _, ok := cmd[rateCommand]; ok {
		rate, err := ts.sensor.Rate(ctx)
		if err != nil {
			return nil, err
		}
		resp[rateCommand] = rate
	}
	if len(resp) == 0 {
		return nil, resource.ErrDoUnimplemented
	}
	return resp, nil
}

func (ts *tiltSensor) Close(ctx context.Context) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	err := ts.sensor.Close()
	if err != nil {
		ts.logger.CError(ctx, err)
	}
	return err
}
