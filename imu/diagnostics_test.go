package imu

import (
	"context"
	"testing"

	"go.viam.com/rdk/logging"
	"go.viam.com/test"
)

func TestDiagnostics(t *testing.T) {
	ctx := context.Background()
	logger, logs := logging.NewObservedTestLogger(t)
	diag := NewDiagnostics(logger)

	sample := Sample{
		Frame:              RawFrame{AccelX: 16384, AccelY: 300, AccelZ: -300, GyroX: 131, GyroY: 20, GyroZ: 30},
		AngleX:             0,
		AngleY:             3.141592653589793,
		AngleZ:             1.5707963267948966,
		TemperatureCelsius: 36.53,
	}

	diag.LogAngles(ctx, sample)
	diag.LogAccelData(ctx, sample)
	diag.LogGyroData(ctx, sample)
	diag.LogTemperature(ctx, sample)
	diag.LogAllData(ctx, sample)

	test.That(t, logs.FilterMessageSnippet("angles: 0.00, 180.00, 90.00").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessageSnippet("acc x: 16384 acc y: 300 acc z: -300").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessageSnippet("gyro x: 131 gyro y: 20 gyro z: 30").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessageSnippet("temperature: 36.53 C").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessageSnippet("acc: (1.000, 0.018, -0.018) temp: 36.53 gyro: (1.00, 0.15, 0.23)").Len(), test.ShouldEqual, 1)
}
