// Package main drives an MPU-6050 directly over periph.io for bench testing.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.viam.com/rdk/logging"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"invensense-tilt/imu"
)

type options struct {
	bus        string
	address    uint16
	axis       string
	samples    int
	interval   time.Duration
	reset      bool
	mqttBroker string
	mqttTopic  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		panic(err)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "mpu6050-local",
		Short: "read tilt angles, rates and temperature from an MPU-6050",
		Long: `mpu6050-local opens an I2C bus through periph.io, wakes the sensor and logs one
sample per interval. With --reset the first sample becomes the bias baseline.
With --mqtt-broker every sample is also published as JSON.`,
		Example: `  mpu6050-local --bus 1 --axis z --samples 30
  mpu6050-local --reset --mqtt-broker tcp://localhost:1883 --mqtt-topic imu/tilt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return realMain(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.bus, "bus", "", "periph I2C bus name or number, empty for the first bus")
	cmd.Flags().Uint16Var(&opts.address, "address", 0x68, "I2C address of the sensor")
	cmd.Flags().StringVar(&opts.axis, "axis", "x", "reference axis: x, y or z")
	cmd.Flags().IntVar(&opts.samples, "samples", 30, "number of samples to take")
	cmd.Flags().DurationVar(&opts.interval, "interval", time.Second, "time between samples")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "capture a bias baseline before sampling")
	cmd.Flags().StringVar(&opts.mqttBroker, "mqtt-broker", "", "MQTT broker URL to publish samples to")
	cmd.Flags().StringVar(&opts.mqttTopic, "mqtt-topic", "imu/tilt", "MQTT topic for samples")
	return cmd
}

func realMain(ctx context.Context, opts options) error {
	logger := logging.NewLogger("mpu6050-local")

	axis, err := imu.ParseAxis(opts.axis)
	if err != nil {
		return err
	}
	if opts.address > 0x7F {
		return errors.Errorf("address 0x%X is not a 7-bit I2C address", opts.address)
	}

	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "periph host init")
	}
	bus, err := i2creg.Open(opts.bus)
	if err != nil {
		return errors.Wrapf(err, "can't open I2C bus %q", opts.bus)
	}

	sensor, err := imu.NewMotionSensor(ctx, imu.NewPeriphBus(bus, opts.address), imu.Settings{
		Address: byte(opts.address),
		Axis:    axis,
	}, logger)
	if err != nil {
		if closeErr := bus.Close(); closeErr != nil {
			logger.Error(closeErr)
		}
		return err
	}
	defer func() {
		if err := sensor.Close(); err != nil {
			logger.Error(err)
		}
	}()

	if opts.reset {
		if err := sensor.Reset(ctx); err != nil {
			return err
		}
		logger.Infof("baseline: %+v", sensor.Baseline())
	}

	var client mqtt.Client
	if opts.mqttBroker != "" {
		client = mqtt.NewClient(mqtt.NewClientOptions().
			AddBroker(opts.mqttBroker).
			SetClientID("mpu6050-local"))
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return errors.Wrap(token.Error(), "MQTT connect")
		}
		defer client.Disconnect(250)
	}

	diag := imu.NewDiagnostics(logger)
	for range opts.samples {
		sample, err := sensor.Sample(ctx)
		if err != nil {
			return err
		}
		diag.LogAngles(ctx, sample)
		diag.LogAllData(ctx, sample)
		logger.Infof("angle (%s): %0.4f rad rate: %0.0f", axis, sample.Angle(axis), sample.Rate(axis))

		if client != nil {
			payload, err := json.Marshal(sample)
			if err != nil {
				return err
			}
			if token := client.Publish(opts.mqttTopic, 0, false, payload); token.Wait() && token.Error() != nil {
				logger.Errorf("MQTT publish error: %v", token.Error())
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.interval):
		}
	}
	return nil
}
