package recorder

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
)

const Measurement = "wind_tunnel_test"

type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// InfluxSink writes one point per recorded test
type InfluxSink struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPIBlocking
	log    zerolog.Logger
}

// NewInfluxSink connects and checks the server is reachable
func NewInfluxSink(ctx context.Context, cfg InfluxConfig, log zerolog.Logger) (*InfluxSink, error) {
	if cfg.URL == "" || cfg.Bucket == "" {
		return nil, errors.New("influx url and bucket are required")
	}
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, influxdb2.DefaultOptions())
	running, err := client.Ping(ctx)
	if err != nil || !running {
		client.Close()
		if err == nil {
			err = errors.New("server not running")
		}
		return nil, fmt.Errorf("connecting to influx at %s: %w", cfg.URL, err)
	}
	return &InfluxSink{
		client: client,
		writer: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:    log.With().Str("component", "influx").Logger(),
	}, nil
}

// Point converts a test to its time-series form
func Point(tr TestResult) *influxdb2_write.Point {
	return influxdb2.NewPointWithMeasurement(Measurement).
		AddTag("car_type", tr.CarType).
		AddTag("session", tr.Session).
		AddField("test_id", strconv.Itoa(tr.ID)).
		AddField("drag", tr.DragForce).
		AddField("lift", tr.LiftForce).
		AddField("pressure", tr.Pressure).
		AddField("wind_speed", tr.WindSpeed).
		AddField("angle", tr.CarAngle).
		SetTime(tr.Timestamp)
}

func (is *InfluxSink) Write(ctx context.Context, tr TestResult) error {
	if err := is.writer.WritePoint(ctx, Point(tr)); err != nil {
		return fmt.Errorf("writing test %d to influx: %w", tr.ID, err)
	}
	is.log.Trace().Int("id", tr.ID).Msg("point written")
	return nil
}

func (is *InfluxSink) Close() {
	is.client.Close()
}
