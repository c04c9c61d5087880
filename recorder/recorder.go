package recorder

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/notargets/gowindtunnel/aerodynamics"
)

// Recorder ties the in-memory history and series to the configured sinks
type Recorder struct {
	*History
	Series *Series
	sinks  []Sink
	log    zerolog.Logger
}

func New(name string, log zerolog.Logger, sinks ...Sink) *Recorder {
	return &Recorder{
		History: NewHistory(name),
		Series:  NewSeries(MaxSeries),
		sinks:   sinks,
		log:     log.With().Str("component", "recorder").Logger(),
	}
}

// Observe adds a frame's forces to the series without recording a test
func (rc *Recorder) Observe(fr aerodynamics.ForceReport) {
	rc.Series.Add(fr)
}

// Record stores a test in the history and hands it to every sink. Sink errors are
// joined; the test stays recorded.
func (rc *Recorder) Record(ctx context.Context, windSpeed, carAngle float64, carType string,
	fr aerodynamics.ForceReport) (TestResult, error) {
	tr := rc.History.Record(windSpeed, carAngle, carType, fr)
	rc.log.Info().Int("id", tr.ID).Str("car_type", carType).Float64("drag", tr.DragForce).
		Float64("lift", tr.LiftForce).Msg("test recorded")
	return tr, rc.write(ctx, tr)
}

// AddNote annotates the last test and rewrites it to the sinks
func (rc *Recorder) AddNote(ctx context.Context, note string) error {
	tr, ok := rc.History.AddNote(note)
	if !ok {
		return ErrNoTests
	}
	return rc.write(ctx, tr)
}

func (rc *Recorder) write(ctx context.Context, tr TestResult) error {
	var errs []error
	for _, s := range rc.sinks {
		if err := s.Write(ctx, tr); err != nil {
			rc.log.Warn().Err(err).Msg("sink write failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
