package tunnel

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/protocol"
	"github.com/notargets/gowindtunnel/streamlines"
	"github.com/notargets/gowindtunnel/types"
)

var ErrBadPosition = errors.New("car position needs three components")

// ApplyInput queues every field set in the request. Validation errors are collected;
// the valid fields still take effect.
func (tn *Tunnel) ApplyInput(in protocol.Input) error {
	var errs []error
	if in.WindSpeed != nil {
		errs = append(errs, tn.SetWindSpeed(*in.WindSpeed))
	}
	if in.CarAngle != nil {
		errs = append(errs, tn.SetCarAngle(*in.CarAngle))
	}
	if in.CarType != nil {
		errs = append(errs, tn.SetCarType(*in.CarType))
	}
	if in.CarPosition != nil {
		if len(in.CarPosition) != 3 {
			errs = append(errs, ErrBadPosition)
		} else {
			tn.SetCarPosition(r3.Vec{X: in.CarPosition[0], Y: in.CarPosition[1], Z: in.CarPosition[2]})
		}
	}
	if in.Nudge != nil {
		errs = append(errs, tn.applyNudge(*in.Nudge))
	}
	if in.StreamlineSettings != nil {
		s := in.StreamlineSettings
		tn.SetStreamlineSettings(streamlines.Settings{
			FlowIntensity:  s.FlowIntensity,
			ColorIntensity: s.ColorIntensity,
			ShowLong:       s.ShowLong,
			ShowUnderCar:   s.ShowUnderCar,
		})
	}
	if in.Streamlines != nil {
		tn.SetStreamlinesEnabled(*in.Streamlines)
	}
	if in.Paused != nil {
		if *in.Paused {
			tn.Pause()
		} else {
			tn.Resume()
		}
	}
	return errors.Join(errs...)
}

func (tn *Tunnel) applyNudge(n protocol.Nudge) error {
	d, ok := types.NewDirection(n.Direction)
	if !ok {
		return fmt.Errorf("unknown nudge direction %q", n.Direction)
	}
	view := types.FrontView
	if n.View != "" {
		if view, ok = types.NewCameraView(n.View); !ok {
			return fmt.Errorf("unknown camera view %q", n.View)
		}
	}
	tn.Nudge(d, view)
	return nil
}
