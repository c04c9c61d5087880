package protocol

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/aerodynamics"
	"github.com/notargets/gowindtunnel/utils"
)

// Nudge moves the car one grid step as seen from a camera view
type Nudge struct {
	Direction string `json:"direction"` // up, down, left, right
	View      string `json:"view"`      // front, side, top
}

// StreamlineSettings mirrors the streamline tuning controls
type StreamlineSettings struct {
	FlowIntensity  float64 `json:"flowIntensity"`
	ColorIntensity float64 `json:"colorIntensity"`
	ShowLong       bool    `json:"showLong"`
	ShowUnderCar   bool    `json:"showUnderCar"`
}

// Input is a client request. Nil fields leave the corresponding value unchanged.
type Input struct {
	WindSpeed          *float64            `json:"windSpeed,omitempty"` // mph
	CarAngle           *float64            `json:"carAngle,omitempty"`  // degrees
	CarType            *string             `json:"carType,omitempty"`
	CarPosition        []float64           `json:"carPosition,omitempty"` // length=3
	Nudge              *Nudge              `json:"nudge,omitempty"`
	Streamlines        *bool               `json:"streamlines,omitempty"`
	StreamlineSettings *StreamlineSettings `json:"streamlineSettings,omitempty"`
	Paused             *bool               `json:"paused,omitempty"`
	Record             bool                `json:"record,omitempty"`
	Note               string              `json:"note,omitempty"`
}

// Car ...
type Car struct {
	Type     string    `json:"type"`
	Position []float64 `json:"position"` // length=3
	Yaw      float64   `json:"yaw"`
	Size     []float64 `json:"size"` // { width, height, length }
}

// Cloud is a point set with one RGB triple per point
type Cloud struct {
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
}

// Streamline ...
type Streamline struct {
	Category  string  `json:"category"`
	Opacity   float64 `json:"opacity"`
	LineWidth float64 `json:"lineWidth"`
	Cloud
}

// Frame is the per frame snapshot pushed to clients
type Frame struct {
	Seq             uint64                   `json:"seq"`
	Time            float64                  `json:"time"` // seconds of simulated flow
	Paused          bool                     `json:"paused"`
	Car             Car                      `json:"car"`
	Forces          aerodynamics.ForceReport `json:"forces"`
	Particles       Cloud                    `json:"particles"`
	StreamlineState string                   `json:"streamlineState"`
	Streamlines     []Streamline             `json:"streamlines,omitempty"`
}

type MessageType string

const (
	FrameMessage    MessageType = "frame"
	ErrorMessage    MessageType = "error"
	RecordedMessage MessageType = "recorded"
)

// Message is the envelope of everything the server sends
type Message struct {
	Type     MessageType `json:"type"`
	Frame    *Frame      `json:"frame,omitempty"`
	Error    string      `json:"error,omitempty"`    // rejected input
	Recorded *Recorded   `json:"recorded,omitempty"` // acknowledges a recorded test
}

type Recorded struct {
	ID      int    `json:"id"`
	Session string `json:"session"`
}

func NewFrameMessage(fr Frame) Message {
	return Message{Type: FrameMessage, Frame: &fr}
}

func NewErrorMessage(err error) Message {
	return Message{Type: ErrorMessage, Error: err.Error()}
}

func Vec(v r3.Vec) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Float32s packs points as a flat xyz buffer
func Float32s(vs []r3.Vec) (f []float32) {
	f = make([]float32, 3*len(vs))
	for i, v := range vs {
		f[3*i], f[3*i+1], f[3*i+2] = float32(v.X), float32(v.Y), float32(v.Z)
	}
	return
}

// Colors packs colors as a flat rgb buffer
func Colors(cs []utils.RGB) (f []float32) {
	f = make([]float32, 3*len(cs))
	for i, c := range cs {
		f[3*i], f[3*i+1], f[3*i+2] = float32(c.R), float32(c.G), float32(c.B)
	}
	return
}
