package types

import "strings"

// CameraView is the viewpoint a user nudges the car from
type CameraView uint8

const (
	FrontView CameraView = iota
	SideView
	TopView
)

func (cv CameraView) String() string {
	strings := []string{
		"front",
		"side",
		"top",
	}
	return strings[int(cv)]
}

var CameraViewNameMap = map[string]CameraView{
	"front": FrontView,
	"side":  SideView,
	"top":   TopView,
}

type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	strings := []string{
		"up",
		"down",
		"left",
		"right",
	}
	return strings[int(d)]
}

var DirectionNameMap = map[string]Direction{
	"up":    Up,
	"down":  Down,
	"left":  Left,
	"right": Right,
}

func NewCameraView(label string) (cv CameraView, ok bool) {
	cv, ok = CameraViewNameMap[strings.ToLower(label)]
	return
}

func NewDirection(label string) (d Direction, ok bool) {
	d, ok = DirectionNameMap[strings.ToLower(label)]
	return
}
