package types

import "strings"

type StreamlineCategory uint8

const (
	Main StreamlineCategory = iota
	Long
	UnderCar
)

var StreamlineCategories = []StreamlineCategory{Main, Long, UnderCar}

func (sc StreamlineCategory) String() string {
	strings := []string{
		"main",
		"long",
		"underCar",
	}
	return strings[int(sc)]
}

// FlowZone is the region of the flow field a point falls into relative to the car
type FlowZone uint8

const (
	FreeStream FlowZone = iota
	Blocked             // near the car surface
	Stagnation          // ahead of the car
	Wake                // behind the car
	OverTop
	Side
)

func (fz FlowZone) String() string {
	strings := []string{
		"FreeStream",
		"Blocked",
		"Stagnation",
		"Wake",
		"OverTop",
		"Side",
	}
	return strings[int(fz)]
}

type LifecycleState uint8

const (
	Disabled LifecycleState = iota
	Enabling
	Enabled
	Disabling
	Disposed
)

func (ls LifecycleState) String() string {
	strings := []string{
		"Disabled",
		"Enabling",
		"Enabled",
		"Disabling",
		"Disposed",
	}
	return strings[int(ls)]
}

// ForceField selects one scalar of a force report for display or graphing
type ForceField uint8

const (
	DragForce ForceField = iota
	LiftForce
	Downforce
	DragCoefficient
	LiftCoefficient
	Pressure           // 5
	DynamicPressure    // 6
	StagnationPressure // 7
	Velocity           // 8
	ReynoldsNumber     // 9
	FrontalArea        // 10
	AirDensity         // 11
	Efficiency         // 12
)

var ForceFields = []ForceField{
	DragForce, LiftForce, Downforce, DragCoefficient, LiftCoefficient,
	Pressure, DynamicPressure, StagnationPressure, Velocity, ReynoldsNumber,
	FrontalArea, AirDensity, Efficiency,
}

func (ff ForceField) String() string {
	strings := []string{
		"Drag Force",
		"Lift Force",
		"Downforce",
		"Drag Coefficient (Cd)",
		"Lift Coefficient (Cl)",
		"Pressure",
		"Dynamic Pressure",
		"Stagnation Pressure",
		"Velocity",
		"Reynolds Number",
		"Frontal Area",
		"Air Density",
		"Efficiency Rating",
	}
	return strings[int(ff)]
}

func (ff ForceField) Unit() string {
	units := []string{
		"N", "N", "N", "", "",
		"kPa", "kPa", "kPa", "m/s", "",
		"m²", "kg/m³", "%",
	}
	return units[int(ff)]
}

var ForceFieldNameMap = map[string]ForceField{
	"drag":               DragForce,
	"lift":               LiftForce,
	"downforce":          Downforce,
	"cd":                 DragCoefficient,
	"dragcoefficient":    DragCoefficient,
	"cl":                 LiftCoefficient,
	"liftcoefficient":    LiftCoefficient,
	"pressure":           Pressure,
	"dynamicpressure":    DynamicPressure,
	"stagnationpressure": StagnationPressure,
	"velocity":           Velocity,
	"reynolds":           ReynoldsNumber,
	"reynoldsnumber":     ReynoldsNumber,
	"frontalarea":        FrontalArea,
	"airdensity":         AirDensity,
	"efficiency":         Efficiency,
}

func NewForceField(label string) (ff ForceField, ok bool) {
	ff, ok = ForceFieldNameMap[strings.ToLower(strings.TrimSpace(label))]
	return
}
