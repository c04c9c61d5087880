package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

type StreamlineParameters struct {
	Enabled        bool    `yaml:"Enabled"`
	FlowIntensity  float64 `yaml:"FlowIntensity"`
	ColorIntensity float64 `yaml:"ColorIntensity"`
	ShowLong       bool    `yaml:"ShowLong"`
	ShowUnderCar   bool    `yaml:"ShowUnderCar"`
}

// Parameters obtained from the YAML input file
type InputParameters3D struct {
	Title         string               `yaml:"Title"`
	WindSpeed     float64              `yaml:"WindSpeed"` // mph
	CarAngle      float64              `yaml:"CarAngle"`  // degrees
	CarType       string               `yaml:"CarType"`
	ParticleCount int                  `yaml:"ParticleCount"`
	Seed          int64                `yaml:"Seed"`
	Turbulence    string               `yaml:"Turbulence"` // random, perlin or none
	Frames        int                  `yaml:"Frames"`
	FrameTime     float64              `yaml:"FrameTime"` // seconds
	Streamlines   StreamlineParameters `yaml:"Streamlines"`
	RecordEvery   int                  `yaml:"RecordEvery"` // frames, zero records only the last
}

// NewInputParameters3D returns the values used for keys missing from an input file
func NewInputParameters3D() *InputParameters3D {
	return &InputParameters3D{
		Title:         "Wind Tunnel Run",
		WindSpeed:     50,
		CarType:       "sedan",
		ParticleCount: 500,
		Seed:          1,
		Turbulence:    "random",
		Frames:        600,
		FrameTime:     1. / 60,
		Streamlines: StreamlineParameters{
			Enabled:        true,
			FlowIntensity:  1,
			ColorIntensity: 1,
			ShowLong:       true,
			ShowUnderCar:   true,
		},
	}
}

func (ip *InputParameters3D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters3D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.3f\t\t= WindSpeed (mph)\n", ip.WindSpeed)
	fmt.Printf("%8.3f\t\t= CarAngle (deg)\n", ip.CarAngle)
	fmt.Printf("[%s]\t\t\t= CarType\n", ip.CarType)
	fmt.Printf("[%d]\t\t\t= ParticleCount\n", ip.ParticleCount)
	fmt.Printf("[%d]\t\t\t\t= Seed\n", ip.Seed)
	fmt.Printf("[%s]\t\t\t= Turbulence\n", ip.Turbulence)
	fmt.Printf("[%d]\t\t\t= Frames\n", ip.Frames)
	fmt.Printf("%8.5f\t\t= FrameTime\n", ip.FrameTime)
	fmt.Printf("[%d]\t\t\t\t= RecordEvery\n", ip.RecordEvery)
	fmt.Printf("Streamlines = %+v\n", ip.Streamlines)
}
