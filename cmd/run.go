/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gowindtunnel/InputParameters"
	"github.com/notargets/gowindtunnel/aerodynamics"
	"github.com/notargets/gowindtunnel/cars"
	"github.com/notargets/gowindtunnel/database"
	"github.com/notargets/gowindtunnel/graphics"
	"github.com/notargets/gowindtunnel/protocol"
	"github.com/notargets/gowindtunnel/recorder"
	"github.com/notargets/gowindtunnel/streamlines"
	"github.com/notargets/gowindtunnel/tunnel"
	"github.com/notargets/gowindtunnel/types"
	"github.com/notargets/gowindtunnel/utils"
)

type Model3D struct {
	ICFile   string
	CSVFile  string
	JSONFile string
	Profile  string
	Persist  bool
	Graph    bool
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Headless wind tunnel run from an input file, with force summary and test export",
	Long: `
Steps the wind tunnel for a fixed number of frames using the conditions in a YAML input
file, records tests along the way and prints the final force report.

gowindtunnel run -I f1.yaml --csv results.csv`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		m3d := &Model3D{}
		m3d.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		m3d.CSVFile, _ = cmd.Flags().GetString("csv")
		m3d.JSONFile, _ = cmd.Flags().GetString("json")
		m3d.Profile, _ = cmd.Flags().GetString("profile")
		m3d.Persist, _ = cmd.Flags().GetBool("persist")
		m3d.Graph, _ = cmd.Flags().GetBool("graph")
		var ip *InputParameters.InputParameters3D
		if ip, err = processInput(m3d); err != nil {
			return
		}
		ip.Print()
		return Run3D(cmd.Context(), m3d, ip)
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- WindSpeed (mph)\n\t- CarAngle (degrees)\n\t- CarType")
	RunCmd.Flags().String("csv", "", "write the recorded tests to this CSV file")
	RunCmd.Flags().String("json", "", "write the recorded tests to this JSON file")
	RunCmd.Flags().String("profile", "", "profile the run: cpu or mem")
	RunCmd.Flags().BoolP("persist", "p", false, "load car placements from and save tests to the configured database")
	RunCmd.Flags().BoolP("graph", "g", false, "display a side view of the final frame")
}

const exampleFile = `
########################################
Title: "Test Case"
WindSpeed: 50      # mph, 0 to 200
CarAngle: 0        # degrees, -45 to 45
CarType: sedan     # f1, sedan, sports, suv, truck or custom
Frames: 600
FrameTime: 0.016667
RecordEvery: 60
Streamlines:
  Enabled: true
  FlowIntensity: 1
########################################
`

func processInput(m3d *Model3D) (ip *InputParameters.InputParameters3D, err error) {
	ip = InputParameters.NewInputParameters3D()
	if len(m3d.ICFile) == 0 {
		fmt.Printf("no input file (-I, --inputConditionsFile), using defaults\n")
		fmt.Printf("Example File:%s\n", exampleFile)
		return
	}
	var data []byte
	if data, err = os.ReadFile(m3d.ICFile); err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing input file %s: %w", m3d.ICFile, err)
	}
	if err = aerodynamics.Validate(ip.WindSpeed, ip.CarAngle); err != nil {
		return nil, err
	}
	if ip.Frames < 1 || ip.FrameTime <= 0 {
		return nil, fmt.Errorf("need at least one frame and a positive frame time, have %d and %v",
			ip.Frames, ip.FrameTime)
	}
	return
}

func tunnelConfig(ip *InputParameters.InputParameters3D) (cfg tunnel.Config) {
	cfg = tunnel.DefaultConfig()
	cfg.CarType = ip.CarType
	cfg.WindSpeed = ip.WindSpeed
	cfg.CarAngle = ip.CarAngle
	cfg.Seed = ip.Seed
	cfg.Turbulence = tunnel.Turbulence(strings.ToLower(ip.Turbulence))
	if ip.ParticleCount > 0 {
		cfg.Particles.Count = ip.ParticleCount
	}
	cfg.StreamlinesEnabled = ip.Streamlines.Enabled
	cfg.Streamlines = streamlines.Settings{
		FlowIntensity:  ip.Streamlines.FlowIntensity,
		ColorIntensity: ip.Streamlines.ColorIntensity,
		ShowLong:       ip.Streamlines.ShowLong,
		ShowUnderCar:   ip.Streamlines.ShowUnderCar,
	}
	return
}

func startProfile(mode string) interface{ Stop() } {
	switch strings.ToLower(mode) {
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}
}

func Run3D(ctx context.Context, m3d *Model3D, ip *InputParameters.InputParameters3D) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if m3d.Profile != "" {
		defer startProfile(m3d.Profile).Stop()
	}
	var (
		placements *cars.Store
		sinks      []recorder.Sink
	)
	if m3d.Persist {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()
		if placements, err = cars.NewStore(db, cars.DefaultKeys(), log); err != nil {
			return err
		}
		var closeSinks func()
		sinks, closeSinks = openSinks(ctx, db)
		defer closeSinks()
	}
	rec := recorder.New(ip.Title, log, sinks...)
	tn, err := tunnel.New(tunnelConfig(ip), cars.NewCatalog(), placements, log)
	if err != nil {
		return err
	}
	defer tn.Close()

	var fr protocol.Frame
	for i := 0; i < ip.Frames; i++ {
		fr = tn.Step(ctx, ip.FrameTime)
		rec.Observe(fr.Forces)
		if ip.RecordEvery > 0 && (i+1)%ip.RecordEvery == 0 {
			if _, err = rec.Record(ctx, ip.WindSpeed, ip.CarAngle, fr.Car.Type, fr.Forces); err != nil {
				log.Warn().Err(err).Int("frame", i+1).Msg("test not saved everywhere")
			}
		}
	}
	if ip.RecordEvery <= 0 {
		if _, err = rec.Record(ctx, ip.WindSpeed, ip.CarAngle, fr.Car.Type, fr.Forces); err != nil {
			log.Warn().Err(err).Msg("test not saved everywhere")
		}
	}
	log.Info().Int("frames", ip.Frames).Float64("time", fr.Time).Int("tests", rec.Len()).
		Int("recycled", tn.Particles().Recycled).Int("rebuilds", tn.Streamlines().Rebuilds).
		Msg("run complete")
	PrintForces(fr.Forces)

	if m3d.CSVFile != "" {
		if err = writeFile(m3d.CSVFile, rec.WriteCSV); err != nil {
			return
		}
	}
	if m3d.JSONFile != "" {
		if err = writeFile(m3d.JSONFile, rec.WriteJSON); err != nil {
			return
		}
	}
	if m3d.Graph {
		graphics.Plot(graphics.SideView(fr), []graphics.RenderText{{
			Color: utils.GetColor(utils.White),
			Text:  fmt.Sprintf("%s %.0f mph %.1f deg", fr.Car.Type, ip.WindSpeed, ip.CarAngle),
			Pitch: 24,
			X:     -14, Y: 4,
		}})
	}
	return nil
}

func writeFile(name string, write func(w io.Writer) error) (err error) {
	var f *os.File
	if f, err = os.Create(name); err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err = write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	log.Info().Str("file", name).Msg("exported")
	return
}

// PrintForces echoes every report field followed by the derived analyses
func PrintForces(fr aerodynamics.ForceReport) {
	for _, ff := range types.ForceFields {
		fmt.Printf("%-24s = %14.4f %s\n", ff.String(), fr.Value(ff), ff.Unit())
	}
	var (
		pd   = aerodynamics.NewPressureDistribution(fr.WindSpeed, fr.Angle)
		fuel = aerodynamics.NewFuelImpact(fr.Drag)
	)
	fmt.Printf("Pressure (Pa): front %.1f, rear %.1f, sides %.1f, top %.1f, bottom %.1f\n",
		pd.Front, pd.Rear, pd.Sides, pd.Top, pd.Bottom)
	fmt.Printf("Fuel: %.2f L/100km (+%.2f)\n", fuel.Actual, fuel.Extra)
	fmt.Printf("Performance rating: %.0f, recommended angle %.1f deg\n",
		aerodynamics.PerformanceRating(fr), aerodynamics.RecommendedAngle(fr.WindSpeed))
	fmt.Printf("%s\n", aerodynamics.Explain(fr))
}
