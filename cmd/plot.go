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

	"github.com/spf13/cobra"

	"github.com/notargets/gowindtunnel/cars"
	"github.com/notargets/gowindtunnel/graphics"
	"github.com/notargets/gowindtunnel/protocol"
	"github.com/notargets/gowindtunnel/tunnel"
	"github.com/notargets/gowindtunnel/utils"
)

// PlotCmd represents the plot command
var PlotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Side view chart of the streamlines, particles and car",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			cfg       = tunnel.DefaultConfig()
			frames, _ = cmd.Flags().GetInt("frames")
			fr        protocol.Frame
		)
		cfg.CarType, _ = cmd.Flags().GetString("carType")
		cfg.WindSpeed, _ = cmd.Flags().GetFloat64("windSpeed")
		cfg.CarAngle, _ = cmd.Flags().GetFloat64("carAngle")
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
		tn, err := tunnel.New(cfg, cars.NewCatalog(), nil, log)
		if err != nil {
			return
		}
		defer tn.Close()
		fr = tn.Last()
		for i := 0; i < frames; i++ {
			fr = tn.Step(context.Background(), 1./60)
		}
		lines := graphics.SideView(fr)
		log.Info().Int("segments", lines.Segments()).Msg("plotting")
		graphics.Plot(lines, []graphics.RenderText{{
			Color: utils.GetColor(utils.White),
			Text: fmt.Sprintf("%s %.0f mph %.1f deg  drag %.1f N  lift %.1f N",
				fr.Car.Type, fr.Forces.WindSpeed, fr.Forces.Angle, fr.Forces.Drag, fr.Forces.Lift),
			Pitch: 24,
			X:     -14, Y: 4,
		}})
		return
	},
}

func init() {
	rootCmd.AddCommand(PlotCmd)
	PlotCmd.Flags().String("carType", cars.DefaultCarType, "car type")
	PlotCmd.Flags().Float64("windSpeed", 50, "wind speed in mph")
	PlotCmd.Flags().Float64("carAngle", 0, "car angle in degrees")
	PlotCmd.Flags().Int("frames", 120, "frames to advance before plotting")
	PlotCmd.Flags().Int64("seed", 1, "random seed")
}
