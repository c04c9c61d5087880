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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/notargets/gowindtunnel/cars"
	"github.com/notargets/gowindtunnel/dashboard"
	"github.com/notargets/gowindtunnel/database"
	"github.com/notargets/gowindtunnel/recorder"
	"github.com/notargets/gowindtunnel/tunnel"
)

// DashboardCmd represents the dashboard command
var DashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive terminal dashboard with live forces and history graphs",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cfg := tunnel.DefaultConfig()
		cfg.CarType, _ = cmd.Flags().GetString("carType")
		cfg.WindSpeed, _ = cmd.Flags().GetFloat64("windSpeed")
		cfg.CarAngle, _ = cmd.Flags().GetFloat64("carAngle")
		persist, _ := cmd.Flags().GetBool("persist")

		var (
			placements *cars.Store
			sinks      []recorder.Sink
		)
		if persist {
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
		catalog := cars.NewCatalog()
		tn, err := tunnel.New(cfg, catalog, placements, log)
		if err != nil {
			return
		}
		defer tn.Close()
		rec := recorder.New("", log, sinks...)

		m := dashboard.New(ctx, tn, rec, catalog.EnabledKeys())
		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return
	},
}

func init() {
	rootCmd.AddCommand(DashboardCmd)
	DashboardCmd.Flags().String("carType", cars.DefaultCarType, "initial car type")
	DashboardCmd.Flags().Float64("windSpeed", 50, "initial wind speed in mph")
	DashboardCmd.Flags().Float64("carAngle", 0, "initial car angle in degrees")
	DashboardCmd.Flags().BoolP("persist", "p", false, "use saved car placements and save recorded tests")
}
