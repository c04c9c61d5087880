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
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/notargets/gowindtunnel/cars"
	"github.com/notargets/gowindtunnel/database"
)

// SettingsCmd represents the settings command
var SettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show, edit, export and import per car placement settings",
}

func withPlacements(fn func(s *cars.Store) error) error {
	var (
		db  *gorm.DB
		s   *cars.Store
		err error
	)
	if db, err = openDatabase(); err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	if s, err = cars.NewStore(db, cars.DefaultKeys(), log); err != nil {
		return err
	}
	return fn(s)
}

func vecFlags(cmd *cobra.Command) (v cars.Vec3) {
	v.X, _ = cmd.Flags().GetFloat64("x")
	v.Y, _ = cmd.Flags().GetFloat64("y")
	v.Z, _ = cmd.Flags().GetFloat64("z")
	return
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the placement of every car type",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlacements(func(s *cars.Store) error {
			st, err := s.Settings()
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(st.Positions))
			for k := range st.Positions {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				p, r := st.Positions[k], st.Rotations[k]
				fmt.Printf("%-8s position (%6.2f, %6.2f, %6.2f) rotation (%6.1f, %6.1f, %6.1f)\n",
					k, p.X, p.Y, p.Z, r.X, r.Y, r.Z)
			}
			fmt.Printf("last modified: %s\n", st.LastModified)
			return nil
		})
	},
}

var settingsPositionCmd = &cobra.Command{
	Use:   "position <carType>",
	Short: "Set the position of a car type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlacements(func(s *cars.Store) error {
			return s.SetPosition(args[0], vecFlags(cmd))
		})
	},
}

var settingsRotationCmd = &cobra.Command{
	Use:   "rotation <carType>",
	Short: "Set the rotation of a car type, in degrees",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlacements(func(s *cars.Store) error {
			return s.SetRotation(args[0], vecFlags(cmd))
		})
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [carType]",
	Short: "Reset one car type, or every car type, to its default placement",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			positionOnly, _ = cmd.Flags().GetBool("position")
			rotationOnly, _ = cmd.Flags().GetBool("rotation")
		)
		return withPlacements(func(s *cars.Store) error {
			if len(args) == 0 {
				return s.ClearAll()
			}
			switch {
			case positionOnly:
				return s.ResetPosition(args[0])
			case rotationOnly:
				return s.ResetRotation(args[0])
			default:
				return s.Reset(args[0])
			}
		})
	},
}

var settingsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write every placement as JSON to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlacements(func(s *cars.Store) error {
			data, err := s.Export()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = os.Stdout.Write(append(data, '\n'))
				return err
			}
			return os.WriteFile(args[0], data, 0644)
		})
	},
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the placements with those in a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading settings: %w", err)
		}
		return withPlacements(func(s *cars.Store) error {
			return s.Import(data)
		})
	},
}

func init() {
	rootCmd.AddCommand(SettingsCmd)
	SettingsCmd.AddCommand(settingsShowCmd, settingsPositionCmd, settingsRotationCmd,
		settingsResetCmd, settingsExportCmd, settingsImportCmd)
	for _, c := range []*cobra.Command{settingsPositionCmd, settingsRotationCmd} {
		c.Flags().Float64("x", 0, "x component")
		c.Flags().Float64("y", 0, "y component")
		c.Flags().Float64("z", 0, "z component")
	}
	settingsResetCmd.Flags().Bool("position", false, "reset only the position")
	settingsResetCmd.Flags().Bool("rotation", false, "reset only the rotation")
}
